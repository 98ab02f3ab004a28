package order

import "time"

type Status string

const (
	Pending Status = "pending"
	Paid    Status = "paid"
	Expired Status = "expired"
)

// Order is the persisted evidence that a checkout was initiated. It is
// created pending when the payment session is requested, before the
// customer pays; the webhook settles the final status. Amount is whole
// currency units.
type Order struct {
	ID         string    `json:"id" db:"order_id"`
	ProviderID string    `json:"providerId" db:"provider_id"`
	Amount     int       `json:"amount" db:"amount"`
	Status     Status    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type StatusUp struct {
	ID        string    `db:"order_id"`
	Status    Status    `db:"status"`
	UpdatedAt time.Time `db:"updated_at"`
}
