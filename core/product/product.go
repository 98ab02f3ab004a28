package product

import "time"

// Product prices are whole currency units.
type Product struct {
	ID          string    `json:"id" db:"product_id"`
	CategoryID  string    `json:"categoryId" db:"category_id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Price       int       `json:"price" db:"price"`
	Available   bool      `json:"available" db:"available"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	Version     int       `json:"-" db:"version"`
}

type ProductNew struct {
	Title        string `json:"title" validate:"required"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl" validate:"omitempty,url"`
	Price        int    `json:"price" validate:"gte=0"`
	CategorySlug string `json:"category" validate:"required"`
}

type ProductUp struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	Price       *int    `json:"price" validate:"omitempty,gte=0"`
	Available   *bool   `json:"available"`
}
