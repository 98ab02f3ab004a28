package config

import "time"

type Config struct {
	Web    Web
	DB     DB
	Stripe Stripe
	Admin  Admin
	Rate   Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:ventro"`
	DisableTLS bool   `conf:"default:true"`
}

type Stripe struct {
	APISecret     string `conf:"mask"`
	WebhookSecret string `conf:"mask"`

	// SuccessURL is the address of the order-success page. The checkout
	// flow appends the session_id query parameter to it.
	SuccessURL string `conf:"default:http://localhost:3000/order_success"`
	CancelURL  string `conf:"default:http://localhost:3000/payment_redirect"`
	Currency   string `conf:"default:inr"`
}

type Admin struct {
	Token string `conf:"mask"`
}

type Rate struct {
	CheckoutRPS   float64 `conf:"default:1"`
	CheckoutBurst int     `conf:"default:5"`
	ExpiryMinutes int     `conf:"default:30"`
}
