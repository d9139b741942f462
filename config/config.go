package config

import "time"

// Config collects every runtime knob of the API server. Values are
// parsed from the environment with the MID prefix.
type Config struct {
	Web     Web
	Cors    Cors
	Store   Store
	Session Session
	Admin   Admin
	Email   Email
	Stripe  Stripe
	Paypal  Paypal
	Track   Track
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:4000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

// Store points at the directory holding the JSON collection files.
type Store struct {
	Dir string `conf:"default:./data"`
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

// Admin is the single back-office credential. PasswordHash is a
// bcrypt hash, never the plain password.
type Admin struct {
	Email        string `conf:"default:admin@mouhajer-international.com"`
	PasswordHash string `conf:"mask"`
}

type Email struct {
	Address  string
	Password string `conf:"mask"`
	Host     string
	Port     int    `conf:"default:587"`
	Inbox    string
}

type Stripe struct {
	APISecret     string `conf:"mask"`
	WebhookSecret string `conf:"mask"`
	SuccessURL    string
	CancelURL     string
}

type Paypal struct {
	ClientID string
	Secret   string `conf:"mask"`
	URL      string `conf:"default:https://api.sandbox.paypal.com"`
}

// Track bounds the public impression/click tracking endpoints.
type Track struct {
	Burst     int           `conf:"default:20"`
	Interval  time.Duration `conf:"default:1s"`
	ClientTTL time.Duration `conf:"default:10m"`
}
