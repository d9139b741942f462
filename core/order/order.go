package order

import (
	"time"

	"github.com/bassamfouad/mouhajer-api/core/product"
)

type Status string

const (
	Pending Status = "pending"
	Success Status = "success"
	Expired Status = "expired"
)

// Order snapshots the cart at checkout time and tracks the payment it
// is bound to. ProviderID is the Stripe session or PayPal order id.
type Order struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"providerId"`
	Provider   string    `json:"provider"`
	Status     Status    `json:"status"`
	Currency   string    `json:"currency"`
	Total      int       `json:"total"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Item freezes one cart line: the unit price recorded here is the
// price actually charged (sale price when one was set).
type Item struct {
	ProductID string       `json:"productId"`
	Name      product.Text `json:"name"`
	Color     string       `json:"color"`
	Quantity  int          `json:"quantity"`
	UnitPrice int          `json:"unitPrice"`
}
