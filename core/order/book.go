package order

import (
	"fmt"
	"sync"
	"time"

	"github.com/bassamfouad/mouhajer-api/store"
)

type Book struct {
	mu   sync.Mutex
	coll *store.Collection[Order]
}

func NewBook(coll *store.Collection[Order]) *Book {
	return &Book{coll: coll}
}

func (b *Book) List() []Order {
	return b.coll.Load()
}

func (b *Book) Create(o Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := append(b.coll.Load(), o)
	if err := b.coll.Replace(items); err != nil {
		return fmt.Errorf("persisting order: %w", err)
	}
	return nil
}

func (b *Book) FetchByProviderID(providerID string) *Order {
	for _, o := range b.coll.Load() {
		if o.ProviderID == providerID {
			o := o
			return &o
		}
	}
	return nil
}

// MarkStatus stamps the order bound to providerID with the given
// status. Returns nil when no order matches.
func (b *Book) MarkStatus(providerID string, status Status) (*Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.coll.Load()
	for i := range items {
		if items[i].ProviderID != providerID {
			continue
		}

		items[i].Status = status
		items[i].UpdatedAt = time.Now().UTC()

		if err := b.coll.Replace(items); err != nil {
			return nil, fmt.Errorf("persisting order status: %w", err)
		}

		out := items[i]
		return &out, nil
	}

	return nil, nil
}
