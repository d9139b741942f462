package product

import (
	"fmt"
	"sync"
	"time"

	"github.com/bassamfouad/mouhajer-api/store"
	"github.com/bassamfouad/mouhajer-api/validate"
)

// Catalog is the product collection. All mutations run under a single
// lock and rewrite the backing collection file in full.
type Catalog struct {
	mu   sync.Mutex
	coll *store.Collection[Product]
}

func NewCatalog(coll *store.Collection[Product]) *Catalog {
	return &Catalog{coll: coll}
}

func (c *Catalog) List() []Product {
	return c.coll.Load()
}

// Get returns the product with the given id, or nil when absent.
func (c *Catalog) Get(id string) *Product {
	for _, p := range c.coll.Load() {
		if p.ID == id {
			p := p
			return &p
		}
	}
	return nil
}

func (c *Catalog) Create(np ProductNew) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	p := Product{
		ID:          validate.GenerateID(),
		Name:        np.Name,
		Description: np.Description,
		Price:       np.Price,
		SalePrice:   np.SalePrice,
		Currency:    np.Currency,
		Category:    np.Category,
		Images:      np.Images,
		Colors:      np.Colors,
		InStock:     np.InStock,
		Featured:    np.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	items := append(c.coll.Load(), p)
	if err := c.coll.Replace(items); err != nil {
		return Product{}, fmt.Errorf("persisting product: %w", err)
	}

	return p, nil
}

// Update merges the non-nil fields of up over the stored product and
// refreshes UpdatedAt. It returns nil when no product matches id.
func (c *Catalog) Update(id string, up ProductUp) (*Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.coll.Load()
	for i := range items {
		if items[i].ID != id {
			continue
		}

		p := &items[i]
		if up.Name != nil {
			p.Name = *up.Name
		}
		if up.Description != nil {
			p.Description = *up.Description
		}
		if up.Price != nil {
			p.Price = *up.Price
		}
		if up.SalePrice != nil {
			p.SalePrice = up.SalePrice
		}
		if up.Currency != nil {
			p.Currency = *up.Currency
		}
		if up.Category != nil {
			p.Category = *up.Category
		}
		if up.Images != nil {
			p.Images = *up.Images
		}
		if up.Colors != nil {
			p.Colors = *up.Colors
		}
		if up.InStock != nil {
			p.InStock = *up.InStock
		}
		if up.Featured != nil {
			p.Featured = *up.Featured
		}
		p.UpdatedAt = time.Now().UTC()

		if err := c.coll.Replace(items); err != nil {
			return nil, fmt.Errorf("persisting product update: %w", err)
		}

		out := *p
		return &out, nil
	}

	return nil, nil
}

// Delete removes the product and reports whether a removal occurred.
func (c *Catalog) Delete(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.coll.Load()
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			if err := c.coll.Replace(items); err != nil {
				return false, fmt.Errorf("persisting product removal: %w", err)
			}
			return true, nil
		}
	}

	return false, nil
}
