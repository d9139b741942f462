// Package cart maintains the session-scoped shopping cart. A line is
// identified by the (product id, color name) pair: adding the same
// pair again merges into the existing line instead of appending.
package cart

import "github.com/bassamfouad/mouhajer-api/core/product"

type Cart struct {
	Items []Line `json:"items"`
	Open  bool   `json:"open"`
}

// Line is one cart row. Product display fields are copied at add time
// so the cart renders even if the catalog entry changes later.
type Line struct {
	ProductID string          `json:"productId"`
	Name      product.Text    `json:"name"`
	Price     int             `json:"price"`
	SalePrice *int            `json:"salePrice,omitempty"`
	Currency  string          `json:"currency"`
	Image     string          `json:"image"`
	Color     product.Variant `json:"color"`
	Quantity  int             `json:"quantity"`
}

// UnitPrice is the sale price when one is set, the list price
// otherwise. The sale price wins unconditionally; whether the
// discount is a real one is the catalog's problem.
func (l Line) UnitPrice() int {
	if l.SalePrice != nil {
		return *l.SalePrice
	}
	return l.Price
}

// Add merges qty into the line matching (p.ID, color.Name), creating
// the line when absent, and opens the cart.
func (c *Cart) Add(p product.Product, color product.Variant, qty int) {
	defer func() { c.Open = true }()

	for i := range c.Items {
		if c.Items[i].ProductID == p.ID && c.Items[i].Color.Name == color.Name {
			c.Items[i].Quantity += qty
			return
		}
	}

	image := color.Image
	if image == "" && len(p.Images) > 0 {
		image = p.Images[0]
	}

	c.Items = append(c.Items, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		SalePrice: p.SalePrice,
		Currency:  p.Currency,
		Image:     image,
		Color:     color,
		Quantity:  qty,
	})
}

// Remove drops the matching line. Removing an absent line is a no-op.
func (c *Cart) Remove(productID, colorName string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Color.Name == colorName {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the matching line's quantity. A quantity of
// zero or below removes the line. No-op when no line matches.
func (c *Cart) UpdateQuantity(productID, colorName string, qty int) {
	if qty <= 0 {
		c.Remove(productID, colorName)
		return
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Color.Name == colorName {
			c.Items[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c Cart) TotalItems() int {
	var n int
	for _, l := range c.Items {
		n += l.Quantity
	}
	return n
}

func (c Cart) TotalPrice() int {
	var tot int
	for _, l := range c.Items {
		tot += l.UnitPrice() * l.Quantity
	}
	return tot
}

// View is the wire shape of the cart with its derived totals.
type View struct {
	Items      []Line `json:"items"`
	Open       bool   `json:"open"`
	TotalItems int    `json:"totalItems"`
	TotalPrice int    `json:"totalPrice"`
}

func (c Cart) View() View {
	items := c.Items
	if items == nil {
		items = []Line{}
	}
	return View{
		Items:      items,
		Open:       c.Open,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}
