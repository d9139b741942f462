package product

import "time"

// Text carries the bilingual copy used across the showroom.
type Text struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// Variant is one color option of a product. Name doubles as the
// variant identity inside a cart line.
type Variant struct {
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Image string `json:"image"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        Text      `json:"name"`
	Description Text      `json:"description"`
	Price       int       `json:"price"`
	SalePrice   *int      `json:"salePrice,omitempty"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Colors      []Variant `json:"colors"`
	InStock     bool      `json:"inStock"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductNew struct {
	Name        Text      `json:"name" validate:"required"`
	Description Text      `json:"description"`
	Price       int       `json:"price" validate:"required,gte=0"`
	SalePrice   *int      `json:"salePrice" validate:"omitempty,gte=0"`
	Currency    string    `json:"currency" validate:"required,len=3"`
	Category    string    `json:"category" validate:"required"`
	Images      []string  `json:"images"`
	Colors      []Variant `json:"colors"`
	InStock     bool      `json:"inStock"`
	Featured    bool      `json:"featured"`
}

type ProductUp struct {
	Name        *Text      `json:"name"`
	Description *Text      `json:"description"`
	Price       *int       `json:"price" validate:"omitempty,gte=0"`
	SalePrice   *int       `json:"salePrice" validate:"omitempty,gte=0"`
	Currency    *string    `json:"currency" validate:"omitempty,len=3"`
	Category    *string    `json:"category"`
	Images      *[]string  `json:"images"`
	Colors      *[]Variant `json:"colors"`
	InStock     *bool      `json:"inStock"`
	Featured    *bool      `json:"featured"`
}
