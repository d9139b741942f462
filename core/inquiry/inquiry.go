// Package inquiry stores customer project inquiries, the CRM side of
// the showroom: a visitor asks about a product or a full interior
// project and the back office works the lead through its statuses.
package inquiry

import "time"

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusClosed    Status = "closed"
)

type Inquiry struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	ProductID string    `json:"productId,omitempty"`
	Locale    string    `json:"locale"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type InquiryNew struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
	Message   string `json:"message" validate:"required,max=4000"`
	ProductID string `json:"productId" validate:"omitempty,uuid4"`
	Locale    string `json:"locale" validate:"omitempty,oneof=en ar"`
}

type StatusUp struct {
	Status Status `json:"status" validate:"required,oneof=new contacted closed"`
}
