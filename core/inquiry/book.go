package inquiry

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bassamfouad/mouhajer-api/random"
	"github.com/bassamfouad/mouhajer-api/store"
	"github.com/bassamfouad/mouhajer-api/validate"
)

// Book is the inquiry collection, newest last, one file on disk.
type Book struct {
	mu   sync.Mutex
	coll *store.Collection[Inquiry]
}

func NewBook(coll *store.Collection[Inquiry]) *Book {
	return &Book{coll: coll}
}

func (b *Book) List() []Inquiry {
	return b.coll.Load()
}

func (b *Book) Get(id string) *Inquiry {
	for _, q := range b.coll.Load() {
		if q.ID == id {
			q := q
			return &q
		}
	}
	return nil
}

// Create stamps the inquiry with a short human reference the customer
// can quote on the phone, e.g. INQ-7F2K9A.
func (b *Book) Create(nq InquiryNew) (Inquiry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	locale := nq.Locale
	if locale == "" {
		locale = "en"
	}

	now := time.Now().UTC()
	q := Inquiry{
		ID:        validate.GenerateID(),
		Reference: "INQ-" + strings.ToUpper(random.String(6)),
		Name:      nq.Name,
		Email:     nq.Email,
		Phone:     nq.Phone,
		Message:   nq.Message,
		ProductID: nq.ProductID,
		Locale:    locale,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	items := append(b.coll.Load(), q)
	if err := b.coll.Replace(items); err != nil {
		return Inquiry{}, fmt.Errorf("persisting inquiry: %w", err)
	}

	return q, nil
}

// UpdateStatus moves the lead along. Returns nil when id is unknown.
func (b *Book) UpdateStatus(id string, status Status) (*Inquiry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.coll.Load()
	for i := range items {
		if items[i].ID != id {
			continue
		}

		items[i].Status = status
		items[i].UpdatedAt = time.Now().UTC()

		if err := b.coll.Replace(items); err != nil {
			return nil, fmt.Errorf("persisting inquiry status: %w", err)
		}

		out := items[i]
		return &out, nil
	}

	return nil, nil
}
