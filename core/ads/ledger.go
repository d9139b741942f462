package ads

import (
	"fmt"
	"sync"
	"time"

	"github.com/bassamfouad/mouhajer-api/store"
	"github.com/bassamfouad/mouhajer-api/validate"
)

// Ledger owns the advertisement collection. A single mutex serializes
// every read-modify-write cycle, so two counters arriving at nearly
// the same time can never clobber each other's increment. Each
// mutation still rewrites the whole collection file.
type Ledger struct {
	mu   sync.Mutex
	coll *store.Collection[Advertisement]
}

func NewLedger(coll *store.Collection[Advertisement]) *Ledger {
	return &Ledger{coll: coll}
}

// List returns every record in insertion order, unfiltered. Rotation
// filtering belongs to the consumer, not the ledger.
func (l *Ledger) List() []Advertisement {
	return l.coll.Load()
}

// Get returns the record with the given id, or nil when absent.
func (l *Ledger) Get(id string) *Advertisement {
	for _, a := range l.coll.Load() {
		if a.ID == id {
			a := a
			return &a
		}
	}
	return nil
}

func (l *Ledger) Create(na AdNew) (Advertisement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	a := Advertisement{
		ID:             validate.GenerateID(),
		Title:          na.Title,
		Description:    na.Description,
		Type:           na.Type,
		ImageURL:       na.ImageURL,
		VideoURL:       na.VideoURL,
		HTML:           na.HTML,
		LinkURL:        na.LinkURL,
		CTA:            na.CTA,
		Zone:           na.Zone,
		StartDate:      na.StartDate,
		EndDate:        na.EndDate,
		AlwaysActive:   na.AlwaysActive,
		Pages:          na.Pages,
		ShowOnAllPages: na.ShowOnAllPages,
		Priority:       na.Priority,
		MaxImpressions: na.MaxImpressions,
		Active:         na.Active,
		Featured:       na.Featured,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	items := append(l.coll.Load(), a)
	if err := l.coll.Replace(items); err != nil {
		return Advertisement{}, fmt.Errorf("persisting advertisement: %w", err)
	}

	return a, nil
}

// Update applies the non-nil fields of up and refreshes UpdatedAt.
// It returns nil when no record matches id. This is the only path
// that can re-enable an ad deactivated by its impression cap.
func (l *Ledger) Update(id string, up AdUp) (*Advertisement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.coll.Load()
	for i := range items {
		if items[i].ID != id {
			continue
		}

		a := &items[i]
		if up.Title != nil {
			a.Title = *up.Title
		}
		if up.Description != nil {
			a.Description = *up.Description
		}
		if up.Type != nil {
			a.Type = *up.Type
		}
		if up.ImageURL != nil {
			a.ImageURL = *up.ImageURL
		}
		if up.VideoURL != nil {
			a.VideoURL = *up.VideoURL
		}
		if up.HTML != nil {
			a.HTML = *up.HTML
		}
		if up.LinkURL != nil {
			a.LinkURL = *up.LinkURL
		}
		if up.CTA != nil {
			a.CTA = *up.CTA
		}
		if up.Zone != nil {
			a.Zone = *up.Zone
		}
		if up.StartDate != nil {
			a.StartDate = up.StartDate
		}
		if up.EndDate != nil {
			a.EndDate = up.EndDate
		}
		if up.AlwaysActive != nil {
			a.AlwaysActive = *up.AlwaysActive
		}
		if up.Pages != nil {
			a.Pages = *up.Pages
		}
		if up.ShowOnAllPages != nil {
			a.ShowOnAllPages = *up.ShowOnAllPages
		}
		if up.Priority != nil {
			a.Priority = *up.Priority
		}
		if up.MaxImpressions != nil {
			a.MaxImpressions = up.MaxImpressions
		}
		if up.Active != nil {
			a.Active = *up.Active
		}
		if up.Featured != nil {
			a.Featured = *up.Featured
		}
		a.UpdatedAt = time.Now().UTC()

		if err := l.coll.Replace(items); err != nil {
			return nil, fmt.Errorf("persisting advertisement update: %w", err)
		}

		out := *a
		return &out, nil
	}

	return nil, nil
}

// Delete removes the record and reports whether a removal occurred.
func (l *Ledger) Delete(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.coll.Load()
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			if err := l.coll.Replace(items); err != nil {
				return false, fmt.Errorf("persisting advertisement removal: %w", err)
			}
			return true, nil
		}
	}

	return false, nil
}

// RecordImpression increments the impression counter. When a cap is
// set and the new count reaches it, the ad is forced inactive. The
// transition is one-way: nothing here ever re-activates an ad.
// An unknown id is a no-op, not an error.
func (l *Ledger) RecordImpression(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.coll.Load()
	for i := range items {
		if items[i].ID != id {
			continue
		}

		a := &items[i]
		a.ImpressionCount++
		a.UpdatedAt = time.Now().UTC()
		if a.MaxImpressions != nil && a.ImpressionCount >= *a.MaxImpressions {
			a.Active = false
		}

		if err := l.coll.Replace(items); err != nil {
			return fmt.Errorf("persisting impression: %w", err)
		}
		return nil
	}

	return nil
}

// RecordClick increments the click counter. It never touches Active,
// ImpressionCount or MaxImpressions. An unknown id is a no-op.
func (l *Ledger) RecordClick(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.coll.Load()
	for i := range items {
		if items[i].ID != id {
			continue
		}

		a := &items[i]
		a.ClickCount++
		a.UpdatedAt = time.Now().UTC()

		if err := l.coll.Replace(items); err != nil {
			return fmt.Errorf("persisting click: %w", err)
		}
		return nil
	}

	return nil
}
