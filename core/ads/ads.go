// Package ads is the advertisement ledger: CRUD over the ad
// collection plus the two counter mutations (impression, click) that
// drive rotation and the impression-cap auto-deactivation.
package ads

import "time"

type Zone string

const (
	ZoneHeader  Zone = "header"
	ZoneSidebar Zone = "sidebar"
	ZoneFooter  Zone = "footer"
	ZoneInline  Zone = "inline"
	ZonePopup   Zone = "popup"
	ZoneBanner  Zone = "banner"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaHTML  MediaType = "html"
)

type Text struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

type Advertisement struct {
	ID              string     `json:"id"`
	Title           Text       `json:"title"`
	Description     Text       `json:"description"`
	Type            MediaType  `json:"type"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	VideoURL        string     `json:"videoUrl,omitempty"`
	HTML            string     `json:"html,omitempty"`
	LinkURL         string     `json:"linkUrl"`
	CTA             Text       `json:"cta"`
	Zone            Zone       `json:"zone"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	AlwaysActive    bool       `json:"alwaysActive"`
	Pages           []string   `json:"pages"`
	ShowOnAllPages  bool       `json:"showOnAllPages"`
	Priority        int        `json:"priority"`
	ClickCount      int        `json:"clickCount"`
	ImpressionCount int        `json:"impressionCount"`
	MaxImpressions  *int       `json:"maxImpressions,omitempty"`
	Active          bool       `json:"active"`
	Featured        bool       `json:"featured"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type AdNew struct {
	Title          Text       `json:"title" validate:"required"`
	Description    Text       `json:"description"`
	Type           MediaType  `json:"type" validate:"required,oneof=image video html"`
	ImageURL       string     `json:"imageUrl" validate:"omitempty,url"`
	VideoURL       string     `json:"videoUrl" validate:"omitempty,url"`
	HTML           string     `json:"html"`
	LinkURL        string     `json:"linkUrl" validate:"omitempty,url"`
	CTA            Text       `json:"cta"`
	Zone           Zone       `json:"zone" validate:"required,oneof=header sidebar footer inline popup banner"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	AlwaysActive   bool       `json:"alwaysActive"`
	Pages          []string   `json:"pages"`
	ShowOnAllPages bool       `json:"showOnAllPages"`
	Priority       int        `json:"priority" validate:"required,gte=1,lte=10"`
	MaxImpressions *int       `json:"maxImpressions" validate:"omitempty,gte=0"`
	Active         bool       `json:"active"`
	Featured       bool       `json:"featured"`
}

// AdUp is the partial update: only non-nil fields are applied, which
// keeps the zone and priority bounds checkable before the merge.
type AdUp struct {
	Title          *Text      `json:"title"`
	Description    *Text      `json:"description"`
	Type           *MediaType `json:"type" validate:"omitempty,oneof=image video html"`
	ImageURL       *string    `json:"imageUrl" validate:"omitempty,url"`
	VideoURL       *string    `json:"videoUrl" validate:"omitempty,url"`
	HTML           *string    `json:"html"`
	LinkURL        *string    `json:"linkUrl" validate:"omitempty,url"`
	CTA            *Text      `json:"cta"`
	Zone           *Zone      `json:"zone" validate:"omitempty,oneof=header sidebar footer inline popup banner"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	AlwaysActive   *bool      `json:"alwaysActive"`
	Pages          *[]string  `json:"pages"`
	ShowOnAllPages *bool      `json:"showOnAllPages"`
	Priority       *int       `json:"priority" validate:"omitempty,gte=1,lte=10"`
	MaxImpressions *int       `json:"maxImpressions" validate:"omitempty,gte=0"`
	Active         *bool      `json:"active"`
	Featured       *bool      `json:"featured"`
}

// VisibleIn reports whether the ad belongs in the rotation for the
// given zone and page at time now. Counters are not consulted here:
// the impression cap acts through Active at record time.
func (a Advertisement) VisibleIn(zone Zone, page string, now time.Time) bool {
	if !a.Active || a.Zone != zone {
		return false
	}

	if !a.AlwaysActive {
		if a.StartDate != nil && now.Before(*a.StartDate) {
			return false
		}
		if a.EndDate != nil && now.After(*a.EndDate) {
			return false
		}
	}

	if a.ShowOnAllPages {
		return true
	}
	for _, p := range a.Pages {
		if p == page {
			return true
		}
	}
	return false
}
