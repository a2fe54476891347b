package model

import "time"

// Registrant review decisions accepted by the platform.
const (
	RegistrantAccepted = "accepted"
	RegistrantRejected = "rejected"
)

// Registrant is a volunteer who applied to an event, as returned by the
// platform's registrant listing.
type Registrant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// EventSummary is one row of the partner's event listing.
type EventSummary struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Type       string     `json:"type"`
	StartAt    *time.Time `json:"startAt,omitempty"`
	EndAt      *time.Time `json:"endAt,omitempty"`
	IsRelease  bool       `json:"isRelease"`
	Registered int        `json:"registered"`
	Quota      int        `json:"quota"`
}

// Page wraps a paginated upstream listing.  The platform reports totals
// alongside the items; the gateway forwards them untouched.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
