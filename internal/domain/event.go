package domain

import (
	"context"
	"time"
)

// Event represents one edition of a conference that offers sponsorships.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ended reports whether the event has concluded at the given instant.
// Job offer promotions are refused once this is true.
func (e *Event) Ended(at time.Time) bool {
	return at.After(e.EndDate)
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
}
