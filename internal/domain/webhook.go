package domain

import (
	"context"
	"time"
)

// WebhookEventType classifies the change announced to subscribers.
type WebhookEventType string

const (
	WebhookCreated WebhookEventType = "CREATED"
	WebhookUpdated WebhookEventType = "UPDATED"
)

// WebhookSubscription is a subscriber endpoint registered for an event.
// swagger:model WebhookSubscription
type WebhookSubscription struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	URL       string    `json:"url"`
	Secret    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// WebhookSubscriptionRepository defines storage for webhook subscriptions.
type WebhookSubscriptionRepository interface {
	Create(ctx context.Context, sub *WebhookSubscription) error
	ListByEventID(ctx context.Context, eventID string) ([]*WebhookSubscription, error)
	Delete(ctx context.Context, eventID, id string) error
}

// WebhookDelivery reports the outcome of one endpoint call in a fan-out.
type WebhookDelivery struct {
	SubscriptionID string
	URL            string
	StatusCode     int
	Error          string
}

// WebhookDispatcher fans a committed change out to every endpoint subscribed
// to the event. Like notification sending it is fire-and-report: delivery
// failures are returned for logging, never as an error.
type WebhookDispatcher interface {
	SendWebhooks(ctx context.Context, eventSlug, eventID, partnershipID string, eventType WebhookEventType) []WebhookDelivery
}
