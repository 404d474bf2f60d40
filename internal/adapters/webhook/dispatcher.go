package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"sponsorhub/internal/domain"
)

// payload is the JSON body posted to every subscribed endpoint. ID is unique
// per delivery so receivers can deduplicate retries.
type payload struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	EventSlug     string    `json:"event_slug"`
	EventID       string    `json:"event_id"`
	PartnershipID string    `json:"partnership_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type httpDispatcher struct {
	subscriptions domain.WebhookSubscriptionRepository
	client        *http.Client
}

// NewHTTPDispatcher returns a WebhookDispatcher that posts JSON payloads to
// every endpoint subscribed to the event. A nil client falls back to a
// default with a 10 second timeout.
func NewHTTPDispatcher(subscriptions domain.WebhookSubscriptionRepository, client *http.Client) domain.WebhookDispatcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &httpDispatcher{
		subscriptions: subscriptions,
		client:        client,
	}
}

func (d *httpDispatcher) SendWebhooks(ctx context.Context, eventSlug, eventID, partnershipID string, eventType domain.WebhookEventType) []domain.WebhookDelivery {
	subs, err := d.subscriptions.ListByEventID(ctx, eventID)
	if err != nil {
		return []domain.WebhookDelivery{{Error: "list subscriptions: " + err.Error()}}
	}
	deliveries := make([]domain.WebhookDelivery, 0, len(subs))
	for _, sub := range subs {
		deliveries = append(deliveries, d.deliver(ctx, sub, payload{
			ID:            uuid.NewString(),
			Type:          string(eventType),
			EventSlug:     eventSlug,
			EventID:       eventID,
			PartnershipID: partnershipID,
			OccurredAt:    time.Now().UTC(),
		}))
	}
	return deliveries
}

func (d *httpDispatcher) deliver(ctx context.Context, sub *domain.WebhookSubscription, p payload) domain.WebhookDelivery {
	delivery := domain.WebhookDelivery{
		SubscriptionID: sub.ID,
		URL:            sub.URL,
	}
	body, err := json.Marshal(p)
	if err != nil {
		delivery.Error = err.Error()
		return delivery
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(body))
	if err != nil {
		delivery.Error = err.Error()
		return delivery
	}
	req.Header.Set("Content-Type", "application/json")
	if sub.Secret != "" {
		req.Header.Set("Authorization", "Bearer "+sub.Secret)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		delivery.Error = err.Error()
		return delivery
	}
	defer resp.Body.Close()
	delivery.StatusCode = resp.StatusCode
	return delivery
}
