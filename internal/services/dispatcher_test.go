package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"sponsorhub/internal/domain"
)

func testFact() domain.TransitionFact {
	return domain.TransitionFact{
		Event:       &domain.Event{ID: "ev-1", Name: "GopherConf", Slug: "gopherconf"},
		Company:     &domain.Company{ID: "co-1", Name: "Acme", ContactEmail: "sponsor@acme.test"},
		Partnership: &domain.Partnership{ID: "pt-1", EventID: "ev-1", CompanyID: "co-1", Language: "fr"},
		Variables:   domain.PartnershipValidatedVars{EventName: "GopherConf", CompanyName: "Acme", PackName: "Gold"},
		WebhookType: domain.WebhookUpdated,
	}
}

func newTestDispatcher(sender *mockNotificationSender, webhooks *mockWebhookDispatcher, history *mockEmailHistoryRepository) *sideEffectDispatcher {
	return &sideEffectDispatcher{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sender:   sender,
		webhooks: webhooks,
		history:  history,
		async:    false,
	}
}

func TestSideEffectDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("sends, records history, and fans out", func(t *testing.T) {
		sender := &mockNotificationSender{}
		webhooks := &mockWebhookDispatcher{}
		history := &mockEmailHistoryRepository{}
		d := newTestDispatcher(sender, webhooks, history)

		d.Dispatch(ctx, testFact())

		if len(sender.messages) != 1 {
			t.Fatalf("messages sent = %d, want 1", len(sender.messages))
		}
		msg := sender.messages[0]
		if msg.Language != "fr" || msg.To != "sponsor@acme.test" || msg.EventSlug != "gopherconf" {
			t.Errorf("message = %+v", msg)
		}
		if len(history.records) != 1 {
			t.Fatalf("history records = %d, want 1", len(history.records))
		}
		h := history.records[0]
		if h.Status != domain.DeliverySent || h.Variable != "partnership_validated" || h.PartnershipID != "pt-1" {
			t.Errorf("history = %+v", h)
		}
		if webhooks.calls != 1 || webhooks.eventTypes[0] != domain.WebhookUpdated {
			t.Errorf("webhook calls = %d types = %v", webhooks.calls, webhooks.eventTypes)
		}
	})

	t.Run("send failure is recorded, not raised", func(t *testing.T) {
		sender := &mockNotificationSender{fail: true}
		webhooks := &mockWebhookDispatcher{}
		history := &mockEmailHistoryRepository{}
		d := newTestDispatcher(sender, webhooks, history)

		d.Dispatch(ctx, testFact())

		if len(history.records) != 1 || history.records[0].Status != domain.DeliveryFailed {
			t.Fatalf("history = %+v, want one FAILED record", history.records)
		}
		if history.records[0].Error == "" {
			t.Errorf("failure detail missing from history")
		}
		if webhooks.calls != 1 {
			t.Errorf("webhooks must still fire after a send failure")
		}
	})

	t.Run("history failure is swallowed", func(t *testing.T) {
		sender := &mockNotificationSender{}
		webhooks := &mockWebhookDispatcher{}
		history := &mockEmailHistoryRepository{err: errors.New("db down")}
		d := newTestDispatcher(sender, webhooks, history)

		d.Dispatch(ctx, testFact())

		if webhooks.calls != 1 {
			t.Errorf("webhooks must still fire when history write fails")
		}
	})

	t.Run("failed webhook deliveries are tolerated", func(t *testing.T) {
		sender := &mockNotificationSender{}
		webhooks := &mockWebhookDispatcher{deliveries: []domain.WebhookDelivery{
			{SubscriptionID: "ws-1", URL: "https://hooks.test", StatusCode: 500},
			{SubscriptionID: "ws-2", URL: "https://hooks2.test", Error: "connection refused"},
		}}
		history := &mockEmailHistoryRepository{}
		d := newTestDispatcher(sender, webhooks, history)

		d.Dispatch(ctx, testFact())
	})

	t.Run("no webhook without an event type", func(t *testing.T) {
		sender := &mockNotificationSender{}
		webhooks := &mockWebhookDispatcher{}
		history := &mockEmailHistoryRepository{}
		d := newTestDispatcher(sender, webhooks, history)

		fact := testFact()
		fact.WebhookType = ""
		d.Dispatch(ctx, fact)

		if webhooks.calls != 0 {
			t.Errorf("webhook calls = %d, want 0", webhooks.calls)
		}
	})
}

func TestNotificationSender_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("renders the tag in the requested language", func(t *testing.T) {
		mailer := &mockMailer{}
		renderer := &mockRenderer{}
		sender := NewNotificationSender(mailer, renderer)

		result := sender.SendMessage(ctx, domain.Message{
			EventSlug: "gopherconf",
			Language:  "fr",
			To:        "sponsor@acme.test",
			Variables: domain.NewSuggestionVars{EventName: "GopherConf", CompanyName: "Acme", PackName: "Silver"},
		})
		if result.Status != domain.DeliverySent {
			t.Fatalf("result = %+v", result)
		}
		if len(renderer.rendered) != 1 || renderer.rendered[0] != "new_suggestion:fr" {
			t.Errorf("rendered = %v", renderer.rendered)
		}
		if len(mailer.sent) != 1 || mailer.sent[0] != "sponsor@acme.test" {
			t.Errorf("sent = %v", mailer.sent)
		}
	})

	t.Run("mailer failure reported in the result", func(t *testing.T) {
		mailer := &mockMailer{err: errors.New("ses throttled")}
		sender := NewNotificationSender(mailer, &mockRenderer{})

		result := sender.SendMessage(ctx, domain.Message{
			To:        "sponsor@acme.test",
			Variables: domain.NewInvoiceVars{InvoiceNumber: "INV-1"},
		})
		if result.Status != domain.DeliveryFailed || result.Error == "" {
			t.Fatalf("result = %+v, want FAILED with detail", result)
		}
	})

	t.Run("missing recipient", func(t *testing.T) {
		sender := NewNotificationSender(&mockMailer{}, &mockRenderer{})
		result := sender.SendMessage(ctx, domain.Message{Variables: domain.NewPartnershipVars{}})
		if result.Status != domain.DeliveryFailed {
			t.Fatalf("result = %+v, want FAILED", result)
		}
	})
}
