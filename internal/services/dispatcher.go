package services

import (
	"context"
	"log/slog"
	"time"

	"sponsorhub/internal/domain"
)

// webhookTimeout bounds the whole fan-out for one transition.
const webhookTimeout = 10 * time.Second

type sideEffectDispatcher struct {
	logger   *slog.Logger
	sender   domain.NotificationSender
	webhooks domain.WebhookDispatcher
	history  domain.EmailHistoryRepository
	async    bool
}

// NewSideEffectDispatcher returns a dispatcher that sends the localized
// notification, records it in the email history, and fans the change out to
// webhook subscribers. All failures are logged, none are propagated.
func NewSideEffectDispatcher(logger *slog.Logger,
	sender domain.NotificationSender,
	webhooks domain.WebhookDispatcher,
	history domain.EmailHistoryRepository,
) domain.SideEffectDispatcher {
	return &sideEffectDispatcher{
		logger:   logger,
		sender:   sender,
		webhooks: webhooks,
		history:  history,
		async:    true,
	}
}

func (d *sideEffectDispatcher) Dispatch(ctx context.Context, fact domain.TransitionFact) {
	if fact.Variables != nil {
		d.notify(ctx, fact)
	}
	if fact.WebhookType == "" {
		return
	}
	if d.async {
		// The transition already committed and responded; the fan-out must
		// not hold the request goroutine hostage to slow subscribers.
		go d.fanOut(context.WithoutCancel(ctx), fact)
		return
	}
	d.fanOut(ctx, fact)
}

func (d *sideEffectDispatcher) notify(ctx context.Context, fact domain.TransitionFact) {
	msg := domain.Message{
		EventSlug: fact.Event.Slug,
		Language:  fact.Partnership.Language,
		To:        fact.Company.ContactEmail,
		Variables: fact.Variables,
	}
	result := d.sender.SendMessage(ctx, msg)
	if result.Status == domain.DeliveryFailed {
		d.logger.ErrorContext(ctx, "notification delivery failed",
			"variable", fact.Variables.Tag(),
			"partnership_id", fact.Partnership.ID,
			"to", result.To,
			"err", result.Error,
		)
	}
	h := &domain.EmailHistory{
		PartnershipID: fact.Partnership.ID,
		Variable:      fact.Variables.Tag(),
		Recipient:     result.To,
		Status:        result.Status,
		Error:         result.Error,
		SentAt:        result.SentAt,
	}
	if err := d.history.Create(ctx, h); err != nil {
		d.logger.ErrorContext(ctx, "record email history",
			"variable", fact.Variables.Tag(),
			"partnership_id", fact.Partnership.ID,
			"err", err,
		)
	}
}

func (d *sideEffectDispatcher) fanOut(ctx context.Context, fact domain.TransitionFact) {
	ctx, cancel := context.WithTimeout(ctx, webhookTimeout)
	defer cancel()
	deliveries := d.webhooks.SendWebhooks(ctx, fact.Event.Slug, fact.Event.ID, fact.Partnership.ID, fact.WebhookType)
	for _, del := range deliveries {
		if del.Error == "" && del.StatusCode < 400 {
			continue
		}
		d.logger.ErrorContext(ctx, "webhook delivery failed",
			"subscription_id", del.SubscriptionID,
			"url", del.URL,
			"status_code", del.StatusCode,
			"partnership_id", fact.Partnership.ID,
			"err", del.Error,
		)
	}
}
