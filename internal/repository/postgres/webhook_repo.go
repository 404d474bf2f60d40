package postgres

import (
	"context"
	"database/sql"

	"sponsorhub/internal/domain"
)

type webhookSubscriptionRepository struct {
	DB *sql.DB
}

func NewWebhookSubscriptionRepository(db *sql.DB) domain.WebhookSubscriptionRepository {
	return &webhookSubscriptionRepository{
		DB: db,
	}
}

func (r *webhookSubscriptionRepository) Create(ctx context.Context, sub *domain.WebhookSubscription) error {
	query := `
		INSERT INTO webhook_subscriptions (event_id, url, secret, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, sub.EventID, sub.URL, sub.Secret, sub.CreatedAt).Scan(&sub.ID)
}

func (r *webhookSubscriptionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.WebhookSubscription, error) {
	query := `
		SELECT id, event_id, url, secret, created_at
		FROM webhook_subscriptions
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	subs := make([]*domain.WebhookSubscription, 0)
	for rows.Next() {
		s := &domain.WebhookSubscription{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.URL, &s.Secret, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *webhookSubscriptionRepository) Delete(ctx context.Context, eventID, id string) error {
	query := `DELETE FROM webhook_subscriptions WHERE event_id = $1 AND id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
