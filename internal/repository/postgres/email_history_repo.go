package postgres

import (
	"context"
	"database/sql"

	"sponsorhub/internal/domain"
)

type emailHistoryRepository struct {
	DB *sql.DB
}

func NewEmailHistoryRepository(db *sql.DB) domain.EmailHistoryRepository {
	return &emailHistoryRepository{
		DB: db,
	}
}

func (r *emailHistoryRepository) Create(ctx context.Context, h *domain.EmailHistory) error {
	query := `
		INSERT INTO email_history (partnership_id, variable, recipient, status, error, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		h.PartnershipID, h.Variable, h.Recipient, h.Status, h.Error, h.SentAt,
	).Scan(&h.ID)
}

func (r *emailHistoryRepository) ListByPartnershipID(ctx context.Context, partnershipID string) ([]*domain.EmailHistory, error) {
	query := `
		SELECT id, partnership_id, variable, recipient, status, error, sent_at
		FROM email_history
		WHERE partnership_id = $1
		ORDER BY sent_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, partnershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	history := make([]*domain.EmailHistory, 0)
	for rows.Next() {
		h := &domain.EmailHistory{}
		if err := rows.Scan(&h.ID, &h.PartnershipID, &h.Variable, &h.Recipient, &h.Status, &h.Error, &h.SentAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
