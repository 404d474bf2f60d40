package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"sponsorhub/internal/domain"
)

type promotionRepository struct {
	DB *sql.DB
}

func NewPromotionRepository(db *sql.DB) domain.PromotionRepository {
	return &promotionRepository{
		DB: db,
	}
}

const promotionColumns = `id, job_offer_id, partnership_id, event_id, status, promoted_at, reviewed_at, reviewed_by, decline_reason`

func scanPromotion(row interface{ Scan(...any) error }) (*domain.JobOfferPromotion, error) {
	p := &domain.JobOfferPromotion{}
	var reviewedAtNull sql.NullTime
	var reviewedByNull, reasonNull sql.NullString
	err := row.Scan(
		&p.ID, &p.JobOfferID, &p.PartnershipID, &p.EventID, &p.Status,
		&p.PromotedAt, &reviewedAtNull, &reviewedByNull, &reasonNull,
	)
	if err != nil {
		return nil, err
	}
	if reviewedAtNull.Valid {
		p.ReviewedAt = &reviewedAtNull.Time
	}
	if reviewedByNull.Valid {
		p.ReviewedBy = &reviewedByNull.String
	}
	if reasonNull.Valid {
		p.DeclineReason = &reasonNull.String
	}
	return p, nil
}

func (r *promotionRepository) Create(ctx context.Context, p *domain.JobOfferPromotion) error {
	query := `
		INSERT INTO job_offer_promotions (job_offer_id, partnership_id, event_id, status, promoted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.JobOfferID, p.PartnershipID, p.EventID, p.Status, p.PromotedAt,
	).Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		// 23505: one promotion per (job offer, partnership) pair.
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *promotionRepository) GetByID(ctx context.Context, id string) (*domain.JobOfferPromotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM job_offer_promotions WHERE id = $1`
	p, err := scanPromotion(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *promotionRepository) GetByJobOfferAndPartnership(ctx context.Context, jobOfferID, partnershipID string) (*domain.JobOfferPromotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM job_offer_promotions WHERE job_offer_id = $1 AND partnership_id = $2`
	p, err := scanPromotion(r.DB.QueryRowContext(ctx, query, jobOfferID, partnershipID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *promotionRepository) ListByEventID(ctx context.Context, eventID string, status *domain.PromotionStatus, params domain.PaginationParams) ([]*domain.JobOfferPromotion, int, error) {
	var statusArg sql.NullString
	if status != nil {
		statusArg = sql.NullString{String: string(*status), Valid: true}
	}
	countQuery := `SELECT COUNT(*) FROM job_offer_promotions WHERE event_id = $1 AND ($2::text IS NULL OR status = $2)`
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, eventID, statusArg).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + promotionColumns + `
		FROM job_offer_promotions
		WHERE event_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY promoted_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, statusArg, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	promotions := make([]*domain.JobOfferPromotion, 0)
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, 0, err
		}
		promotions = append(promotions, p)
	}
	return promotions, total, rows.Err()
}

func (r *promotionRepository) Reactivate(ctx context.Context, id string, promotedAt time.Time) (bool, error) {
	query := `
		UPDATE job_offer_promotions
		SET status = 'PENDING', promoted_at = $2, reviewed_at = NULL, reviewed_by = NULL, decline_reason = NULL
		WHERE id = $1 AND status = 'DECLINED'
	`
	result, err := r.DB.ExecContext(ctx, query, id, promotedAt)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *promotionRepository) Review(ctx context.Context, id string, status domain.PromotionStatus, reviewedBy string, reviewedAt time.Time, declineReason *string) (bool, error) {
	query := `
		UPDATE job_offer_promotions
		SET status = $2, reviewed_by = $3, reviewed_at = $4, decline_reason = $5
		WHERE id = $1 AND status = 'PENDING'
	`
	result, err := r.DB.ExecContext(ctx, query, id, status, reviewedBy, reviewedAt, declineReason)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
