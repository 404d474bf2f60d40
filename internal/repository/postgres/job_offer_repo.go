package postgres

import (
	"context"
	"database/sql"
	"errors"

	"sponsorhub/internal/domain"
)

type jobOfferRepository struct {
	DB *sql.DB
}

func NewJobOfferRepository(db *sql.DB) domain.JobOfferRepository {
	return &jobOfferRepository{
		DB: db,
	}
}

func (r *jobOfferRepository) GetByID(ctx context.Context, id string) (*domain.JobOffer, error) {
	query := `
		SELECT id, company_id, title, url, created_at, updated_at
		FROM job_offers
		WHERE id = $1
	`
	j := &domain.JobOffer{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.URL, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return j, nil
}
