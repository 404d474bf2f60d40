package postgres

import (
	"context"
	"database/sql"
	"errors"

	"sponsorhub/internal/domain"
)

type companyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) domain.CompanyRepository {
	return &companyRepository{
		DB: db,
	}
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `
		SELECT id, name, contact_email, contact_name, site_url, created_at, updated_at
		FROM companies
		WHERE id = $1
	`
	c := &domain.Company{}
	var siteNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.ContactEmail, &c.ContactName, &siteNull, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.SiteURL = siteNull.String
	return c, nil
}
