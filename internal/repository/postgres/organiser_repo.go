package postgres

import (
	"context"
	"database/sql"
	"errors"

	"sponsorhub/internal/domain"
)

type organiserRepository struct {
	DB *sql.DB
}

func NewOrganiserRepository(db *sql.DB) domain.OrganiserRepository {
	return &organiserRepository{
		DB: db,
	}
}

const organiserColumns = `id, email, name, password_hash, salt, created_at, updated_at`

func (r *organiserRepository) GetByID(ctx context.Context, id string) (*domain.Organiser, error) {
	query := `SELECT ` + organiserColumns + ` FROM organisers WHERE id = $1`
	o := &domain.Organiser{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Email, &o.Name, &o.PasswordHash, &o.Salt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *organiserRepository) GetByEmail(ctx context.Context, email string) (*domain.Organiser, error) {
	query := `SELECT ` + organiserColumns + ` FROM organisers WHERE email = $1`
	o := &domain.Organiser{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&o.ID, &o.Email, &o.Name, &o.PasswordHash, &o.Salt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
