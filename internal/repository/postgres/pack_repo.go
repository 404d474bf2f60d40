package postgres

import (
	"context"
	"database/sql"
	"errors"

	"sponsorhub/internal/domain"
)

type packRepository struct {
	DB *sql.DB
}

func NewPackRepository(db *sql.DB) domain.PackRepository {
	return &packRepository{
		DB: db,
	}
}

func (r *packRepository) Create(ctx context.Context, pack *domain.SponsoringPack) error {
	query := `
		INSERT INTO sponsoring_packs (event_id, name, base_price, max_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		pack.EventID, pack.Name, pack.BasePrice, pack.MaxQuantity, pack.CreatedAt, pack.UpdatedAt,
	).Scan(&pack.ID)
}

func (r *packRepository) GetByID(ctx context.Context, id string) (*domain.SponsoringPack, error) {
	query := `
		SELECT id, event_id, name, base_price, max_quantity, created_at, updated_at
		FROM sponsoring_packs
		WHERE id = $1
	`
	p := &domain.SponsoringPack{}
	var maxNull sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.EventID, &p.Name, &p.BasePrice, &maxNull, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if maxNull.Valid {
		q := int(maxNull.Int64)
		p.MaxQuantity = &q
	}
	return p, nil
}

func (r *packRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.SponsoringPack, error) {
	query := `
		SELECT id, event_id, name, base_price, max_quantity, created_at, updated_at
		FROM sponsoring_packs
		WHERE event_id = $1
		ORDER BY base_price ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	packs := make([]*domain.SponsoringPack, 0)
	for rows.Next() {
		p := &domain.SponsoringPack{}
		var maxNull sql.NullInt64
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.BasePrice, &maxNull, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if maxNull.Valid {
			q := int(maxNull.Int64)
			p.MaxQuantity = &q
		}
		packs = append(packs, p)
	}
	return packs, rows.Err()
}

func (r *packRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var attached int
	countQuery := `SELECT COUNT(*) FROM pack_options WHERE pack_id = $1`
	if err := tx.QueryRowContext(ctx, countQuery, id).Scan(&attached); err != nil {
		return err
	}
	if attached > 0 {
		return domain.ErrConflict
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM sponsoring_packs WHERE id = $1`, id)
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
	return tx.Commit()
}
