package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"sponsorhub/internal/domain"
)

type optionRepository struct {
	DB *sql.DB
}

func NewOptionRepository(db *sql.DB) domain.OptionRepository {
	return &optionRepository{
		DB: db,
	}
}

func (r *optionRepository) Create(ctx context.Context, option *domain.SponsoringOption) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO sponsoring_options (event_id, kind, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		option.EventID, option.Kind, option.Price, option.Quantity, option.CreatedAt, option.UpdatedAt,
	).Scan(&option.ID)
	if err != nil {
		return err
	}

	translationQuery := `
		INSERT INTO option_translations (option_id, language, name, description)
		VALUES ($1, $2, $3, $4)
	`
	for _, t := range option.Translations {
		if _, err := tx.ExecContext(ctx, translationQuery, option.ID, t.Language, t.Name, t.Description); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *optionRepository) GetByID(ctx context.Context, id string) (*domain.SponsoringOption, error) {
	options, err := r.ListByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, domain.ErrNotFound
	}
	return options[0], nil
}

func (r *optionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.SponsoringOption, error) {
	if len(ids) == 0 {
		return []*domain.SponsoringOption{}, nil
	}
	query := `
		SELECT id, event_id, kind, price, quantity, created_at, updated_at
		FROM sponsoring_options
		WHERE id = ANY($1)
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	options, err := scanOptions(rows)
	if err != nil {
		return nil, err
	}
	return r.loadTranslations(ctx, options)
}

func (r *optionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.SponsoringOption, error) {
	query := `
		SELECT id, event_id, kind, price, quantity, created_at, updated_at
		FROM sponsoring_options
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	options, err := scanOptions(rows)
	if err != nil {
		return nil, err
	}
	return r.loadTranslations(ctx, options)
}

func (r *optionRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var attached int
	countQuery := `SELECT COUNT(*) FROM pack_options WHERE option_id = $1`
	if err := tx.QueryRowContext(ctx, countQuery, id).Scan(&attached); err != nil {
		return err
	}
	if attached > 0 {
		return domain.ErrConflict
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM option_translations WHERE option_id = $1`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM sponsoring_options WHERE id = $1`, id)
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

func scanOptions(rows *sql.Rows) ([]*domain.SponsoringOption, error) {
	defer rows.Close()
	options := make([]*domain.SponsoringOption, 0)
	for rows.Next() {
		o := &domain.SponsoringOption{}
		var priceNull sql.NullInt64
		var quantityNull sql.NullInt64
		if err := rows.Scan(&o.ID, &o.EventID, &o.Kind, &priceNull, &quantityNull, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		if priceNull.Valid {
			o.Price = &priceNull.Int64
		}
		if quantityNull.Valid {
			q := int(quantityNull.Int64)
			o.Quantity = &q
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *optionRepository) loadTranslations(ctx context.Context, options []*domain.SponsoringOption) ([]*domain.SponsoringOption, error) {
	if len(options) == 0 {
		return options, nil
	}
	ids := make([]string, 0, len(options))
	byID := make(map[string]*domain.SponsoringOption, len(options))
	for _, o := range options {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}
	query := `
		SELECT option_id, language, name, description
		FROM option_translations
		WHERE option_id = ANY($1)
		ORDER BY option_id, language
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var optionID string
		var t domain.OptionTranslation
		if err := rows.Scan(&optionID, &t.Language, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		if o, ok := byID[optionID]; ok {
			o.Translations = append(o.Translations, t)
		}
	}
	return options, rows.Err()
}
