package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"sponsorhub/internal/domain"
)

type packOptionRepository struct {
	DB *sql.DB
}

func NewPackOptionRepository(db *sql.DB) domain.PackOptionRepository {
	return &packOptionRepository{
		DB: db,
	}
}

func (r *packOptionRepository) ListByPackID(ctx context.Context, packID string) ([]*domain.PackOption, error) {
	query := `
		SELECT pack_id, option_id, required, attached_at
		FROM pack_options
		WHERE pack_id = $1
		ORDER BY attached_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, packID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	attachments := make([]*domain.PackOption, 0)
	for rows.Next() {
		po := &domain.PackOption{}
		if err := rows.Scan(&po.PackID, &po.OptionID, &po.Required, &po.AttachedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, po)
	}
	return attachments, rows.Err()
}

// ApplyDiff runs detaches, flag updates, and attaches in one transaction.
// Updates leave attached_at untouched.
func (r *packOptionRepository) ApplyDiff(ctx context.Context, packID string, diff domain.OptionDiff) error {
	if diff.Empty() {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if len(diff.Detach) > 0 {
		query := `DELETE FROM pack_options WHERE pack_id = $1 AND option_id = ANY($2)`
		if _, err := tx.ExecContext(ctx, query, packID, pq.Array(diff.Detach)); err != nil {
			return err
		}
	}
	for _, po := range diff.Update {
		query := `UPDATE pack_options SET required = $3 WHERE pack_id = $1 AND option_id = $2`
		if _, err := tx.ExecContext(ctx, query, packID, po.OptionID, po.Required); err != nil {
			return err
		}
	}
	for _, po := range diff.Attach {
		query := `INSERT INTO pack_options (pack_id, option_id, required, attached_at) VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, query, packID, po.OptionID, po.Required, po.AttachedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
