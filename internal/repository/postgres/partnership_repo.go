package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"sponsorhub/internal/domain"
)

type partnershipRepository struct {
	DB *sql.DB
}

func NewPartnershipRepository(db *sql.DB) domain.PartnershipRepository {
	return &partnershipRepository{
		DB: db,
	}
}

const partnershipColumns = `id, event_id, company_id, status, selected_pack_id, suggestion_pack_id, language, booth_location, organiser_id, created_at, updated_at`

func scanPartnership(row interface{ Scan(...any) error }) (*domain.Partnership, error) {
	p := &domain.Partnership{}
	var selectedNull, suggestionNull, boothNull, organiserNull sql.NullString
	err := row.Scan(
		&p.ID, &p.EventID, &p.CompanyID, &p.Status,
		&selectedNull, &suggestionNull, &p.Language, &boothNull, &organiserNull,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if selectedNull.Valid {
		p.SelectedPackID = &selectedNull.String
	}
	if suggestionNull.Valid {
		p.SuggestionPackID = &suggestionNull.String
	}
	if boothNull.Valid {
		p.BoothLocation = &boothNull.String
	}
	if organiserNull.Valid {
		p.OrganiserID = &organiserNull.String
	}
	return p, nil
}

func (r *partnershipRepository) Create(ctx context.Context, p *domain.Partnership) error {
	query := `
		INSERT INTO partnerships (event_id, company_id, status, selected_pack_id, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.EventID, p.CompanyID, p.Status, p.SelectedPackID, p.Language, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		// 23505: one partnership per (event, company) pair.
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *partnershipRepository) GetByID(ctx context.Context, id string) (*domain.Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships WHERE id = $1`
	p, err := scanPartnership(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *partnershipRepository) GetByEventAndID(ctx context.Context, eventID, id string) (*domain.Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships WHERE event_id = $1 AND id = $2`
	p, err := scanPartnership(r.DB.QueryRowContext(ctx, query, eventID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *partnershipRepository) ListByEventID(ctx context.Context, eventID string, status *domain.PartnershipStatus, params domain.PaginationParams) ([]*domain.Partnership, int, error) {
	countQuery := `SELECT COUNT(*) FROM partnerships WHERE event_id = $1 AND ($2::text IS NULL OR status = $2)`
	var statusArg sql.NullString
	if status != nil {
		statusArg = sql.NullString{String: string(*status), Valid: true}
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, eventID, statusArg).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + partnershipColumns + `
		FROM partnerships
		WHERE event_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, statusArg, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	partnerships := make([]*domain.Partnership, 0)
	for rows.Next() {
		p, err := scanPartnership(rows)
		if err != nil {
			return nil, 0, err
		}
		partnerships = append(partnerships, p)
	}
	return partnerships, total, rows.Err()
}

func (r *partnershipRepository) UpdateStatus(ctx context.Context, id string, to domain.PartnershipStatus, allowedFrom ...domain.PartnershipStatus) (bool, error) {
	from := make([]string, 0, len(allowedFrom))
	for _, s := range allowedFrom {
		from = append(from, string(s))
	}
	query := `
		UPDATE partnerships SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`
	result, err := r.DB.ExecContext(ctx, query, id, to, pq.Array(from))
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *partnershipRepository) SetSuggestion(ctx context.Context, id, packID string, language *string) (bool, error) {
	query := `
		UPDATE partnerships
		SET suggestion_pack_id = $2, language = COALESCE($3, language), updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id, packID, language)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *partnershipRepository) PromoteSuggestion(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE partnerships
		SET selected_pack_id = suggestion_pack_id, suggestion_pack_id = NULL, updated_at = NOW()
		WHERE id = $1 AND suggestion_pack_id IS NOT NULL
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *partnershipRepository) ClearSuggestion(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE partnerships
		SET suggestion_pack_id = NULL, updated_at = NOW()
		WHERE id = $1 AND suggestion_pack_id IS NOT NULL
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *partnershipRepository) UpdateBoothLocation(ctx context.Context, id string, boothLocation *string) error {
	query := `UPDATE partnerships SET booth_location = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, boothLocation)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *partnershipRepository) AssignOrganiser(ctx context.Context, id string, organiserID *string) error {
	query := `UPDATE partnerships SET organiser_id = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, organiserID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
