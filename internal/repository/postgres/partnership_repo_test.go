package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"sponsorhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestPartnershipRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		partnership *domain.Partnership
		mock        func(mock sqlmock.Sqlmock)
		wantID      string
		wantErr     error
	}{
		{
			name: "success",
			partnership: &domain.Partnership{
				EventID:   "ev-1",
				CompanyID: "co-1",
				Status:    domain.PartnershipPending,
				Language:  "fr",
				CreatedAt: now,
				UpdatedAt: now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO partnerships`).
					WithArgs("ev-1", "co-1", domain.PartnershipPending, nil, "fr", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("pt-1"))
			},
			wantID: "pt-1",
		},
		{
			name: "duplicate company for event",
			partnership: &domain.Partnership{
				EventID:   "ev-1",
				CompanyID: "co-1",
				Status:    domain.PartnershipPending,
				Language:  "en",
				CreatedAt: now,
				UpdatedAt: now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO partnerships`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewPartnershipRepository(db)
			err = repo.Create(ctx, tt.partnership)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.partnership.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPartnershipRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success with nullable fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{
			"id", "event_id", "company_id", "status", "selected_pack_id",
			"suggestion_pack_id", "language", "booth_location", "organiser_id",
			"created_at", "updated_at",
		}).AddRow("pt-1", "ev-1", "co-1", "VALIDATED", "pk-1", nil, "en", "B12", nil, now, now)
		mock.ExpectQuery(`SELECT (.+) FROM partnerships WHERE id = \$1`).
			WithArgs("pt-1").
			WillReturnRows(rows)

		repo := NewPartnershipRepository(db)
		p, err := repo.GetByID(ctx, "pt-1")
		require.NoError(t, err)
		require.Equal(t, domain.PartnershipValidated, p.Status)
		require.NotNil(t, p.SelectedPackID)
		require.Equal(t, "pk-1", *p.SelectedPackID)
		require.Nil(t, p.SuggestionPackID)
		require.NotNil(t, p.BoothLocation)
		require.Equal(t, "B12", *p.BoothLocation)
		require.Nil(t, p.OrganiserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM partnerships WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewPartnershipRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestPartnershipRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("guard matches", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE partnerships SET status = \$2, updated_at = NOW\(\)`).
			WithArgs("pt-1", domain.PartnershipValidated, pq.Array([]string{"PENDING"})).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPartnershipRepository(db)
		updated, err := repo.UpdateStatus(ctx, "pt-1", domain.PartnershipValidated, domain.PartnershipPending)
		require.NoError(t, err)
		require.True(t, updated)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guard does not match", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE partnerships SET status = \$2, updated_at = NOW\(\)`).
			WithArgs("pt-1", domain.PartnershipDeclined, pq.Array([]string{"PENDING", "VALIDATED"})).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPartnershipRepository(db)
		updated, err := repo.UpdateStatus(ctx, "pt-1", domain.PartnershipDeclined, domain.PartnershipPending, domain.PartnershipValidated)
		require.NoError(t, err)
		require.False(t, updated)
	})
}

func TestPartnershipRepository_PromoteSuggestion(t *testing.T) {
	ctx := context.Background()

	t.Run("pending suggestion promoted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE partnerships\s+SET selected_pack_id = suggestion_pack_id, suggestion_pack_id = NULL`).
			WithArgs("pt-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPartnershipRepository(db)
		promoted, err := repo.PromoteSuggestion(ctx, "pt-1")
		require.NoError(t, err)
		require.True(t, promoted)
	})

	t.Run("no pending suggestion", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE partnerships\s+SET selected_pack_id = suggestion_pack_id, suggestion_pack_id = NULL`).
			WithArgs("pt-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPartnershipRepository(db)
		promoted, err := repo.PromoteSuggestion(ctx, "pt-1")
		require.NoError(t, err)
		require.False(t, promoted)
	})
}

func TestPartnershipRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	status := domain.PartnershipPending
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM partnerships`).
		WithArgs("ev-1", sql.NullString{String: "PENDING", Valid: true}).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	rows := sqlmock.NewRows([]string{
		"id", "event_id", "company_id", "status", "selected_pack_id",
		"suggestion_pack_id", "language", "booth_location", "organiser_id",
		"created_at", "updated_at",
	}).
		AddRow("pt-2", "ev-1", "co-2", "PENDING", nil, nil, "en", nil, nil, now, now).
		AddRow("pt-1", "ev-1", "co-1", "PENDING", "pk-1", nil, "fr", nil, nil, now.Add(-time.Hour), now)
	mock.ExpectQuery(`SELECT (.+) FROM partnerships\s+WHERE event_id = \$1`).
		WithArgs("ev-1", sql.NullString{String: "PENDING", Valid: true}, 2, 0).
		WillReturnRows(rows)

	repo := NewPartnershipRepository(db)
	partnerships, total, err := repo.ListByEventID(ctx, "ev-1", &status, domain.PaginationParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, partnerships, 2)
	require.Equal(t, "pt-2", partnerships[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
