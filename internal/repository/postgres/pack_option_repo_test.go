package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"sponsorhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestPackOptionRepository_ApplyDiff(t *testing.T) {
	ctx := context.Background()
	attachedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("full diff in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM pack_options WHERE pack_id = \$1 AND option_id = ANY\(\$2\)`).
			WithArgs("pk-1", pq.Array([]string{"op-c"})).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE pack_options SET required = \$3`).
			WithArgs("pk-1", "op-b", true).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO pack_options`).
			WithArgs("pk-1", "op-a", false, attachedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewPackOptionRepository(db)
		err = repo.ApplyDiff(ctx, "pk-1", domain.OptionDiff{
			Attach: []domain.PackOption{{PackID: "pk-1", OptionID: "op-a", Required: false, AttachedAt: attachedAt}},
			Update: []domain.PackOption{{PackID: "pk-1", OptionID: "op-b", Required: true}},
			Detach: []string{"op-c"},
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM pack_options`).
			WithArgs("pk-1", pq.Array([]string{"op-c"})).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		repo := NewPackOptionRepository(db)
		err = repo.ApplyDiff(ctx, "pk-1", domain.OptionDiff{Detach: []string{"op-c"}})
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty diff issues no statements", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPackOptionRepository(db)
		err = repo.ApplyDiff(ctx, "pk-1", domain.OptionDiff{})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPackOptionRepository_ListByPackID(t *testing.T) {
	ctx := context.Background()
	attachedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"pack_id", "option_id", "required", "attached_at"}).
		AddRow("pk-1", "op-a", true, attachedAt).
		AddRow("pk-1", "op-b", false, attachedAt.Add(time.Minute))
	mock.ExpectQuery(`SELECT pack_id, option_id, required, attached_at\s+FROM pack_options`).
		WithArgs("pk-1").
		WillReturnRows(rows)

	repo := NewPackOptionRepository(db)
	attachments, err := repo.ListByPackID(ctx, "pk-1")
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	require.Equal(t, "op-a", attachments[0].OptionID)
	require.True(t, attachments[0].Required)
	require.NoError(t, mock.ExpectationsWereMet())
}
