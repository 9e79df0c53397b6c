package fleet

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestListActiveSkipsDeactivated(t *testing.T) {
	repo, mock := setupMock(t)

	rows := sqlmock.NewRows([]string{"id", "model", "license_plate"}).
		AddRow(1, "Kia Rio", "А123БВ777")
	mock.ExpectQuery(`WHERE is_active = true\s+ORDER BY model, license_plate`).
		WillReturnRows(rows)

	vehicles, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateFlipsFlagOnly(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectExec(`UPDATE fleet SET is_active = false, updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateMissingVehicle(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectExec(`UPDATE fleet SET is_active = false`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Deactivate(context.Background(), 99), ErrNotFound)
}

func TestDeleteIsHard(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectExec(`DELETE FROM fleet WHERE id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 5))
}

func TestClearReportsCount(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectExec(`DELETE FROM fleet`).
		WillReturnResult(sqlmock.NewResult(0, 12))

	n, err := repo.Clear(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 12, n)
}
