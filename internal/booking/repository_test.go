package booking

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func TestPurgeStaleDrafts(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec("DELETE FROM bookings").
		WithArgs("+79001234567", "Черновик").
		WillReturnResult(sqlmock.NewResult(0, 2))

	purged, err := repo.PurgeStaleDrafts(context.Background(), "+79001234567")
	require.NoError(t, err)
	require.Equal(t, int64(2), purged)
}

func TestSnapshotVehicle(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT model, license_plate FROM fleet WHERE id = $1")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"model", "license_plate"}).
			AddRow("Kia Rio", "А123БВ777"))

	snap, err := repo.SnapshotVehicle(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, "Kia Rio", snap.Model)
	require.Equal(t, "А123БВ777", snap.LicensePlate)

	// a missing vehicle is not an error, the caller keeps the request values
	mock.ExpectQuery(regexp.QuoteMeta("SELECT model, license_plate FROM fleet WHERE id = $1")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"model", "license_plate"}))

	snap, err = repo.SnapshotVehicle(context.Background(), 99)
	require.NoError(t, err)
	require.Nil(t, snap)
}

func TestUpdateSparseFields(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	// recognized columns are emitted in declaration order, SET args before WHERE
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, total_price = $2 WHERE id = $3")).
		WithArgs("В аренде", 5000.0, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 7, map[string]interface{}{
		"status":      "В аренде",
		"total_price": 5000.0,
		"unknown_col": "ignored",
	})
	require.NoError(t, err)
}

func TestUpdateJSONFieldReplacedWhole(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET services = CAST($1 AS jsonb) WHERE id = $2")).
		WithArgs(`[{"name":"GPS"}]`, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 3, map[string]interface{}{
		"services": `[{"name":"GPS"}]`,
	})
	require.NoError(t, err)
}

func TestUpdateNoRecognizedFields(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	err := repo.Update(context.Background(), 7, map[string]interface{}{
		"id":          7,
		"unknown_col": "x",
	})
	require.ErrorIs(t, err, ErrNoFieldsToUpdate)

	// nothing reaches the database
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingBooking(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1 WHERE id = $2")).
		WithArgs("Оплачено", 404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 404, map[string]interface{}{"status": "Оплачено"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSoftDelete(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1 WHERE id = $2")).
		WithArgs("Отменено", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SoftDelete(context.Background(), 5)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1 WHERE id = $2")).
		WithArgs("Отменено", 6).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SoftDelete(context.Background(), 6)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreditPaidAmountAccumulates(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	// the credit is a blind increment: polling the same succeeded payment
	// twice adds twice
	for i := 0; i < 2; i++ {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET paid_amount = paid_amount + $1 WHERE id = $2")).
			WithArgs(1500.0, 9).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CreditPaidAmount(context.Background(), 9, 1500.0)
		require.NoError(t, err)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendPayment(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	entry := `[{"payment_id":"pay-1","amount":1500,"status":"pending"}]`
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET payments = COALESCE(payments, '[]'::jsonb) || $1::jsonb WHERE id = $2")).
		WithArgs(entry, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AppendPayment(context.Background(), 9, entry))
}
