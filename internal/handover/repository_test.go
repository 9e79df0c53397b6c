package handover

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

func TestListJoinsFleet(t *testing.T) {
	repo, mock := setupMock(t)

	rows := sqlmock.NewRows([]string{"id", "vehicle_id", "type", "vehicle_model", "license_plate"}).
		AddRow(2, 7, "handover", "Kia Rio", "А123БВ777").
		AddRow(1, 8, "return", nil, nil)
	mock.ExpectQuery(`LEFT JOIN fleet f ON vh\.vehicle_id = f\.id\s+ORDER BY vh\.handover_date DESC, vh\.handover_time DESC`).
		WillReturnRows(rows)

	handovers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, handovers, 2)
	require.Equal(t, "Kia Rio", *handovers[0].VehicleModel)
	require.Nil(t, handovers[1].VehicleModel)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByVehicle(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(`WHERE vh\.vehicle_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id"}).AddRow(2, 7))

	handovers, err := repo.ListByVehicle(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, handovers, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDefaultsCustomFieldsToEmptyObject(t *testing.T) {
	repo, mock := setupMock(t)

	vehicleID := 7
	p := &CreateParams{VehicleID: &vehicleID}

	mock.ExpectQuery(`INSERT INTO vehicle_handovers`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	id, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, 11, id)

	v, err := p.CustomFields.Value()
	require.NoError(t, err)
	require.Equal(t, "{}", v)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(`SELECT \* FROM vehicle_handovers WHERE id = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}
