package lead

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewHandler(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func perform(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/leads", h.Get)
	router.POST("/leads", h.Create)
	router.DELETE("/leads", h.Delete)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	router.ServeHTTP(w, req)
	return w
}

func TestCreateDefaultsStatusNew(t *testing.T) {
	h, mock := setupHandler(t)

	rows := sqlmock.NewRows([]string{"id", "client_name", "status"}).
		AddRow(1, "Алексей", "new")
	mock.ExpectQuery(`INSERT INTO leads`).
		WithArgs(nil, "Алексей", nil, nil, "avito", "new", nil, nil, nil).
		WillReturnRows(rows)

	w := perform(h, http.MethodPost, "/leads",
		`{"client_name":"Алексей","source":"avito"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"new"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequiresClientName(t *testing.T) {
	h, _ := setupHandler(t)

	w := perform(h, http.MethodPost, "/leads", `{"phone":"+79001234567"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Missing required field: client_name")
}

func TestDeleteOnlyTouchesTimestamp(t *testing.T) {
	h, mock := setupHandler(t)

	mock.ExpectExec(`UPDATE leads SET updated_at = CURRENT_TIMESTAMP WHERE id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := perform(h, http.MethodDelete, "/leads?id=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"deleted":true,"id":"5"}`, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSucceedsOnMissingRow(t *testing.T) {
	h, mock := setupHandler(t)

	mock.ExpectExec(`UPDATE leads SET updated_at`).
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := perform(h, http.MethodDelete, "/leads?id=999", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"deleted":true,"id":"999"}`, w.Body.String())
}

func TestGetByIDNotFound(t *testing.T) {
	h, mock := setupHandler(t)

	mock.ExpectQuery(`SELECT .+ FROM leads WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := perform(h, http.MethodGet, "/leads?id=7", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Lead not found")
}
