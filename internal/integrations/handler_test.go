package integrations

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"rentcrm/internal/config"
	"rentcrm/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewHandler(db, &config.Config{ICSDomain: "crm.rf.ru"}), mock
}

func perform(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/integrations", h.Dispatch)
	router.POST("/integrations", h.Dispatch)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	router.ServeHTTP(w, req)
	return w
}

func TestDispatchUnknownAction(t *testing.T) {
	h, _ := setupHandler(t)

	w := perform(h, http.MethodGet, "/integrations?action=telegram_sync", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Unknown action")
}

func TestDispatchPaymentCreateRequiresPost(t *testing.T) {
	h, _ := setupHandler(t)

	w := perform(h, http.MethodGet, "/integrations?action=payment_create", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Unknown action")
}

func TestExportICS(t *testing.T) {
	h, mock := setupHandler(t)

	rows := sqlmock.NewRows([]string{"id", "client_name", "client_phone", "start_date", "end_date"}).
		AddRow(42, "Иван Иванов", "+79001234567",
			time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 5, 18, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`SELECT \* FROM bookings WHERE status IN`).
		WithArgs("Бронь", "В аренде", "Оплачено").
		WillReturnRows(rows)

	w := perform(h, http.MethodGet, "/integrations?action=export_ics", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	require.Equal(t, `attachment; filename="bookings.ics"`, w.Header().Get("Content-Disposition"))
	require.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	require.Contains(t, w.Body.String(), "UID:booking-42@crm.rf.ru")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentCheckMissingID(t *testing.T) {
	h, _ := setupHandler(t)

	w := perform(h, http.MethodGet, "/integrations?action=payment_check", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Missing payment_id")
}

func TestPaymentCheckReportsProviderTroubleInBand(t *testing.T) {
	h, _ := setupHandler(t)

	w := perform(h, http.MethodGet, "/integrations?action=payment_check&payment_id=pay-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ЮKassa не настроена")
}

func TestGoogleSyncBookingNotFound(t *testing.T) {
	h, mock := setupHandler(t)

	mock.ExpectQuery(`FROM bookings b`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := perform(h, http.MethodGet, "/integrations?action=google_sync&booking_id=404", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Booking not found")
}
