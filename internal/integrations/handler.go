package integrations

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"rentcrm/internal/api"
	"rentcrm/internal/booking"
	"rentcrm/internal/config"
	"rentcrm/internal/gcal"
	"rentcrm/internal/ics"
	"rentcrm/internal/logger"
	"rentcrm/internal/metrics"
	"rentcrm/internal/payments"
)

// Handler multiplexes the integration actions behind one path, discriminated
// by the action query parameter.
type Handler struct {
	bookings  *booking.Repository
	calendar  *gcal.Client
	payments  *payments.Client
	icsDomain string
}

func NewHandler(db *sqlx.DB, cfg *config.Config) *Handler {
	return &Handler{
		bookings:  booking.NewRepository(db),
		calendar:  gcal.NewClient(cfg.Google),
		payments:  payments.NewClient(cfg.YooKassa),
		icsDomain: cfg.ICSDomain,
	}
}

// Dispatch godoc
// @Summary      Integration actions
// @Description  action=google_sync | payment_create (POST) | payment_check | export_ics
// @Tags         integrations
// @Produce      json
// @Param        action  query  string  true  "Action"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Router       /integrations [get]
func (h *Handler) Dispatch(c *gin.Context) {
	action := c.Query("action")

	switch {
	case action == "google_sync":
		h.googleSync(c)
	case action == "payment_create" && c.Request.Method == http.MethodPost:
		h.paymentCreate(c)
	case action == "payment_check":
		h.paymentCheck(c)
	case action == "export_ics":
		h.exportICS(c)
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Unknown action"})
	}
}

func (h *Handler) googleSync(c *gin.Context) {
	ctx := c.Request.Context()

	if idStr := c.Query("booking_id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking_id"})
			return
		}

		b, err := h.bookings.GetByID(ctx, id)
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		result := h.syncOne(c, &b.Booking)
		c.JSON(http.StatusOK, result)
		return
	}

	pending, err := h.bookings.ListForCalendarSync(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	results := make([]gcal.SyncResult, 0, len(pending))
	synced := 0
	for i := range pending {
		result := h.syncOne(c, &pending[i])
		if result.Success {
			synced++
		}
		results = append(results, result)
	}

	logger.Info("calendar batch sync finished", "pending", len(pending), "synced", synced)
	c.JSON(http.StatusOK, gin.H{"synced": synced, "results": results})
}

// syncOne creates the event and persists its id on the booking. Event
// creation failures become result objects, never HTTP errors.
func (h *Handler) syncOne(c *gin.Context, b *booking.Booking) gcal.SyncResult {
	ctx := c.Request.Context()

	eventID, link, err := h.calendar.CreateEvent(ctx, b)
	if err != nil {
		metrics.RecordCalendarSync("error")
		return gcal.SyncResult{Error: err.Error()}
	}

	if err := h.bookings.SetCalendarEventID(ctx, b.ID, eventID); err != nil {
		logger.Error("persisting calendar event id", "booking_id", b.ID, "err", err)
	}

	metrics.RecordCalendarSync("success")
	return gcal.SyncResult{Success: true, EventID: eventID, EventLink: link}
}

type paymentCreateRequest struct {
	BookingID int     `json:"booking_id"`
	Amount    float64 `json:"amount"`
	ReturnURL string  `json:"return_url"`
}

// paymentEntry is the element appended to the booking's payments array.
type paymentEntry struct {
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
	URL       string  `json:"url"`
}

func (h *Handler) paymentCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req paymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if req.ReturnURL == "" {
		req.ReturnURL = "https://your-site.com/success"
	}

	b, err := h.bookings.GetByID(ctx, req.BookingID)
	if errors.Is(err, booking.ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	description := fmt.Sprintf("Оплата брони #%d - %s", req.BookingID, b.ClientName)
	payment, err := h.payments.Create(ctx, req.BookingID, req.Amount, description, req.ReturnURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: paymentErrorText(err)})
		return
	}
	if payment.ID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: string(payment.Raw)})
		return
	}

	entry, err := json.Marshal([]paymentEntry{{
		PaymentID: payment.ID,
		Amount:    req.Amount,
		Status:    payment.Status,
		CreatedAt: payment.CreatedAt,
		URL:       payment.ConfirmationURL,
	}})
	if err == nil {
		if err := h.bookings.AppendPayment(ctx, req.BookingID, string(entry)); err != nil {
			logger.Error("appending payment entry", "booking_id", req.BookingID, "err", err)
		}
	}

	metrics.PaymentsCreatedTotal.Inc()
	c.Data(http.StatusOK, "application/json", payment.Raw)
}

func (h *Handler) paymentCheck(c *gin.Context) {
	ctx := c.Request.Context()

	paymentID := c.Query("payment_id")
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing payment_id"})
		return
	}

	payment, err := h.payments.Check(ctx, paymentID)
	if err != nil {
		// The check contract reports provider trouble in-band with HTTP 200.
		c.JSON(http.StatusOK, api.ErrorResponse{Error: paymentErrorText(err)})
		return
	}

	if payment.Status == "succeeded" && payment.BookingID != "" {
		bookingID, convErr := strconv.Atoi(payment.BookingID)
		amount, parseErr := strconv.ParseFloat(payment.AmountValue, 64)
		if convErr == nil && parseErr == nil {
			if err := h.bookings.CreditPaidAmount(ctx, bookingID, amount); err != nil {
				logger.Error("crediting paid amount", "booking_id", bookingID, "err", err)
			} else {
				metrics.PaymentsCreditedTotal.Inc()
			}
		}
	}

	c.Data(http.StatusOK, "application/json", payment.Raw)
}

func paymentErrorText(err error) string {
	var se *payments.StatusError
	if errors.As(err, &se) {
		return se.Body
	}
	if errors.Is(err, payments.ErrNotConfigured) {
		return "ЮKassa не настроена"
	}
	return err.Error()
}

func (h *Handler) exportICS(c *gin.Context) {
	bookings, err := h.bookings.ListForExport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	feed := ics.Generate(bookings, h.icsDomain)

	c.Header("Content-Disposition", `attachment; filename="bookings.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
