package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"rentcrm/internal/api"
	"rentcrm/internal/logger"
	"rentcrm/internal/metrics"
	"rentcrm/internal/status"
)

type Handler struct {
	repo *Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// Get godoc
// @Summary      List bookings or get one by id
// @Description  Without id, returns filtered bookings newest-first. With id, returns a single booking with the live fleet join.
// @Tags         bookings
// @Produce      json
// @Param        id          query  int     false  "Booking ID"
// @Param        status      query  string  false  "Status filter (display form)"
// @Param        vehicle_id  query  int     false  "Vehicle filter"
// @Param        date_from   query  string  false  "Bookings ending on/after this date"
// @Param        date_to     query  string  false  "Bookings starting on/before this date"
// @Success      200  {object}  ListResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) Get(c *gin.Context) {
	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking id"})
			return
		}

		b, err := h.repo.GetByID(c.Request.Context(), id)
		if err == ErrNotFound {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, DetailResponse{Booking: b})
		return
	}

	filters := Filters{
		Status:   c.Query("status"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
	if v := c.Query("vehicle_id"); v != "" {
		// Non-numeric filter values fail the request instead of being dropped.
		id, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid vehicle_id"})
			return
		}
		filters.VehicleID = &id
	}

	bookings, err := h.repo.List(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ListResponse{Bookings: bookings, Total: len(bookings)})
}

// Create godoc
// @Summary      Create booking
// @Description  Creates a booking, purging the client's stale drafts and snapshotting the vehicle's model/plate.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Success      201  {object}  DetailResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) Create(c *gin.Context) {
	var p CreateParams
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if err := api.ValidateRequired(&p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	p.applyDefaults()

	ctx := c.Request.Context()

	if status.FromDisplay(p.Status) == status.Draft {
		purged, err := h.repo.PurgeStaleDrafts(ctx, p.ClientPhone)
		if err != nil {
			// Cleanup is best effort; the insert still proceeds.
			logger.Error("Failed to purge stale drafts", "phone", p.ClientPhone, "error", err)
		} else if purged > 0 {
			metrics.RecordDraftsPurged(int(purged))
			logger.Info("Purged stale draft bookings", "phone", p.ClientPhone, "count", purged)
		}
	}

	if p.VehicleID != nil {
		snap, err := h.repo.SnapshotVehicle(ctx, *p.VehicleID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}
		if snap != nil {
			p.VehicleModel = &snap.Model
			p.VehicleLicensePlate = &snap.LicensePlate
		}
	}

	id, err := h.repo.Create(ctx, &p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	metrics.RecordBookingCreated(p.Status)

	b, err := h.repo.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusCreated, gin.H{"booking": gin.H{"id": id}, "message": "Booking created successfully"})
		return
	}

	c.JSON(http.StatusCreated, DetailResponse{Booking: b, Message: "Booking created successfully"})
}

// Update godoc
// @Summary      Update booking
// @Description  Sparse update: only recognized fields present in the body are written. JSON fields are replaced whole.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id  query  int  false  "Booking ID (alternatively in body)"
// @Success      200  {object}  DetailResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /bookings [put]
func (h *Handler) Update(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid JSON"})
		return
	}

	id, ok := resolveID(c.Query("id"), body["id"])
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing booking id"})
		return
	}

	ctx := c.Request.Context()

	// Pre-check so "not found" is unambiguous even when the update is a no-op.
	exists, err := h.repo.Exists(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		return
	}

	// JSON columns are stored marshalled; everything else binds as-is.
	for _, col := range jsonUpdateFields {
		if v, ok := body[col]; ok {
			raw, err := json.Marshal(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid " + col})
				return
			}
			body[col] = string(raw)
		}
	}

	err = h.repo.Update(ctx, id, body)
	if errors.Is(err, ErrNoFieldsToUpdate) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No fields to update"})
		return
	}
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	b, err := h.repo.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"booking": gin.H{"id": id}, "message": "Booking updated successfully"})
		return
	}

	c.JSON(http.StatusOK, DetailResponse{Booking: b, Message: "Booking updated successfully"})
}

// Delete godoc
// @Summary      Cancel booking
// @Description  Soft delete: the booking's status becomes the cancelled display string, the row stays.
// @Tags         bookings
// @Produce      json
// @Param        id  query  int  true  "Booking ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /bookings [delete]
func (h *Handler) Delete(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing booking id"})
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking id"})
		return
	}

	err = h.repo.SoftDelete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	metrics.RecordBookingCancelled()

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully"})
}

// resolveID accepts an id from the query string or the body (JSON numbers
// arrive as float64).
func resolveID(query string, bodyVal interface{}) (int, bool) {
	if query != "" {
		id, err := strconv.Atoi(query)
		return id, err == nil
	}
	switch v := bodyVal.(type) {
	case float64:
		return int(v), true
	case string:
		id, err := strconv.Atoi(v)
		return id, err == nil
	default:
		return 0, false
	}
}
