package handover

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"rentcrm/internal/api"
)

type Handler struct {
	repo *Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// Get godoc
// @Summary      Handover history
// @Description  Full history, one vehicle's history (vehicle_id), or a single record (id).
// @Tags         handovers
// @Produce      json
// @Param        id          query  int  false  "Handover ID"
// @Param        vehicle_id  query  int  false  "Vehicle ID"
// @Success      200  {object}  ListResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /handovers [get]
func (h *Handler) Get(c *gin.Context) {
	if vStr := c.Query("vehicle_id"); vStr != "" {
		vehicleID, err := strconv.Atoi(vStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid vehicle_id"})
			return
		}

		handovers, err := h.repo.ListByVehicle(c.Request.Context(), vehicleID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, ListResponse{Handovers: handovers})
		return
	}

	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid handover id"})
			return
		}

		rec, err := h.repo.GetByID(c.Request.Context(), id)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Handover not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, DetailResponse{Handover: rec})
		return
	}

	handovers, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListResponse{Handovers: handovers})
}

// Create godoc
// @Summary      Record vehicle handover
// @Description  Append-only: handover records are never updated or deleted.
// @Tags         handovers
// @Accept       json
// @Produce      json
// @Success      201  {object}  DetailResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /handovers [post]
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

	id, err := h.repo.Create(c.Request.Context(), &p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, DetailResponse{Handover: created})
}
