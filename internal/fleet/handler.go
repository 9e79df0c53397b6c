package fleet

import (
	"errors"
	"fmt"
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
// @Summary      List active vehicles or get one by id
// @Tags         fleet
// @Produce      json
// @Param        id  query  int  false  "Vehicle ID"
// @Success      200  {object}  ListResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /vehicles [get]
func (h *Handler) Get(c *gin.Context) {
	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid vehicle id"})
			return
		}

		v, err := h.repo.GetByID(c.Request.Context(), id)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Vehicle not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, v)
		return
	}

	vehicles, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ListResponse{Vehicles: vehicles, Total: len(vehicles)})
}

// Create godoc
// @Summary      Add vehicle to the fleet
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Router       /vehicles [post]
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
	if p.Status == "" {
		p.Status = "Свободен"
	}

	id, err := h.repo.Create(c.Request.Context(), &p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Vehicle created successfully"})
}

// Update godoc
// @Summary      Update vehicle
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /vehicles [put]
func (h *Handler) Update(c *gin.Context) {
	var p UpdateParams
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if p.ID == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Vehicle ID is required"})
		return
	}

	err := h.repo.Update(c.Request.Context(), &p)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Vehicle not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Vehicle updated successfully"})
}

// Deactivate godoc
// @Summary      Deactivate vehicle
// @Description  Soft removal from rotation via the is_active flag. Hard deletion lives on the admin path.
// @Tags         fleet
// @Produce      json
// @Param        id  query  int  true  "Vehicle ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /vehicles [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing vehicle id"})
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid vehicle id"})
		return
	}

	err = h.repo.Deactivate(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Vehicle not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Vehicle deactivated"})
}

// Admin godoc
// @Summary      Fleet admin operations
// @Description  DELETE with action=clear wipes the fleet; action=delete&id= removes one row.
// @Tags         fleet
// @Produce      json
// @Param        action  query  string  true   "clear or delete"
// @Param        id      query  int     false  "Vehicle ID (action=delete)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      405  {object}  api.ErrorResponse
// @Router       /vehicles/admin [delete]
func (h *Handler) Admin(c *gin.Context) {
	if c.Request.Method != http.MethodDelete {
		c.JSON(http.StatusMethodNotAllowed, api.ErrorResponse{Error: "Only DELETE method allowed"})
		return
	}

	switch c.DefaultQuery("action", "delete") {
	case "clear":
		deleted, err := h.repo.Clear(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("Удалено автомобилей: %d", deleted),
		})

	case "delete":
		idStr := c.Query("id")
		if idStr == "" {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ID автомобиля не указан"})
			return
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ID автомобиля не указан"})
			return
		}

		err = h.repo.Delete(c.Request.Context(), id)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Автомобиль не найден"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("Автомобиль %d удалён", id),
		})

	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Неизвестное действие"})
	}
}
