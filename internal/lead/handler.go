package lead

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
// @Summary      List leads or get one by id
// @Tags         leads
// @Produce      json
// @Param        id  query  int  false  "Lead ID"
// @Success      200  {object}  ListResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /leads [get]
func (h *Handler) Get(c *gin.Context) {
	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid lead id"})
			return
		}

		l, err := h.repo.GetByID(c.Request.Context(), id)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Lead not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, DetailResponse{Lead: l})
		return
	}

	leads, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ListResponse{Leads: leads})
}

// Create godoc
// @Summary      Create lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Success      201  {object}  DetailResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /leads [post]
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
		p.Status = "new"
	}

	l, err := h.repo.Create(c.Request.Context(), &p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, DetailResponse{Lead: l})
}

// Update godoc
// @Summary      Update lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Success      200  {object}  DetailResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /leads [put]
func (h *Handler) Update(c *gin.Context) {
	var p UpdateParams
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if p.ID == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing lead id"})
		return
	}

	l, err := h.repo.Update(c.Request.Context(), &p)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Lead not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DetailResponse{Lead: l})
}

// Delete godoc
// @Summary      Delete lead
// @Description  Timestamp-only soft delete: bumps updated_at and reports success
// @Description  whether or not the id matched a row.
// @Tags         leads
// @Produce      json
// @Param        id  query  int  true  "Lead ID"
// @Success      200  {object}  api.DeletedResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /leads [delete]
func (h *Handler) Delete(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing lead id"})
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid lead id"})
		return
	}

	if err := h.repo.Touch(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.DeletedResponse{Deleted: true, ID: idStr})
}
