package finance

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
// @Summary      List finance operations or get one by id
// @Tags         finances
// @Produce      json
// @Param        id        query  int     false  "Operation ID"
// @Param        category  query  string  false  "Category filter"
// @Success      200  {object}  ListResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /finances [get]
func (h *Handler) Get(c *gin.Context) {
	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid operation id"})
			return
		}

		op, err := h.repo.GetByID(c.Request.Context(), id)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Operation not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, DetailResponse{Operation: op})
		return
	}

	ops, err := h.repo.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ListResponse{Operations: ops})
}

// Create godoc
// @Summary      Record finance operation
// @Tags         finances
// @Accept       json
// @Produce      json
// @Success      201  {object}  DetailResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /finances [post]
func (h *Handler) Create(c *gin.Context) {
	var p CreateParams
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if p.Date == "" {
		p.Date = time.Now().Format(time.RFC3339)
	}
	if p.Category == "" {
		p.Category = "payment"
	}
	if p.Status == "" {
		p.Status = "completed"
	}

	op, err := h.repo.Create(c.Request.Context(), &p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, DetailResponse{Operation: op})
}

// Update godoc
// @Summary      Update finance operation
// @Tags         finances
// @Accept       json
// @Produce      json
// @Success      200  {object}  DetailResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /finances [put]
func (h *Handler) Update(c *gin.Context) {
	var p UpdateParams
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if p.ID == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing operation id"})
		return
	}

	op, err := h.repo.Update(c.Request.Context(), &p)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Operation not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DetailResponse{Operation: op})
}

// Delete godoc
// @Summary      Delete finance operation
// @Description  Timestamp-only soft delete: bumps updated_at, reports success regardless.
// @Tags         finances
// @Produce      json
// @Param        id  query  int  true  "Operation ID"
// @Success      200  {object}  api.DeletedResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /finances [delete]
func (h *Handler) Delete(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing operation id"})
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid operation id"})
		return
	}

	if err := h.repo.Touch(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.DeletedResponse{Deleted: true, ID: idStr})
}
