package client

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

// List godoc
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Success      200  {object}  ListResponse
// @Router       /clients [get]
func (h *Handler) List(c *gin.Context) {
	clients, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListResponse{Clients: clients})
}

// Create godoc
// @Summary      Create client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Success      201  {object}  DetailResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /clients [post]
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
	if p.Source == "" {
		p.Source = "manual"
	}

	cl, err := h.repo.Create(c.Request.Context(), &p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, DetailResponse{Client: cl})
}

// Update godoc
// @Summary      Update client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Success      200  {object}  DetailResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /clients [put]
func (h *Handler) Update(c *gin.Context) {
	var p UpdateParams
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if p.ID == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing client id"})
		return
	}

	cl, err := h.repo.Update(c.Request.Context(), &p)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Client not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DetailResponse{Client: cl})
}

// Delete godoc
// @Summary      Delete client
// @Description  Hard delete: the row is removed.
// @Tags         clients
// @Produce      json
// @Param        id  query  int  true  "Client ID"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /clients [delete]
func (h *Handler) Delete(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing client id"})
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid client id"})
		return
	}

	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Client not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
