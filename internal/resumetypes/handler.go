package resumetypes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobapply-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the catalog service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume type routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume-types", h.list)
	rg.POST("/resume-types", h.create)
	rg.GET("/resume-types/:id", h.get)
	rg.PUT("/resume-types/:id", h.update)
	rg.DELETE("/resume-types/:id", h.deactivate)
}

func (h *Handler) list(c *gin.Context) {
	types, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch resume types", nil)
		return
	}
	if types == nil {
		types = []ResumeType{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"data": types})
}

type createRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Link        string `json:"link"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rt, err := h.Svc.Create(c.Request.Context(), CreateFields{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Link:        req.Link,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name, display_name, and link are required fields", nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, "conflict", "A resume type with this name already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to create resume type", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"data": rt})
}

func (h *Handler) get(c *gin.Context) {
	rt, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Resume type not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch resume type", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"data": rt})
}

type updateRequest struct {
	Name        *string `json:"name"`
	DisplayName *string `json:"display_name"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rt, err := h.Svc.Update(c.Request.Context(), c.Param("id"), UpdateFields{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Link:        req.Link,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Resume type not found", nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, "conflict", "A resume type with this name already exists", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to update resume type", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"data": rt})
}

// deactivate handles DELETE but never removes the row; it flips is_active
// and returns the updated record.
func (h *Handler) deactivate(c *gin.Context) {
	rt, err := h.Svc.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Resume type not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to delete resume type", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"message": "Resume type deleted successfully",
		"data":    rt,
	})
}
