package submissions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobapply-backend/internal/mailer"
	"jobapply-backend/internal/shared/server/middleware"
	"jobapply-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the intake service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches submission routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/submissions", h.submit)
	rg.GET("/submissions", h.list)
}

type submitRequest struct {
	CompanyName        string `json:"company_name"`
	HRName             string `json:"hr_name"`
	HREmail            string `json:"hr_email"`
	PositionAppliedFor string `json:"position_applied_for"`
	ResumeType         string `json:"resume_type"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Submit(c.Request.Context(), Input{
		CompanyName:        req.CompanyName,
		HRName:             req.HRName,
		HREmail:            req.HREmail,
		PositionAppliedFor: req.PositionAppliedFor,
		ResumeType:         req.ResumeType,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidEmail):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrPersistenceFailed):
			respond.Error(c, http.StatusInternalServerError, "persistence_failed", "Failed to save your submission. Please try again.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong processing your submission.", nil)
		}
		return
	}

	if result.Partial {
		c.Set("emailOutcome", "failed")
		respond.JSON(c, http.StatusInternalServerError, gin.H{
			"partialSuccess": true,
			"message":        result.Message,
			"error":          emailErrorMessage(result.EmailErr),
			"data":           result.Submission,
		})
		return
	}

	c.Set("emailOutcome", "sent")
	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
		"data":    result.Submission,
	})
}

// emailErrorMessage keeps transport internals out of client responses;
// known dispatcher failures pass through as their user-facing text.
func emailErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, mailer.ErrResumeNotFound):
		return "Resume type not found"
	case errors.Is(err, mailer.ErrEmptyAttachment):
		return "The resume file could not be downloaded"
	default:
		return "Error sending application email"
	}
}

func (h *Handler) list(c *gin.Context) {
	if middleware.IsAnonymous(c) {
		respond.Error(c, http.StatusUnauthorized, "auth_required", "Authentication required to view submissions", nil)
		return
	}

	subs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch submissions", nil)
		return
	}
	if subs == nil {
		subs = []Submission{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"data": subs})
}
