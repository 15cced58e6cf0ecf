package accounts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobapply-backend/internal/shared/auth"
	"jobapply-backend/internal/shared/server/middleware"
	"jobapply-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the accounts service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches auth routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signUp)
	rg.POST("/auth/login", h.signIn)
	rg.POST("/auth/logout", h.signOut)
	rg.POST("/auth/confirm", h.confirm)
	rg.POST("/auth/reset-password", h.requestReset)
	rg.POST("/auth/reset-password/confirm", h.confirmReset)
	rg.POST("/auth/verify-token", h.verifyToken)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email and password are required", nil)
		return
	}

	outcome, err := h.Svc.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "conflict", ErrEmailTaken.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to create account", nil)
		}
		return
	}

	if outcome.NeedsConfirmation {
		respond.JSON(c, http.StatusOK, gin.H{
			"success":           true,
			"needsConfirmation": true,
			"message":           "Check your email to confirm your account.",
		})
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{
		"success": true,
		"token":   outcome.Session.Token,
		"user":    outcome.Session.User,
	})
}

func (h *Handler) signIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email and password are required", nil)
		return
	}

	session, err := h.Svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfirmed):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", ErrNotConfirmed.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"token":   session.Token,
		"user":    session.User,
	})
}

func (h *Handler) signOut(c *gin.Context) {
	h.Svc.SignOut(middleware.UserEmailFromContext(c))
	respond.JSON(c, http.StatusOK, gin.H{"success": true})
}

type tokenRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) confirm(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "token is required", nil)
		return
	}

	if err := h.Svc.Confirm(c.Request.Context(), req.Token); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "account not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to confirm account", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"success": true, "message": "Email confirmed. You can sign in now."})
}

type resetRequest struct {
	Email string `json:"email"`
}

func (h *Handler) requestReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}

	// Always success-shaped so callers cannot probe which emails exist.
	_ = h.Svc.RequestPasswordReset(c.Request.Context(), req.Email)
	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"message": "If an account exists for that email, a reset link has been sent.",
	})
}

func (h *Handler) confirmReset(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.NewPassword == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "token and new_password are required", nil)
		return
	}

	if err := h.Svc.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "account not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to reset password", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"success": true, "message": "Password updated. You can sign in now."})
}

func (h *Handler) verifyToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "token is required", nil)
		return
	}

	user, err := h.Svc.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"valid": true, "user": user})
}
