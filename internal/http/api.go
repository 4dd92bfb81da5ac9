package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"account-server/internal/auth"
	"account-server/internal/domain"
	"account-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth   service.AuthService
	users  service.UserService
	tokens *auth.TokenCodec
	loader UserLoader
	logger *logrus.Logger
}

func NewHandler(authSvc service.AuthService, users service.UserService, tokens *auth.TokenCodec, loader UserLoader, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:   authSvc,
		users:  users,
		tokens: tokens,
		loader: loader,
		logger: logger,
	}
}

// RegisterRoutes mounts all routes. Registration, login and health are public
// and never consult the auth gate; everything under /api/users requires a
// valid token.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestIDMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", h.register)
			authRoutes.POST("/login", h.login)
		}

		users := api.Group("/users")
		users.Use(authGate(h.tokens, h.loader, h.logger), requireIdentity())
		{
			users.GET("/me", h.getMe)
			users.PUT("/me", h.updateMe)
			users.DELETE("/me", h.deleteMe)
			users.PUT("/me/password", h.changePassword)
		}
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"user":    userToResponse(user),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   token,
		"user":    userToResponse(user),
	})
}

func (h *Handler) getMe(c *gin.Context) {
	user, err := h.auth.AuthenticatedUser(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) updateMe(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := auth.MustIdentityFrom(c.Request.Context())
	user, err := h.users.Update(c.Request.Context(), identity.UserID, req.Name, req.Email)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) deleteMe(c *gin.Context) {
	identity := auth.MustIdentityFrom(c.Request.Context())
	if err := h.users.Delete(c.Request.Context(), identity.UserID); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := auth.MustIdentityFrom(c.Request.Context())
	if err := h.users.ChangePassword(c.Request.Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// renderError maps business errors to HTTP statuses. Anything outside the
// known taxonomy is an internal fault and says nothing about its cause.
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.logger.Errorf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}
