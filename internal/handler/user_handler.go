package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/service"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/middleware"
)

// UserHandler handles user API requests
type UserHandler struct {
	facade service.Facade
	auth   service.AuthService
	logger *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(facade service.Facade, auth service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		facade: facade,
		auth:   auth,
		logger: logger,
	}
}

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,notblank"`
	Password  string `json:"password" binding:"required,notblank"`
	FirstName string `json:"first_name" binding:"max=50"`
	LastName  string `json:"last_name" binding:"max=50"`
	IsAdmin   bool   `json:"is_admin"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,notblank"`
	Password  *string `json:"password" binding:"omitempty,notblank"`
	FirstName *string `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,max=50"`
	IsAdmin   *bool   `json:"is_admin"`
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	if req.IsAdmin {
		p, ok := middleware.PrincipalFromContext(c)
		if !ok || !p.IsAdmin {
			h.logger.Warn("⚠️ [UserHandler] Non-admin tried to create an admin user")
			handleServiceError(c, h.logger, apperror.Forbidden("Admin privileges required"))
			return
		}
	}

	user, err := h.facade.CreateUser(service.UserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// List handles GET /users with an optional first_name filter
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.facade.ListUsers(c.Query("first_name"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:user_id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "user_id", "user")
	if !ok {
		return
	}

	user, err := h.facade.GetUser(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:user_id; callers may edit themselves, admins anyone
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "user_id", "user")
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}
	if !canModify(p, id) {
		forbidden(c, h.logger, p, "update user")
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if req.IsAdmin != nil && !p.IsAdmin {
		h.logger.Warn("⚠️ [UserHandler] Non-admin tried to change admin status", "user_id", p.UserID)
		handleServiceError(c, h.logger, apperror.Forbidden("Admin privileges required"))
		return
	}

	user, err := h.facade.UpdateUser(id, service.UserChanges{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	// A new password ends every existing session
	if req.Password != nil {
		if err := h.auth.RevokeSessions(id); err != nil {
			handleServiceError(c, h.logger, err)
			return
		}
	}
	c.JSON(http.StatusOK, user)
}
