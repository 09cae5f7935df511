package handler

import (
	appidentity "github.com/bookswap/backend/internal/application/identity"
	"github.com/bookswap/backend/internal/domain/identity"
	"github.com/bookswap/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler exposes the administrative user surface
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes wires the admin user endpoints
func (h *UserHandler) RegisterRoutes(_, _, admin *gin.RouterGroup) {
	users := admin.Group("/users")
	users.GET("", h.List)
	users.GET("/:id", h.Get)
	users.PUT("/:id/role", h.ChangeRole)
	users.DELETE("/:id", h.Delete)
}

// List returns all users with pagination
func (h *UserHandler) List(c *gin.Context) {
	skip, limit := parsePagination(c)

	users, err := h.userService.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		responses[i] = dto.UserResponseFromDomain(user)
	}
	h.OK(c, responses)
}

// Get returns a single user
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.UserResponseFromDomain(user))
}

// ChangeRole assigns a new role to a user
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ChangeUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), id, identity.Role(req.Role))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.UserResponseFromDomain(user))
}

// Delete removes a user account
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Status: "deleted", ID: id.String()})
}
