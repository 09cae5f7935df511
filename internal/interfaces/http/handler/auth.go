package handler

import (
	"github.com/bookswap/backend/internal/application/identity"
	"github.com/bookswap/backend/internal/interfaces/http/dto"
	"github.com/bookswap/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes wires the auth endpoints
func (h *AuthHandler) RegisterRoutes(public, authed, _ *gin.RouterGroup) {
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)

	authed.POST("/logout", h.Logout)
	authed.GET("/me", h.Me)
}

// Register creates a new account with the default role
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), identity.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.RegisterResponse{Username: result.Username})
}

// Login authenticates a user and returns a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		UserID:      result.UserID.String(),
		Role:        string(result.Role),
	})
}

// Logout revokes the presented token for the rest of its lifetime
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.LogoutResponse{Status: "logged_out"})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetIdentity(c)
	if user == nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	h.OK(c, dto.UserResponseFromDomain(user))
}
