package router

import (
	"github.com/bookswap/backend/internal/domain/identity"
	"github.com/bookswap/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers routes onto the shared route groups.
// public carries no authentication, authed sits behind the token guard,
// and admin additionally requires the admin role.
type RouteRegistrar interface {
	RegisterRoutes(public, authed, admin *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	authConfig middleware.AuthConfig
	registrars []RouteRegistrar
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, authConfig middleware.AuthConfig) *Router {
	return &Router{
		engine:     engine,
		authConfig: authConfig,
		registrars: make([]RouteRegistrar, 0),
	}
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup builds the route groups and registers all routes
func (r *Router) Setup() {
	public := r.engine.Group("")

	authed := r.engine.Group("")
	authed.Use(middleware.Authenticate(r.authConfig))

	admin := r.engine.Group("/admin")
	admin.Use(middleware.Authenticate(r.authConfig), middleware.RequireRole(identity.RoleAdmin))

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(public, authed, admin)
	}
}
