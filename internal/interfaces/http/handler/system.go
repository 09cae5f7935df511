package handler

import (
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler exposes liveness and readiness probes
type SystemHandler struct {
	BaseHandler
	db Pinger
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// RegisterRoutes wires the system endpoints
func (h *SystemHandler) RegisterRoutes(public, _, _ *gin.RouterGroup) {
	public.GET("/health", h.Health)
	public.GET("/ready", h.Ready)
}

// Health is a liveness probe
func (h *SystemHandler) Health(c *gin.Context) {
	h.OK(c, gin.H{"status": "ok"})
}

// Ready is a readiness probe; it fails when the database is unreachable
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			h.InternalError(c, "Database is unreachable")
			return
		}
	}
	h.OK(c, gin.H{"status": "ready"})
}
