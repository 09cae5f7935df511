package handler

import (
	appcatalog "github.com/bookswap/backend/internal/application/catalog"
	"github.com/bookswap/backend/internal/interfaces/http/dto"
	"github.com/bookswap/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes standalone review operations; creation and
// listing live under the book routes
type ReviewHandler struct {
	BaseHandler
	service *appcatalog.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service *appcatalog.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// RegisterRoutes wires the review endpoints
func (h *ReviewHandler) RegisterRoutes(_, authed, _ *gin.RouterGroup) {
	reviews := authed.Group("/reviews")
	reviews.GET("/:id", h.Get)
	reviews.PUT("/:id", h.Update)
	reviews.DELETE("/:id", h.Delete)
}

// Get returns a single review
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	review, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.ReviewResponseFromDomain(review))
}

// Update edits a review's rating and text
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.service.Edit(c.Request.Context(), id, middleware.GetIdentity(c), req.Rating, req.Text)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.ReviewResponseFromDomain(review))
}

// Delete removes a review
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.GetIdentity(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Status: "deleted", ID: id.String()})
}
