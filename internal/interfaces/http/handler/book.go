package handler

import (
	appcatalog "github.com/bookswap/backend/internal/application/catalog"
	"github.com/bookswap/backend/internal/domain/catalog"
	"github.com/bookswap/backend/internal/interfaces/http/dto"
	"github.com/bookswap/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookHandler exposes the book listing surface
type BookHandler struct {
	BaseHandler
	bookService   *appcatalog.BookService
	reviewService *appcatalog.ReviewService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *appcatalog.BookService, reviewService *appcatalog.ReviewService) *BookHandler {
	return &BookHandler{
		bookService:   bookService,
		reviewService: reviewService,
	}
}

// RegisterRoutes wires the book and nested review endpoints
func (h *BookHandler) RegisterRoutes(_, authed, _ *gin.RouterGroup) {
	books := authed.Group("/books")
	books.POST("", h.Create)
	books.GET("", h.List)
	books.GET("/:id", h.Get)
	books.PUT("/:id", h.Update)
	books.DELETE("/:id", h.Delete)
	books.POST("/:id/reviews", h.CreateReview)
	books.GET("/:id/reviews", h.ListReviews)
}

// Create lists a new book owned by the caller
func (h *BookHandler) Create(c *gin.Context) {
	user := middleware.GetIdentity(c)
	if user == nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), appcatalog.CreateBookInput{
		OwnerUserID: user.ID,
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Year:        req.Year,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.BookResponseFromDomain(book))
}

// List returns books matching the query filters
func (h *BookHandler) List(c *gin.Context) {
	filter := catalog.BookFilter{
		Category: c.Query("category"),
		Author:   c.Query("author"),
	}
	filter.Skip, filter.Limit = parsePagination(c)

	if raw := c.Query("owner_user_id"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid owner_user_id filter")
			return
		}
		filter.OwnerUserID = &ownerID
	}

	books, err := h.bookService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]dto.BookResponse, len(books))
	for i, book := range books {
		responses[i] = dto.BookResponseFromDomain(book)
	}
	h.OK(c, responses)
}

// Get returns a single book
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	book, err := h.bookService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.BookResponseFromDomain(book))
}

// Update mutates the display fields of a book
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), id, middleware.GetIdentity(c), appcatalog.UpdateBookInput{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Year:     req.Year,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.BookResponseFromDomain(book))
}

// Delete removes a book listing
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.bookService.Delete(c.Request.Context(), id, middleware.GetIdentity(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Status: "deleted", ID: id.String()})
}

// CreateReview adds a review to a book, authored by the caller
func (h *BookHandler) CreateReview(c *gin.Context) {
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}

	user := middleware.GetIdentity(c)
	if user == nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), appcatalog.CreateReviewInput{
		UserID: user.ID,
		BookID: bookID,
		Rating: req.Rating,
		Text:   req.Text,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.ReviewResponseFromDomain(review))
}

// ListReviews returns the reviews left on a book
func (h *BookHandler) ListReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}
	skip, limit := parsePagination(c)

	reviews, err := h.reviewService.ListByBook(c.Request.Context(), bookID, skip, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = dto.ReviewResponseFromDomain(review)
	}
	h.OK(c, responses)
}
