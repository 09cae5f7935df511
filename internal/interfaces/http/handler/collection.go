package handler

import (
	appcatalog "github.com/bookswap/backend/internal/application/catalog"
	"github.com/bookswap/backend/internal/domain/catalog"
	"github.com/bookswap/backend/internal/interfaces/http/dto"
	"github.com/bookswap/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CollectionHandler exposes the collection surface
type CollectionHandler struct {
	BaseHandler
	service *appcatalog.CollectionService
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(service *appcatalog.CollectionService) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// RegisterRoutes wires the collection endpoints
func (h *CollectionHandler) RegisterRoutes(_, authed, _ *gin.RouterGroup) {
	collections := authed.Group("/collections")
	collections.POST("", h.Create)
	collections.GET("", h.List)
	collections.GET("/:id", h.Get)
	collections.PUT("/:id", h.Rename)
	collections.DELETE("/:id", h.Delete)
	collections.POST("/:id/books", h.AddBook)
	collections.DELETE("/:id/books/:book_id", h.RemoveBook)
}

// Create creates a collection owned by the caller, optionally seeded with
// books
func (h *CollectionHandler) Create(c *gin.Context) {
	user := middleware.GetIdentity(c)
	if user == nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	bookIDs := make([]uuid.UUID, len(req.BookIDs))
	for i, raw := range req.BookIDs {
		bookIDs[i] = uuid.MustParse(raw)
	}

	collection, err := h.service.Create(c.Request.Context(), appcatalog.CreateCollectionInput{
		OwnerUserID: user.ID,
		Title:       req.Title,
		BookIDs:     bookIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.CollectionResponseFromDomain(collection))
}

// List returns collections, optionally filtered by owner
func (h *CollectionHandler) List(c *gin.Context) {
	if raw := c.Query("owner_user_id"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid owner_user_id filter")
			return
		}
		collections, err := h.service.ListByOwner(c.Request.Context(), ownerID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.respondList(c, collections)
		return
	}

	skip, limit := parsePagination(c)
	collections, err := h.service.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondList(c, collections)
}

// Get returns a single collection
func (h *CollectionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	collection, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.CollectionResponseFromDomain(collection))
}

// Rename changes the collection title
func (h *CollectionHandler) Rename(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.RenameCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	collection, err := h.service.Rename(c.Request.Context(), id, middleware.GetIdentity(c), req.Title)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.CollectionResponseFromDomain(collection))
}

// AddBook adds a book to a collection
func (h *CollectionHandler) AddBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CollectionBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	collection, err := h.service.AddBook(c.Request.Context(), id, middleware.GetIdentity(c), uuid.MustParse(req.BookID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.CollectionResponseFromDomain(collection))
}

// RemoveBook removes a book from a collection
func (h *CollectionHandler) RemoveBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	bookID, ok := parseUUIDParam(c, "book_id")
	if !ok {
		return
	}

	collection, err := h.service.RemoveBook(c.Request.Context(), id, middleware.GetIdentity(c), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.CollectionResponseFromDomain(collection))
}

// Delete removes a collection
func (h *CollectionHandler) Delete(c *gin.Context) {
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

func (h *CollectionHandler) respondList(c *gin.Context, collections []*catalog.Collection) {
	responses := make([]dto.CollectionResponse, len(collections))
	for i, collection := range collections {
		responses[i] = dto.CollectionResponseFromDomain(collection)
	}
	h.OK(c, responses)
}
