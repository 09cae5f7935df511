package handler

import (
	appexchange "github.com/bookswap/backend/internal/application/exchange"
	"github.com/bookswap/backend/internal/domain/exchange"
	"github.com/bookswap/backend/internal/domain/identity"
	"github.com/bookswap/backend/internal/interfaces/http/dto"
	"github.com/bookswap/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler exposes the book exchange transaction ledger
type TransactionHandler struct {
	BaseHandler
	service *appexchange.Service
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service *appexchange.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// RegisterRoutes wires the transaction endpoints. Deletion is reserved
// for administrators; the admin group carries a mirror of the listing
// and delete operations.
func (h *TransactionHandler) RegisterRoutes(_, authed, admin *gin.RouterGroup) {
	transactions := authed.Group("/transactions")
	transactions.POST("", h.Create)
	transactions.GET("", h.List)
	transactions.GET("/:id", h.Get)
	transactions.PUT("/:id", h.Update)
	transactions.PUT("/:id/status", h.ChangeStatus)
	transactions.DELETE("/:id", middleware.RequireRole(identity.RoleAdmin), h.Delete)

	if admin != nil {
		admin.GET("/transactions", h.List)
		admin.DELETE("/transactions/:id", h.Delete)
	}
}

// Create proposes a new exchange between two users
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	// UUID formats are already validated by the binding
	fromUserID := uuid.MustParse(req.FromUserID)
	toUserID := uuid.MustParse(req.ToUserID)
	bookID := uuid.MustParse(req.BookID)

	ex, err := h.service.Propose(c.Request.Context(), appexchange.ProposeInput{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		BookID:     bookID,
		Place:      req.Place,
		Status:     exchange.Status(req.Status),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewTransactionCreatedResponse(ex))
}

// List returns transactions matching the query filters, newest date first
func (h *TransactionHandler) List(c *gin.Context) {
	input := appexchange.ListInput{
		ExcludeCompleted: c.Query("exclude_completed") == "true",
	}
	input.Skip, input.Limit = parsePagination(c)

	if raw := c.Query("status"); raw != "" {
		status := exchange.Status(raw)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid user_id filter")
			return
		}
		input.UserID = &userID
	}
	if raw := c.Query("book_id"); raw != "" {
		bookID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid book_id filter")
			return
		}
		input.BookID = &bookID
	}

	items, err := h.service.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]dto.TransactionListItem, len(items))
	for i, item := range items {
		responses[i] = dto.NewTransactionListItem(item.Exchange, item.BookTitle)
	}
	h.OK(c, responses)
}

// Get returns a transaction with its parties and book resolved
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.NewTransactionDetail(detail.Exchange, detail.FromUser, detail.ToUser, detail.Book))
}

// Update mutates the place and/or status of a transaction
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	input := appexchange.UpdateInput{Place: req.Place}
	if req.Status != nil {
		status := exchange.Status(*req.Status)
		input.Status = &status
	}

	ex, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.NewTransactionUpdatedResponse(ex))
}

// ChangeStatus advances a transaction along its lifecycle
func (h *TransactionHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ChangeTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	ex, err := h.service.ChangeStatus(c.Request.Context(), id, exchange.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.NewTransactionStatusUpdatedResponse(ex))
}

// Delete removes a transaction from the ledger
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.TransactionDeletedResponse{Status: "deleted", ID: id.String()})
}
