package dto

import (
	"github.com/bookswap/backend/internal/domain/exchange"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRequest is the body of POST /register
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateTransactionRequest is the body of POST /transactions.
// Status is optional and defaults to pending.
type CreateTransactionRequest struct {
	FromUserID string `json:"from_user_id" binding:"required,uuid"`
	ToUserID   string `json:"to_user_id" binding:"required,uuid"`
	BookID     string `json:"book_id" binding:"required,uuid"`
	Place      string `json:"place" binding:"required"`
	Status     string `json:"status" binding:"omitempty,exchangestatus"`
}

// UpdateTransactionRequest is the body of PUT /transactions/:id.
// Only status and place are honored; at least one must be present.
type UpdateTransactionRequest struct {
	Status *string `json:"status" binding:"omitempty,exchangestatus"`
	Place  *string `json:"place" binding:"omitempty,min=1"`
}

// ChangeTransactionStatusRequest is the body of PUT /transactions/:id/status
type ChangeTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,exchangestatus"`
}

// CreateBookRequest is the body of POST /books
type CreateBookRequest struct {
	Title    string `json:"title" binding:"required,max=500"`
	Author   string `json:"author" binding:"required"`
	Category string `json:"category" binding:"required"`
	Year     int    `json:"year" binding:"omitempty,min=0"`
}

// UpdateBookRequest is the body of PUT /books/:id
type UpdateBookRequest struct {
	Title    string `json:"title" binding:"required,max=500"`
	Author   string `json:"author" binding:"required"`
	Category string `json:"category" binding:"required"`
	Year     int    `json:"year" binding:"omitempty,min=0"`
}

// CreateCollectionRequest is the body of POST /collections
type CreateCollectionRequest struct {
	Title   string   `json:"title" binding:"required,max=200"`
	BookIDs []string `json:"book_ids" binding:"omitempty,dive,uuid"`
}

// RenameCollectionRequest is the body of PUT /collections/:id
type RenameCollectionRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}

// CollectionBookRequest is the body of POST /collections/:id/books
type CollectionBookRequest struct {
	BookID string `json:"book_id" binding:"required,uuid"`
}

// CreateReviewRequest is the body of POST /books/:id/reviews
type CreateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"required"`
}

// UpdateReviewRequest is the body of PUT /reviews/:id
type UpdateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"required"`
}

// ChangeUserRoleRequest is the body of PUT /admin/users/:id/role
type ChangeUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin moderator user"`
}

// RegisterValidators installs custom validators on gin's binding engine.
// Call once during startup before serving requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("exchangestatus", validateExchangeStatus)
}

// validateExchangeStatus accepts only the closed set of exchange statuses
func validateExchangeStatus(fl validator.FieldLevel) bool {
	return exchange.Status(fl.Field().String()).IsValid()
}
