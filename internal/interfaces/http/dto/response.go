package dto

import (
	"time"

	"github.com/bookswap/backend/internal/domain/catalog"
	"github.com/bookswap/backend/internal/domain/exchange"
	"github.com/bookswap/backend/internal/domain/identity"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Username string `json:"username"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

// LogoutResponse is returned after a successful logout
type LogoutResponse struct {
	Status string `json:"status"`
}

// UserResponse is the projection of a user; the password digest never
// leaves the domain layer
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserResponseFromDomain converts a domain User to its response projection
func UserResponseFromDomain(u *identity.User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     string(u.Role),
	}
}

// UserRef is the nested user projection on transaction detail responses
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// BookRef is the nested book projection on transaction detail responses
type BookRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// TransactionRef carries the id and status of a transaction inside
// mutation acknowledgements
type TransactionRef struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TransactionCreatedResponse acknowledges a created transaction
type TransactionCreatedResponse struct {
	ID          string         `json:"id"`
	Status      string         `json:"status"`
	Transaction TransactionRef `json:"transaction"`
}

// NewTransactionCreatedResponse builds the acknowledgement for a create
func NewTransactionCreatedResponse(ex *exchange.Exchange) TransactionCreatedResponse {
	return TransactionCreatedResponse{
		ID:     ex.ID.String(),
		Status: "created",
		Transaction: TransactionRef{
			ID:     ex.ID.String(),
			Status: ex.Status.String(),
		},
	}
}

// TransactionUpdatedResponse acknowledges an updated transaction
type TransactionUpdatedResponse struct {
	ID          string         `json:"id"`
	Status      string         `json:"status"`
	Transaction TransactionRef `json:"transaction"`
}

// NewTransactionUpdatedResponse builds the acknowledgement for an update
func NewTransactionUpdatedResponse(ex *exchange.Exchange) TransactionUpdatedResponse {
	return TransactionUpdatedResponse{
		ID:     ex.ID.String(),
		Status: "updated",
		Transaction: TransactionRef{
			ID:     ex.ID.String(),
			Status: ex.Status.String(),
		},
	}
}

// TransactionStatusUpdatedResponse acknowledges a status change
type TransactionStatusUpdatedResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	NewStatus string `json:"new_status"`
}

// NewTransactionStatusUpdatedResponse builds the acknowledgement for a
// status change
func NewTransactionStatusUpdatedResponse(ex *exchange.Exchange) TransactionStatusUpdatedResponse {
	return TransactionStatusUpdatedResponse{
		ID:        ex.ID.String(),
		Status:    "status_updated",
		NewStatus: ex.Status.String(),
	}
}

// TransactionDeletedResponse acknowledges a deleted transaction
type TransactionDeletedResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// TransactionListItem is a list entry with a denormalized book title
type TransactionListItem struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	BookID     string    `json:"book_id"`
	Place      string    `json:"place"`
	Status     string    `json:"status"`
	BookTitle  string    `json:"book_title"`
}

// NewTransactionListItem builds a list entry; bookTitle may be empty when
// the book no longer exists
func NewTransactionListItem(ex *exchange.Exchange, bookTitle string) TransactionListItem {
	return TransactionListItem{
		ID:         ex.ID.String(),
		Date:       ex.Date,
		FromUserID: ex.FromUserID.String(),
		ToUserID:   ex.ToUserID.String(),
		BookID:     ex.BookID.String(),
		Place:      ex.Place,
		Status:     ex.Status.String(),
		BookTitle:  bookTitle,
	}
}

// TransactionDetail is the detailed projection with nested parties and book
type TransactionDetail struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	FromUser *UserRef  `json:"from_user"`
	ToUser   *UserRef  `json:"to_user"`
	Book     *BookRef  `json:"book"`
	Place    string    `json:"place"`
	Status   string    `json:"status"`
}

// NewTransactionDetail builds the detailed projection; any of the nested
// references may be nil when the referenced row has been deleted
func NewTransactionDetail(ex *exchange.Exchange, from, to *identity.User, book *catalog.Book) TransactionDetail {
	detail := TransactionDetail{
		ID:     ex.ID.String(),
		Date:   ex.Date,
		Place:  ex.Place,
		Status: ex.Status.String(),
	}
	if from != nil {
		detail.FromUser = &UserRef{ID: from.ID.String(), Username: from.Username}
	}
	if to != nil {
		detail.ToUser = &UserRef{ID: to.ID.String(), Username: to.Username}
	}
	if book != nil {
		detail.Book = &BookRef{ID: book.ID.String(), Title: book.Title, Author: book.Author}
	}
	return detail
}

// BookResponse is the projection of a book
type BookResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Year        int    `json:"year,omitempty"`
	OwnerUserID string `json:"owner_user_id"`
}

// BookResponseFromDomain converts a domain Book to its response projection
func BookResponseFromDomain(b *catalog.Book) BookResponse {
	return BookResponse{
		ID:          b.ID.String(),
		Title:       b.Title,
		Author:      b.Author,
		Category:    b.Category,
		Year:        b.Year,
		OwnerUserID: b.OwnerUserID.String(),
	}
}

// CollectionResponse is the projection of a collection
type CollectionResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	OwnerUserID string   `json:"owner_user_id"`
	BookIDs     []string `json:"book_ids"`
}

// CollectionResponseFromDomain converts a domain Collection to its
// response projection
func CollectionResponseFromDomain(c *catalog.Collection) CollectionResponse {
	bookIDs := make([]string, len(c.BookIDs))
	for i, id := range c.BookIDs {
		bookIDs[i] = id.String()
	}
	return CollectionResponse{
		ID:          c.ID.String(),
		Title:       c.Title,
		OwnerUserID: c.OwnerUserID.String(),
		BookIDs:     bookIDs,
	}
}

// ReviewResponse is the projection of a review
type ReviewResponse struct {
	ID         string    `json:"id"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	UserID     string    `json:"user_id"`
	BookID     string    `json:"book_id"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// ReviewResponseFromDomain converts a domain Review to its response
// projection
func ReviewResponseFromDomain(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID.String(),
		Rating:     r.Rating,
		Text:       r.Text,
		UserID:     r.UserID.String(),
		BookID:     r.BookID.String(),
		ReviewedAt: r.ReviewedAt,
	}
}

// DeletedResponse acknowledges a deleted resource
type DeletedResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}
