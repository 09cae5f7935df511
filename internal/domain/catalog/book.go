package catalog

import (
	"strings"
	"time"

	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Book represents a book listed by a user for exchange.
// The owner is a weak reference to a user id; identity owns the user row.
type Book struct {
	shared.BaseAggregateRoot
	Title       string
	Author      string
	Category    string
	Year        int
	OwnerUserID uuid.UUID
}

// NewBook creates a new book listing
func NewBook(ownerUserID uuid.UUID, title, author, category string, year int) (*Book, error) {
	if ownerUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner user ID cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 500 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 500 characters")
	}
	if strings.TrimSpace(author) == "" {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author cannot be empty")
	}
	if strings.TrimSpace(category) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if year != 0 && (year < 0 || year > time.Now().Year()+1) {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is out of range")
	}

	return &Book{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		Author:            strings.TrimSpace(author),
		Category:          strings.TrimSpace(category),
		Year:              year,
		OwnerUserID:       ownerUserID,
	}, nil
}

// UpdateDetails updates the mutable display fields of the book.
// Ownership is immutable; books change hands only through completed exchanges,
// which is out of scope for the catalog.
func (b *Book) UpdateDetails(title, author, category string, year int) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if strings.TrimSpace(author) == "" {
		return shared.NewDomainError("INVALID_AUTHOR", "Author cannot be empty")
	}
	if strings.TrimSpace(category) == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}

	b.Title = strings.TrimSpace(title)
	b.Author = strings.TrimSpace(author)
	b.Category = strings.TrimSpace(category)
	b.Year = year
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// IsOwnedBy reports whether the book belongs to the given user
func (b *Book) IsOwnedBy(userID uuid.UUID) bool {
	return b.OwnerUserID == userID
}
