package catalog

import (
	"strings"
	"time"

	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Collection groups books under a user-chosen title.
// Member books are weak references; removing a book from a collection does
// not affect the book itself.
type Collection struct {
	shared.BaseAggregateRoot
	Title       string
	OwnerUserID uuid.UUID
	BookIDs     []uuid.UUID
}

// NewCollection creates a new empty collection
func NewCollection(ownerUserID uuid.UUID, title string) (*Collection, error) {
	if ownerUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner user ID cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}

	return &Collection{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		OwnerUserID:       ownerUserID,
		BookIDs:           make([]uuid.UUID, 0),
	}, nil
}

// Rename changes the collection title
func (c *Collection) Rename(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}

	c.Title = strings.TrimSpace(title)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// AddBook adds a book to the collection; adding a book twice is an error
func (c *Collection) AddBook(bookID uuid.UUID) error {
	if bookID == uuid.Nil {
		return shared.NewDomainError("INVALID_BOOK", "Book ID cannot be empty")
	}
	if c.ContainsBook(bookID) {
		return shared.NewDomainError("ALREADY_EXISTS", "Book is already in the collection")
	}

	c.BookIDs = append(c.BookIDs, bookID)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// RemoveBook removes a book from the collection
func (c *Collection) RemoveBook(bookID uuid.UUID) error {
	for i, id := range c.BookIDs {
		if id == bookID {
			c.BookIDs = append(c.BookIDs[:i], c.BookIDs[i+1:]...)
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Book is not in the collection")
}

// ContainsBook reports whether the collection holds the given book
func (c *Collection) ContainsBook(bookID uuid.UUID) bool {
	for _, id := range c.BookIDs {
		if id == bookID {
			return true
		}
	}
	return false
}
