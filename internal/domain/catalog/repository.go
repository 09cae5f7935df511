package catalog

import (
	"context"

	"github.com/google/uuid"
)

// BookFilter contains filter options for querying books
type BookFilter struct {
	Category    string
	Author      string
	OwnerUserID *uuid.UUID
	Skip        int
	Limit       int
}

// BookRepository defines the interface for book persistence
type BookRepository interface {
	Create(ctx context.Context, book *Book) error
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)
	FindAll(ctx context.Context, filter BookFilter) ([]*Book, error)
}

// CollectionRepository defines the interface for collection persistence
type CollectionRepository interface {
	Create(ctx context.Context, collection *Collection) error
	Update(ctx context.Context, collection *Collection) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Collection, error)
	FindByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*Collection, error)
	FindAll(ctx context.Context, skip, limit int) ([]*Collection, error)
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByBook(ctx context.Context, bookID uuid.UUID, skip, limit int) ([]*Review, error)
	FindAll(ctx context.Context, skip, limit int) ([]*Review, error)
}
