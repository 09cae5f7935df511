package catalog

import (
	"context"
	"errors"

	"github.com/bookswap/backend/internal/domain/catalog"
	"github.com/bookswap/backend/internal/domain/identity"
	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookInput holds the input for CreateBook
type CreateBookInput struct {
	OwnerUserID uuid.UUID
	Title       string
	Author      string
	Category    string
	Year        int
}

// UpdateBookInput holds the input for UpdateBook
type UpdateBookInput struct {
	Title    string
	Author   string
	Category string
	Year     int
}

// BookService handles book listings
type BookService struct {
	bookRepo catalog.BookRepository
	logger   *zap.Logger
}

// NewBookService creates a new book service
func NewBookService(bookRepo catalog.BookRepository, logger *zap.Logger) *BookService {
	return &BookService{
		bookRepo: bookRepo,
		logger:   logger,
	}
}

// Create lists a new book for the owner
func (s *BookService) Create(ctx context.Context, input CreateBookInput) (*catalog.Book, error) {
	book, err := catalog.NewBook(input.OwnerUserID, input.Title, input.Author, input.Category, input.Year)
	if err != nil {
		return nil, err
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		s.logger.Error("Failed to create book", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create book")
	}

	s.logger.Info("Book listed",
		zap.String("book_id", book.ID.String()),
		zap.String("owner_user_id", book.OwnerUserID.String()))

	return book, nil
}

// Get returns a book by id
func (s *BookService) Get(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Book not found")
	}
	return book, nil
}

// List returns books matching the filter
func (s *BookService) List(ctx context.Context, filter catalog.BookFilter) ([]*catalog.Book, error) {
	books, err := s.bookRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list books", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list books")
	}
	return books, nil
}

// Update mutates the display fields of a book. Only the owner or a
// moderator/admin may update a listing.
func (s *BookService) Update(ctx context.Context, id uuid.UUID, actor *identity.User, input UpdateBookInput) (*catalog.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Book not found")
	}

	if !s.mayManage(actor, book) {
		return nil, shared.NewDomainError("FORBIDDEN", "Not allowed to modify this book")
	}

	if err := book.UpdateDetails(input.Title, input.Author, input.Category, input.Year); err != nil {
		return nil, err
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		s.logger.Error("Failed to update book", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update book")
	}

	return book, nil
}

// Delete removes a book listing. Only the owner or a moderator/admin may
// delete a listing.
func (s *BookService) Delete(ctx context.Context, id uuid.UUID, actor *identity.User) error {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Book not found")
	}

	if !s.mayManage(actor, book) {
		return shared.NewDomainError("FORBIDDEN", "Not allowed to delete this book")
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Book not found")
		}
		s.logger.Error("Failed to delete book", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete book")
	}

	s.logger.Info("Book deleted", zap.String("book_id", id.String()))
	return nil
}

// mayManage reports whether the actor may mutate the book
func (s *BookService) mayManage(actor *identity.User, book *catalog.Book) bool {
	if actor == nil {
		return false
	}
	if book.IsOwnedBy(actor.ID) {
		return true
	}
	return actor.HasRole(identity.RoleAdmin) || actor.HasRole(identity.RoleModerator)
}
