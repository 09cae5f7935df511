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

// CreateCollectionInput holds the input for CollectionService.Create
type CreateCollectionInput struct {
	OwnerUserID uuid.UUID
	Title       string
	BookIDs     []uuid.UUID
}

// CollectionService handles book collections
type CollectionService struct {
	collectionRepo catalog.CollectionRepository
	bookRepo       catalog.BookRepository
	logger         *zap.Logger
}

// NewCollectionService creates a new collection service
func NewCollectionService(
	collectionRepo catalog.CollectionRepository,
	bookRepo catalog.BookRepository,
	logger *zap.Logger,
) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		bookRepo:       bookRepo,
		logger:         logger,
	}
}

// Create creates a collection, optionally seeded with books
func (s *CollectionService) Create(ctx context.Context, input CreateCollectionInput) (*catalog.Collection, error) {
	collection, err := catalog.NewCollection(input.OwnerUserID, input.Title)
	if err != nil {
		return nil, err
	}

	for _, bookID := range input.BookIDs {
		if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Book not found: "+bookID.String())
		}
		if err := collection.AddBook(bookID); err != nil {
			return nil, err
		}
	}

	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		s.logger.Error("Failed to create collection", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create collection")
	}

	s.logger.Info("Collection created",
		zap.String("collection_id", collection.ID.String()),
		zap.String("owner_user_id", collection.OwnerUserID.String()))

	return collection, nil
}

// Get returns a collection by id
func (s *CollectionService) Get(ctx context.Context, id uuid.UUID) (*catalog.Collection, error) {
	collection, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Collection not found")
	}
	return collection, nil
}

// List returns collections with pagination
func (s *CollectionService) List(ctx context.Context, skip, limit int) ([]*catalog.Collection, error) {
	collections, err := s.collectionRepo.FindAll(ctx, skip, limit)
	if err != nil {
		s.logger.Error("Failed to list collections", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list collections")
	}
	return collections, nil
}

// ListByOwner returns the collections owned by a user
func (s *CollectionService) ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*catalog.Collection, error) {
	collections, err := s.collectionRepo.FindByOwner(ctx, ownerUserID)
	if err != nil {
		s.logger.Error("Failed to list collections by owner", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list collections")
	}
	return collections, nil
}

// Rename changes the collection title; owner only
func (s *CollectionService) Rename(ctx context.Context, id uuid.UUID, actor *identity.User, title string) (*catalog.Collection, error) {
	collection, err := s.authorize(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if err := collection.Rename(title); err != nil {
		return nil, err
	}
	return s.update(ctx, collection)
}

// AddBook adds a book to a collection; owner only
func (s *CollectionService) AddBook(ctx context.Context, id uuid.UUID, actor *identity.User, bookID uuid.UUID) (*catalog.Collection, error) {
	collection, err := s.authorize(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Book not found")
	}

	if err := collection.AddBook(bookID); err != nil {
		return nil, err
	}
	return s.update(ctx, collection)
}

// RemoveBook removes a book from a collection; owner only
func (s *CollectionService) RemoveBook(ctx context.Context, id uuid.UUID, actor *identity.User, bookID uuid.UUID) (*catalog.Collection, error) {
	collection, err := s.authorize(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if err := collection.RemoveBook(bookID); err != nil {
		return nil, err
	}
	return s.update(ctx, collection)
}

// Delete removes a collection; owner or admin
func (s *CollectionService) Delete(ctx context.Context, id uuid.UUID, actor *identity.User) error {
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return err
	}

	if err := s.collectionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Collection not found")
		}
		s.logger.Error("Failed to delete collection", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete collection")
	}

	s.logger.Info("Collection deleted", zap.String("collection_id", id.String()))
	return nil
}

// authorize loads the collection and checks the actor may mutate it
func (s *CollectionService) authorize(ctx context.Context, id uuid.UUID, actor *identity.User) (*catalog.Collection, error) {
	collection, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Collection not found")
	}

	if actor == nil || (collection.OwnerUserID != actor.ID && !actor.HasRole(identity.RoleAdmin)) {
		return nil, shared.NewDomainError("FORBIDDEN", "Not allowed to modify this collection")
	}
	return collection, nil
}

func (s *CollectionService) update(ctx context.Context, collection *catalog.Collection) (*catalog.Collection, error) {
	if err := s.collectionRepo.Update(ctx, collection); err != nil {
		s.logger.Error("Failed to update collection", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update collection")
	}
	return collection, nil
}
