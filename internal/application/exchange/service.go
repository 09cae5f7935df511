package exchange

import (
	"context"
	"errors"

	"github.com/bookswap/backend/internal/domain/catalog"
	"github.com/bookswap/backend/internal/domain/exchange"
	"github.com/bookswap/backend/internal/domain/identity"
	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProposeInput holds the input for Propose
type ProposeInput struct {
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	BookID     uuid.UUID
	Place      string
	// Status optionally overrides the pending default (seed data, imports)
	Status exchange.Status
}

// UpdateInput holds the input for Update; only status and place are
// mutable after creation
type UpdateInput struct {
	Status *exchange.Status
	Place  *string
}

// ListInput holds the filter options for List
type ListInput struct {
	Status           *exchange.Status
	ExcludeCompleted bool
	UserID           *uuid.UUID
	BookID           *uuid.UUID
	Skip             int
	Limit            int
}

// Detail is an exchange with its parties and book resolved for display.
// Any reference may be nil when the referenced row has been deleted.
type Detail struct {
	Exchange *exchange.Exchange
	FromUser *identity.User
	ToUser   *identity.User
	Book     *catalog.Book
}

// ListItem is an exchange with its denormalized book title
type ListItem struct {
	Exchange  *exchange.Exchange
	BookTitle string
}

// Service orchestrates the transaction ledger
type Service struct {
	exchangeRepo exchange.Repository
	userRepo     identity.UserRepository
	bookRepo     catalog.BookRepository
	logger       *zap.Logger
}

// NewService creates a new exchange service
func NewService(
	exchangeRepo exchange.Repository,
	userRepo identity.UserRepository,
	bookRepo catalog.BookRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		exchangeRepo: exchangeRepo,
		userRepo:     userRepo,
		bookRepo:     bookRepo,
		logger:       logger,
	}
}

// Propose creates a new exchange after checking that both parties and the
// book exist
func (s *Service) Propose(ctx context.Context, input ProposeInput) (*exchange.Exchange, error) {
	if _, err := s.userRepo.FindByID(ctx, input.FromUserID); err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "From user not found")
	}
	if _, err := s.userRepo.FindByID(ctx, input.ToUserID); err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "To user not found")
	}
	if _, err := s.bookRepo.FindByID(ctx, input.BookID); err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Book not found")
	}

	ex, err := exchange.NewExchange(input.FromUserID, input.ToUserID, input.BookID, input.Place, input.Status)
	if err != nil {
		return nil, err
	}

	if err := s.exchangeRepo.Create(ctx, ex); err != nil {
		s.logger.Error("Failed to create exchange", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create transaction")
	}

	s.logger.Info("Exchange proposed",
		zap.String("exchange_id", ex.ID.String()),
		zap.String("from_user_id", ex.FromUserID.String()),
		zap.String("to_user_id", ex.ToUserID.String()),
		zap.String("book_id", ex.BookID.String()))

	return ex, nil
}

// Get returns an exchange with its parties and book eagerly resolved
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	ex, err := s.exchangeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Transaction not found")
	}

	detail := &Detail{Exchange: ex}

	// References are weak; a deleted user or book leaves the slot nil
	// rather than failing the read
	if from, err := s.userRepo.FindByID(ctx, ex.FromUserID); err == nil {
		detail.FromUser = from
	}
	if to, err := s.userRepo.FindByID(ctx, ex.ToUserID); err == nil {
		detail.ToUser = to
	}
	if book, err := s.bookRepo.FindByID(ctx, ex.BookID); err == nil {
		detail.Book = book
	}

	return detail, nil
}

// List returns exchanges matching the filter with denormalized book titles,
// newest date first
func (s *Service) List(ctx context.Context, input ListInput) ([]ListItem, error) {
	filter := exchange.Filter{
		Status: input.Status,
		UserID: input.UserID,
		BookID: input.BookID,
		Skip:   input.Skip,
		Limit:  input.Limit,
	}
	if input.ExcludeCompleted {
		completed := exchange.StatusCompleted
		filter.ExcludeStatus = &completed
	}

	exchanges, err := s.exchangeRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list exchanges", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list transactions")
	}

	items := make([]ListItem, len(exchanges))
	for i, ex := range exchanges {
		item := ListItem{Exchange: ex}
		if book, err := s.bookRepo.FindByID(ctx, ex.BookID); err == nil {
			item.BookTitle = book.Title
		}
		items[i] = item
	}
	return items, nil
}

// Update mutates the place and/or status of an exchange. Status changes go
// through the transition table; at least one field must be given.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*exchange.Exchange, error) {
	if input.Status == nil && input.Place == nil {
		return nil, shared.NewDomainError("MISSING_FIELD", "No valid field to update")
	}

	ex, err := s.exchangeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Transaction not found")
	}

	if input.Place != nil {
		if err := ex.ChangePlace(*input.Place); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if err := ex.ChangeStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, ex); err != nil {
		return nil, err
	}

	s.logger.Info("Exchange updated",
		zap.String("exchange_id", ex.ID.String()),
		zap.String("status", ex.Status.String()))

	return ex, nil
}

// ChangeStatus advances the exchange along the lifecycle graph
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, target exchange.Status) (*exchange.Exchange, error) {
	ex, err := s.exchangeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Transaction not found")
	}

	if err := ex.ChangeStatus(target); err != nil {
		return nil, err
	}

	if err := s.save(ctx, ex); err != nil {
		return nil, err
	}

	s.logger.Info("Exchange status changed",
		zap.String("exchange_id", ex.ID.String()),
		zap.String("new_status", ex.Status.String()))

	return ex, nil
}

// Delete hard-deletes an exchange
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.exchangeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Transaction not found")
		}
		s.logger.Error("Failed to delete exchange", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete transaction")
	}

	s.logger.Info("Exchange deleted", zap.String("exchange_id", id.String()))
	return nil
}

// save persists the exchange with the optimistic version check
func (s *Service) save(ctx context.Context, ex *exchange.Exchange) error {
	if err := s.exchangeRepo.Save(ctx, ex); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return shared.NewDomainError("CONCURRENCY_CONFLICT",
				"Transaction was modified concurrently, retry the operation")
		}
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Transaction not found")
		}
		s.logger.Error("Failed to save exchange", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update transaction")
	}
	return nil
}
