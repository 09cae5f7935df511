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

// CreateReviewInput holds the input for ReviewService.Create
type CreateReviewInput struct {
	UserID uuid.UUID
	BookID uuid.UUID
	Rating int
	Text   string
}

// ReviewService handles book reviews
type ReviewService struct {
	reviewRepo catalog.ReviewRepository
	bookRepo   catalog.BookRepository
	logger     *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo catalog.ReviewRepository,
	bookRepo catalog.BookRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		logger:     logger,
	}
}

// Create adds a review to a book
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput) (*catalog.Review, error) {
	if _, err := s.bookRepo.FindByID(ctx, input.BookID); err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Book not found")
	}

	review, err := catalog.NewReview(input.UserID, input.BookID, input.Rating, input.Text)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.logger.Error("Failed to create review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create review")
	}

	s.logger.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("book_id", review.BookID.String()))

	return review, nil
}

// Get returns a review by id
func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (*catalog.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Review not found")
	}
	return review, nil
}

// ListByBook returns the reviews left on a book
func (s *ReviewService) ListByBook(ctx context.Context, bookID uuid.UUID, skip, limit int) ([]*catalog.Review, error) {
	reviews, err := s.reviewRepo.FindByBook(ctx, bookID, skip, limit)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list reviews")
	}
	return reviews, nil
}

// Edit updates a review; author or moderator/admin only
func (s *ReviewService) Edit(ctx context.Context, id uuid.UUID, actor *identity.User, rating int, text string) (*catalog.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Review not found")
	}

	if !s.mayManage(actor, review) {
		return nil, shared.NewDomainError("FORBIDDEN", "Not allowed to modify this review")
	}

	if err := review.Edit(rating, text); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		s.logger.Error("Failed to update review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update review")
	}
	return review, nil
}

// Delete removes a review; author or moderator/admin only
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID, actor *identity.User) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Review not found")
	}

	if !s.mayManage(actor, review) {
		return shared.NewDomainError("FORBIDDEN", "Not allowed to delete this review")
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Review not found")
		}
		s.logger.Error("Failed to delete review", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete review")
	}

	s.logger.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

// mayManage reports whether the actor may mutate the review
func (s *ReviewService) mayManage(actor *identity.User, review *catalog.Review) bool {
	if actor == nil {
		return false
	}
	if review.UserID == actor.ID {
		return true
	}
	return actor.HasRole(identity.RoleAdmin) || actor.HasRole(identity.RoleModerator)
}
