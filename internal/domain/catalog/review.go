package catalog

import (
	"strings"
	"time"

	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Review is a rating and comment a user left on a book
type Review struct {
	shared.BaseAggregateRoot
	Rating     int
	Text       string
	UserID     uuid.UUID
	BookID     uuid.UUID
	ReviewedAt time.Time
}

// NewReview creates a new review
func NewReview(userID, bookID uuid.UUID, rating int, text string) (*Review, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOOK", "Book ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if strings.TrimSpace(text) == "" {
		return nil, shared.NewDomainError("INVALID_TEXT", "Review text cannot be empty")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Rating:            rating,
		Text:              strings.TrimSpace(text),
		UserID:            userID,
		BookID:            bookID,
		ReviewedAt:        time.Now(),
	}, nil
}

// Edit updates the rating and text of the review
func (r *Review) Edit(rating int, text string) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if strings.TrimSpace(text) == "" {
		return shared.NewDomainError("INVALID_TEXT", "Review text cannot be empty")
	}

	r.Rating = rating
	r.Text = strings.TrimSpace(text)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
