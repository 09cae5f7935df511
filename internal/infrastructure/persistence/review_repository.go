package persistence

import (
	"context"
	"errors"

	"github.com/bookswap/backend/internal/domain/catalog"
	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/bookswap/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReviewRepository implements catalog.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create creates a new review
func (r *GormReviewRepository) Create(ctx context.Context, review *catalog.Review) error {
	model := models.ReviewModelFromDomain(review)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing review
func (r *GormReviewRepository) Update(ctx context.Context, review *catalog.Review) error {
	model := models.ReviewModelFromDomain(review)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a review by ID
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a review by ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBook returns reviews for a book, newest first
func (r *GormReviewRepository) FindByBook(ctx context.Context, bookID uuid.UUID, skip, limit int) ([]*catalog.Review, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("book_id = ?", bookID)
	return r.find(query, skip, limit)
}

// FindAll returns reviews with pagination, newest first
func (r *GormReviewRepository) FindAll(ctx context.Context, skip, limit int) ([]*catalog.Review, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{})
	return r.find(query, skip, limit)
}

func (r *GormReviewRepository) find(query *gorm.DB, skip, limit int) ([]*catalog.Review, error) {
	var reviewModels []*models.ReviewModel

	query = query.Order("reviewed_at DESC").Offset(skip)
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&reviewModels).Error; err != nil {
		return nil, err
	}

	reviews := make([]*catalog.Review, len(reviewModels))
	for i, model := range reviewModels {
		reviews[i] = model.ToDomain()
	}
	return reviews, nil
}

// Ensure GormReviewRepository implements ReviewRepository
var _ catalog.ReviewRepository = (*GormReviewRepository)(nil)
