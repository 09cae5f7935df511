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

// GormBookRepository implements catalog.BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GormBookRepository
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// Create creates a new book
func (r *GormBookRepository) Create(ctx context.Context, book *catalog.Book) error {
	model := models.BookModelFromDomain(book)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing book
func (r *GormBookRepository) Update(ctx context.Context, book *catalog.Book) error {
	model := models.BookModelFromDomain(book)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a book by ID together with its collection memberships
func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).
			Delete(&models.CollectionBookModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.BookModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a book by ID
func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	var model models.BookModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns books matching the filter, newest first
func (r *GormBookRepository) FindAll(ctx context.Context, filter catalog.BookFilter) ([]*catalog.Book, error) {
	var bookModels []*models.BookModel

	query := r.db.WithContext(ctx).Model(&models.BookModel{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Author != "" {
		query = query.Where("author = ?", filter.Author)
	}
	if filter.OwnerUserID != nil {
		query = query.Where("owner_user_id = ?", *filter.OwnerUserID)
	}
	query = query.Order("created_at DESC").Offset(filter.Skip)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&bookModels).Error; err != nil {
		return nil, err
	}

	books := make([]*catalog.Book, len(bookModels))
	for i, model := range bookModels {
		books[i] = model.ToDomain()
	}
	return books, nil
}

// Ensure GormBookRepository implements BookRepository
var _ catalog.BookRepository = (*GormBookRepository)(nil)
