package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bookswap/backend/internal/domain/catalog"
	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/bookswap/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCollectionRepository implements catalog.CollectionRepository using GORM
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// Create creates a new collection with its book memberships
func (r *GormCollectionRepository) Create(ctx context.Context, collection *catalog.Collection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.CollectionModelFromDomain(collection)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return r.replaceBooksLocked(tx, collection)
	})
}

// Update updates a collection and replaces its book memberships
func (r *GormCollectionRepository) Update(ctx context.Context, collection *catalog.Collection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.CollectionModelFromDomain(collection)
		result := tx.Save(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Where("collection_id = ?", collection.ID).
			Delete(&models.CollectionBookModel{}).Error; err != nil {
			return err
		}
		return r.replaceBooksLocked(tx, collection)
	})
}

// replaceBooksLocked inserts the collection's book rows; callers run it
// inside a transaction
func (r *GormCollectionRepository) replaceBooksLocked(tx *gorm.DB, collection *catalog.Collection) error {
	if len(collection.BookIDs) == 0 {
		return nil
	}

	rows := make([]models.CollectionBookModel, len(collection.BookIDs))
	for i, bookID := range collection.BookIDs {
		rows[i] = models.CollectionBookModel{
			CollectionID: collection.ID,
			BookID:       bookID,
			CreatedAt:    time.Now(),
		}
	}
	return tx.Create(&rows).Error
}

// Delete deletes a collection and its book memberships
func (r *GormCollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).
			Delete(&models.CollectionBookModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.CollectionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a collection by ID, including its book memberships
func (r *GormCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Collection, error) {
	var model models.CollectionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	bookIDs, err := r.loadBookIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(bookIDs), nil
}

// FindByOwner returns all collections owned by a user
func (r *GormCollectionRepository) FindByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*catalog.Collection, error) {
	var collectionModels []*models.CollectionModel
	if err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC").
		Find(&collectionModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainWithBooks(ctx, collectionModels)
}

// FindAll returns collections with pagination, newest first
func (r *GormCollectionRepository) FindAll(ctx context.Context, skip, limit int) ([]*catalog.Collection, error) {
	var collectionModels []*models.CollectionModel

	query := r.db.WithContext(ctx).
		Model(&models.CollectionModel{}).
		Order("created_at DESC").
		Offset(skip)
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&collectionModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainWithBooks(ctx, collectionModels)
}

func (r *GormCollectionRepository) toDomainWithBooks(ctx context.Context, collectionModels []*models.CollectionModel) ([]*catalog.Collection, error) {
	collections := make([]*catalog.Collection, len(collectionModels))
	for i, model := range collectionModels {
		bookIDs, err := r.loadBookIDs(ctx, model.ID)
		if err != nil {
			return nil, err
		}
		collections[i] = model.ToDomain(bookIDs)
	}
	return collections, nil
}

func (r *GormCollectionRepository) loadBookIDs(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error) {
	var rows []models.CollectionBookModel
	if err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	bookIDs := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		bookIDs[i] = row.BookID
	}
	return bookIDs, nil
}

// Ensure GormCollectionRepository implements CollectionRepository
var _ catalog.CollectionRepository = (*GormCollectionRepository)(nil)
