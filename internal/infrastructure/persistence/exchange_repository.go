package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bookswap/backend/internal/domain/exchange"
	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/bookswap/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExchangeRepository implements exchange.Repository using GORM
type GormExchangeRepository struct {
	db *gorm.DB
}

// NewGormExchangeRepository creates a new GormExchangeRepository
func NewGormExchangeRepository(db *gorm.DB) *GormExchangeRepository {
	return &GormExchangeRepository{db: db}
}

// Create persists a new exchange
func (r *GormExchangeRepository) Create(ctx context.Context, ex *exchange.Exchange) error {
	model := models.ExchangeModelFromDomain(ex)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing exchange with an optimistic version check.
// The update only applies when the stored version still matches the
// aggregate's version; a concurrent writer that got there first makes the
// update match zero rows, which surfaces as ErrConcurrencyConflict.
func (r *GormExchangeRepository) Save(ctx context.Context, ex *exchange.Exchange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.ExchangeModel
		if err := tx.Select("version").First(&current, "id = ?", ex.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if current.Version != ex.Version {
			return shared.ErrConcurrencyConflict
		}

		result := tx.Model(&models.ExchangeModel{}).
			Where("id = ? AND version = ?", ex.ID, ex.Version).
			Updates(map[string]any{
				"place":      ex.Place,
				"status":     string(ex.Status),
				"version":    ex.Version + 1,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		ex.Version++
		return nil
	})
}

// Delete hard-deletes an exchange by ID
func (r *GormExchangeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExchangeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an exchange by ID
func (r *GormExchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*exchange.Exchange, error) {
	var model models.ExchangeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns exchanges matching the filter, newest date first
func (r *GormExchangeRepository) FindAll(ctx context.Context, filter exchange.Filter) ([]*exchange.Exchange, error) {
	var exchangeModels []*models.ExchangeModel

	query := r.db.WithContext(ctx).Model(&models.ExchangeModel{})
	query = r.applyFilter(query, filter)
	query = query.Order("date DESC").Offset(filter.Skip)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&exchangeModels).Error; err != nil {
		return nil, err
	}

	exchanges := make([]*exchange.Exchange, len(exchangeModels))
	for i, model := range exchangeModels {
		exchanges[i] = model.ToDomain()
	}
	return exchanges, nil
}

// applyFilter applies filter options to the query
func (r *GormExchangeRepository) applyFilter(query *gorm.DB, filter exchange.Filter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ExcludeStatus != nil {
		query = query.Where("status <> ?", string(*filter.ExcludeStatus))
	}
	if filter.UserID != nil {
		query = query.Where("from_user_id = ? OR to_user_id = ?", *filter.UserID, *filter.UserID)
	}
	if filter.BookID != nil {
		query = query.Where("book_id = ?", *filter.BookID)
	}
	return query
}

// Ensure GormExchangeRepository implements Repository
var _ exchange.Repository = (*GormExchangeRepository)(nil)
