package exchange

import (
	"context"

	"github.com/google/uuid"
)

// Filter contains filter options for querying exchanges.
// UserID matches either side of the exchange.
type Filter struct {
	Status        *Status
	ExcludeStatus *Status
	UserID        *uuid.UUID
	BookID        *uuid.UUID
	Skip          int
	Limit         int
}

// Repository defines the interface for exchange persistence
type Repository interface {
	// Create persists a new exchange
	Create(ctx context.Context, ex *Exchange) error

	// Save updates an existing exchange with an optimistic version check.
	// It fails with shared.ErrConcurrencyConflict when the stored version
	// differs from the aggregate's previous version.
	Save(ctx context.Context, ex *Exchange) error

	// Delete hard-deletes an exchange by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds an exchange by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Exchange, error)

	// FindAll returns exchanges matching the filter, newest date first
	FindAll(ctx context.Context, filter Filter) ([]*Exchange, error)
}
