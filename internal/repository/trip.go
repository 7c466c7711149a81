package repository

import (
	"context"
	"time"

	"tripbook/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves all trips, newest first.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// GetByStatus retrieves all trips in the given status, newest first.
	GetByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error)

	// Update replaces an existing trip. expectedUpdatedAt is the UpdatedAt
	// of the trip as loaded; the write fails with ErrStaleUpdate if the
	// stored row has moved on since.
	Update(ctx context.Context, trip *domain.Trip, expectedUpdatedAt time.Time) error

	// Delete removes a trip by ID.
	Delete(ctx context.Context, id string) error
}
