package repository

import (
	"context"

	"tripbook/internal/domain"
)

// VehicleRepository defines the persistence operations for the vehicle
// registry.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
}
