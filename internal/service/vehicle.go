package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tripbook/internal/domain"
	"tripbook/internal/repository"
)

// VehicleService manages the vehicle registry trips draw their snapshots
// from.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository

	now   func() time.Time
	newID func() string
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo repository.VehicleRepository) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// VehicleForm carries user-entered vehicle fields; numeric rates arrive as
// form strings.
type VehicleForm struct {
	Name        string
	CarSize     domain.CarSize
	FuelType    domain.FuelType
	ACOption    domain.ACOption
	MinKmPerDay string
	RatePerKm   string
}

// AddVehicle registers a new vehicle. Rates must be positive; a zero rate
// would make every fare estimate meaningless.
func (s *VehicleService) AddVehicle(ctx context.Context, form VehicleForm) (*domain.Vehicle, error) {
	minKmPerDay := parseFloatOr(form.MinKmPerDay, 0)
	ratePerKm := parseFloatOr(form.RatePerKm, 0)
	if minKmPerDay <= 0 || ratePerKm <= 0 {
		return nil, ErrInvalidVehicleRates
	}

	now := s.now()
	vehicle := &domain.Vehicle{
		ID:          s.newID(),
		Name:        form.Name,
		CarSize:     form.CarSize,
		FuelType:    form.FuelType,
		ACOption:    form.ACOption,
		MinKmPerDay: minKmPerDay,
		RatePerKm:   ratePerKm,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// UpdateVehicle replaces an existing vehicle's editable fields. Trips that
// already snapshotted the vehicle are unaffected.
func (s *VehicleService) UpdateVehicle(ctx context.Context, id string, form VehicleForm) (*domain.Vehicle, error) {
	if id == "" {
		return nil, ErrInvalidVehicleID
	}

	minKmPerDay := parseFloatOr(form.MinKmPerDay, 0)
	ratePerKm := parseFloatOr(form.RatePerKm, 0)
	if minKmPerDay <= 0 || ratePerKm <= 0 {
		return nil, ErrInvalidVehicleRates
	}

	existing, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = form.Name
	updated.CarSize = form.CarSize
	updated.FuelType = form.FuelType
	updated.ACOption = form.ACOption
	updated.MinKmPerDay = minKmPerDay
	updated.RatePerKm = ratePerKm
	updated.UpdatedAt = s.now()

	if err := s.vehicleRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteVehicle removes a vehicle from the registry.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidVehicleID
	}
	return s.vehicleRepo.Delete(ctx, id)
}

// GetVehicle retrieves a vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	if id == "" {
		return nil, ErrInvalidVehicleID
	}
	return s.vehicleRepo.GetByID(ctx, id)
}

// GetAllVehicles retrieves all registered vehicles.
func (s *VehicleService) GetAllVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetAll(ctx)
}
