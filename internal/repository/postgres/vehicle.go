package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"tripbook/internal/domain"
	"tripbook/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of
// repository.VehicleRepository.
type VehicleRepository struct {
	q   Querier
	log zerolog.Logger
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB, log zerolog.Logger) *VehicleRepository {
	return &VehicleRepository{q: db, log: log}
}

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	data, err := json.Marshal(vehicle)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO vehicles (id, created_at, updated_at, data)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.q.ExecContext(ctx, query, vehicle.ID, vehicle.CreatedAt, vehicle.UpdatedAt, data)
	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	var data []byte
	err := r.q.QueryRowContext(ctx, `SELECT data FROM vehicles WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	vehicle, err := r.decode(id, data)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return vehicle, nil
}

// GetAll retrieves all vehicles, oldest first.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, data FROM vehicles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}

		vehicle, err := r.decode(id, data)
		if err != nil {
			continue
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

func (r *VehicleRepository) decode(id string, data []byte) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := json.Unmarshal(data, &vehicle); err != nil {
		r.log.Warn().Err(err).Str("vehicle_id", id).Msg("skipping undecodable vehicle record")
		return nil, err
	}
	if err := validate.Struct(&vehicle); err != nil {
		r.log.Warn().Err(err).Str("vehicle_id", id).Msg("skipping invalid vehicle record")
		return nil, err
	}
	return &vehicle, nil
}

// Update replaces an existing vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	data, err := json.Marshal(vehicle)
	if err != nil {
		return err
	}

	query := `UPDATE vehicles SET updated_at = $1, data = $2 WHERE id = $3`
	result, err := r.q.ExecContext(ctx, query, vehicle.UpdatedAt, data, vehicle.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a vehicle by ID.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
