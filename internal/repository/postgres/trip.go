package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"tripbook/internal/domain"
	"tripbook/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
// Trips are stored as JSONB documents with the status and timestamps promoted
// to columns for indexing.
type TripRepository struct {
	q   Querier
	log zerolog.Logger
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB, log zerolog.Logger) *TripRepository {
	return &TripRepository{q: db, log: log}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	data, err := json.Marshal(trip)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO trips (id, status, created_at, updated_at, data)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.q.ExecContext(ctx, query, trip.ID, trip.Status, trip.CreatedAt, trip.UpdatedAt, data)
	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT data FROM trips WHERE id = $1`

	var data []byte
	if err := r.q.QueryRowContext(ctx, query, id).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	trip, err := r.decode(id, data)
	if err != nil {
		// A corrupt single record reads as absent rather than failing
		// the caller outright.
		return nil, repository.ErrNotFound
	}
	return trip, nil
}

// GetAll retrieves all trips, newest first.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	query := `SELECT id, data FROM trips ORDER BY created_at DESC`
	return r.queryTrips(ctx, query)
}

// GetByStatus retrieves all trips in the given status, newest first.
func (r *TripRepository) GetByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error) {
	query := `SELECT id, data FROM trips WHERE status = $1 ORDER BY created_at DESC`
	return r.queryTrips(ctx, query, status)
}

func (r *TripRepository) queryTrips(ctx context.Context, query string, args ...any) ([]*domain.Trip, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}

		trip, err := r.decode(id, data)
		if err != nil {
			// Skip the bad record, keep the read alive.
			continue
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// decode unmarshals and validates a stored trip document.
func (r *TripRepository) decode(id string, data []byte) (*domain.Trip, error) {
	var trip domain.Trip
	if err := json.Unmarshal(data, &trip); err != nil {
		r.log.Warn().Err(err).Str("trip_id", id).Msg("skipping undecodable trip record")
		return nil, err
	}
	if err := validate.Struct(&trip); err != nil {
		r.log.Warn().Err(err).Str("trip_id", id).Msg("skipping invalid trip record")
		return nil, err
	}
	return &trip, nil
}

// Update replaces an existing trip, guarded by a compare-and-swap on
// updated_at so concurrent writers cannot silently clobber each other.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip, expectedUpdatedAt time.Time) error {
	data, err := json.Marshal(trip)
	if err != nil {
		return err
	}

	query := `
		UPDATE trips
		SET status = $1, updated_at = $2, data = $3
		WHERE id = $4 AND updated_at = $5
	`
	result, err := r.q.ExecContext(ctx, query, trip.Status, trip.UpdatedAt, data, trip.ID, expectedUpdatedAt)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		var exists bool
		if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM trips WHERE id = $1)`, trip.ID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return repository.ErrStaleUpdate
		}
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a trip by ID.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
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

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
