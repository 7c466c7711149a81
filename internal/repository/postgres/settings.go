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

// SettingsRepository stores the single driver-settings record as a JSONB
// document in a one-row table.
type SettingsRepository struct {
	q   Querier
	log zerolog.Logger
}

// NewSettingsRepository creates a new PostgreSQL settings repository.
func NewSettingsRepository(db *sql.DB, log zerolog.Logger) *SettingsRepository {
	return &SettingsRepository{q: db, log: log}
}

// Get returns the stored settings, or repository.ErrNotFound if the driver
// has never saved any.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.DriverSettings, error) {
	var data []byte
	err := r.q.QueryRowContext(ctx, `SELECT data FROM driver_settings WHERE id = 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var settings domain.DriverSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		r.log.Warn().Err(err).Msg("skipping undecodable driver settings record")
		return nil, repository.ErrNotFound
	}
	if err := validate.Struct(&settings); err != nil {
		r.log.Warn().Err(err).Msg("skipping invalid driver settings record")
		return nil, repository.ErrNotFound
	}
	return &settings, nil
}

// Save upserts the settings record.
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.DriverSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO driver_settings (id, data)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data
	`
	_, err = r.q.ExecContext(ctx, query, data)
	return err
}

// Ensure SettingsRepository implements repository.SettingsRepository.
var _ repository.SettingsRepository = (*SettingsRepository)(nil)
