package repository

import (
	"context"

	"tripbook/internal/domain"
)

// SettingsRepository stores the single driver-settings record.
type SettingsRepository interface {
	// Get returns the stored settings, or ErrNotFound if none were saved yet.
	Get(ctx context.Context) (*domain.DriverSettings, error)

	// Save upserts the settings record.
	Save(ctx context.Context, settings *domain.DriverSettings) error
}
