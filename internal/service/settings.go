package service

import (
	"context"
	"errors"

	"tripbook/internal/domain"
	"tripbook/internal/repository"
)

// SettingsService manages the driver's profile and proposal defaults.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the stored settings, or the defaults if the driver has
// never saved any.
func (s *SettingsService) GetSettings(ctx context.Context) (*domain.DriverSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			defaults := domain.DefaultDriverSettings
			return &defaults, nil
		}
		return nil, err
	}
	return settings, nil
}

// SaveSettings upserts the settings record.
func (s *SettingsService) SaveSettings(ctx context.Context, settings *domain.DriverSettings) error {
	return s.settingsRepo.Save(ctx, settings)
}
