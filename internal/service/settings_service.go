package service

import (
	"context"
	"encoding/json"
	"errors"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsService reads and writes the flat key/value registry. Feature
// flags default to enabled when the key is absent, so a fresh database
// behaves like a fully enabled deployment.
type SettingsService struct {
	settingRepo *repository.SettingRepository
}

func NewSettingsService(db *pgxpool.Pool) *SettingsService {
	return &SettingsService{settingRepo: repository.NewSettingRepository(db)}
}

func (s *SettingsService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	return s.settingRepo.Get(ctx, key)
}

func (s *SettingsService) GetAll(ctx context.Context) ([]*domain.Setting, error) {
	return s.settingRepo.GetAll(ctx)
}

func (s *SettingsService) Set(ctx context.Context, key string, value any) (*domain.Setting, error) {
	return s.settingRepo.Set(ctx, key, value)
}

// Enabled reports whether a boolean feature flag is on. Missing keys and
// values that are not booleans count as enabled.
func (s *SettingsService) Enabled(ctx context.Context, key string) (bool, error) {
	setting, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return true, nil
		}
		return false, err
	}

	var enabled bool
	if err := json.Unmarshal(setting.Value, &enabled); err != nil {
		return true, nil
	}
	return enabled, nil
}

// RequireEnabled returns ErrFeatureDisabled when the flag is off
func (s *SettingsService) RequireEnabled(ctx context.Context, key string) error {
	enabled, err := s.Enabled(ctx, key)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrFeatureDisabled
	}
	return nil
}
