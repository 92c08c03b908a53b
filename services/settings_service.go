package services

import (
	"context"

	"catalog-service/models"
	"catalog-service/pkg/errs"
	"catalog-service/repository"
)

// SettingsService exposes the site-settings key-value store. Upsert is the
// only mutation path, so there is no separate create vs update.
type SettingsService struct {
	repo repository.SettingRepo
}

func NewSettingsService(repo repository.SettingRepo) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the stored value for key, or defaultValue when absent. Absence
// is not an error.
func (s *SettingsService) Get(ctx context.Context, key string, defaultValue interface{}) (interface{}, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errs.IsNotFound(err) {
			return defaultValue, nil
		}
		return nil, err
	}
	return setting.Value, nil
}

// GetAll returns a snapshot of all settings as a key-value map. Keys without
// a stored value are simply absent.
func (s *SettingsService) GetAll(ctx context.Context) (map[string]interface{}, error) {
	settings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]interface{}, len(settings))
	for _, setting := range settings {
		snapshot[setting.Key] = setting.Value
	}
	return snapshot, nil
}

// Set creates or replaces the setting for key.
func (s *SettingsService) Set(ctx context.Context, key string, value interface{}) (*models.Setting, error) {
	if key == "" {
		return nil, errs.Validation("key")
	}
	return s.repo.Upsert(ctx, key, value)
}
