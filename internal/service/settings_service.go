package service

import (
	"context"
	"sync"

	"gugudan/internal/models"
	"gugudan/internal/repository"
)

// SettingsService caches the settings record. It is loaded once at
// construction and saved on every mutation.
type SettingsService struct {
	mu      sync.RWMutex
	repo    *repository.SettingsRepository
	current models.Settings
}

// NewSettingsService creates a settings service and loads the stored settings
func NewSettingsService(ctx context.Context, repo *repository.SettingsRepository) *SettingsService {
	s := &SettingsService{repo: repo}
	s.Reload(ctx)
	return s
}

// Get returns the cached settings
func (s *SettingsService) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates and saves new settings
func (s *SettingsService) Update(ctx context.Context, settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = settings
	s.repo.Save(ctx, settings)
	return nil
}

// Reload replaces the cache with whatever the store holds, defaults included
func (s *SettingsService) Reload(ctx context.Context) {
	settings := s.repo.Get(ctx)
	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()
}
