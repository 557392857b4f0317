package repository

import (
	"context"

	"gugudan/internal/models"
	"gugudan/internal/store"
	"gugudan/internal/validation"
)

type SettingsRepository struct {
	s store.Store
}

func NewSettingsRepository(s store.Store) *SettingsRepository {
	return &SettingsRepository{s: s}
}

// Get returns the stored settings, or the defaults when nothing valid is stored
func (r *SettingsRepository) Get(ctx context.Context) models.Settings {
	settings, ok := store.Read(ctx, r.s, KeySettings, validation.Settings)
	if !ok {
		return models.DefaultSettings()
	}
	return settings
}

// Save persists settings
func (r *SettingsRepository) Save(ctx context.Context, settings models.Settings) {
	store.Write(ctx, r.s, KeySettings, settings)
}
