package repository

import (
	"context"

	"gugudan/internal/models"
	"gugudan/internal/store"
	"gugudan/internal/validation"
)

// StatsRepository handles per-fact attempt counters
type StatsRepository struct {
	s store.Store
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(s store.Store) *StatsRepository {
	return &StatsRepository{s: s}
}

// All returns every counter; an empty map when nothing valid is stored
func (r *StatsRepository) All(ctx context.Context) models.ItemStats {
	stats, ok := store.Read(ctx, r.s, KeyItemStats, validation.ItemStats)
	if !ok {
		return models.ItemStats{}
	}
	return stats
}

// Bump records one attempt at fact and returns the updated counter
func (r *StatsRepository) Bump(ctx context.Context, fact models.Fact, correct bool) models.ItemStat {
	stats := r.All(ctx)
	next := stats.Get(fact).Bump(correct)
	stats[fact.Key()] = next
	store.Write(ctx, r.s, KeyItemStats, stats)
	return next
}
