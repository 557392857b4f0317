package repository

import (
	"context"

	"gugudan/internal/models"
	"gugudan/internal/store"
	"gugudan/internal/validation"
)

// ResultRepository handles the last result and the recent-results history
type ResultRepository struct {
	s store.Store
}

// NewResultRepository creates a new result repository
func NewResultRepository(s store.Store) *ResultRepository {
	return &ResultRepository{s: s}
}

// Last returns the most recently finalized result
func (r *ResultRepository) Last(ctx context.Context) (models.Result, bool) {
	return store.Read(ctx, r.s, KeyLastResult, validation.Result)
}

// Recent returns the history, most recent first
func (r *ResultRepository) Recent(ctx context.Context) []models.Result {
	results, ok := store.Read(ctx, r.s, KeyRecentResults, validation.Results)
	if !ok {
		return []models.Result{}
	}
	return results
}

// Record stores result as the last result and prepends it to the history
func (r *ResultRepository) Record(ctx context.Context, result models.Result) {
	store.Write(ctx, r.s, KeyLastResult, result)
	store.Write(ctx, r.s, KeyRecentResults, models.PrependResult(r.Recent(ctx), result))
}
