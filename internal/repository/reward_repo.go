package repository

import (
	"context"
	"time"

	"gugudan/internal/models"
	"gugudan/internal/store"
	"gugudan/internal/validation"
)

// RewardRepository handles unlocked badges
type RewardRepository struct {
	s store.Store
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(s store.Store) *RewardRepository {
	return &RewardRepository{s: s}
}

// State returns the unlocked badges; an empty state when nothing valid is stored
func (r *RewardRepository) State(ctx context.Context) models.RewardState {
	state, ok := store.Read(ctx, r.s, KeyRewards, validation.RewardState)
	if !ok || state.Unlocked == nil {
		return models.RewardState{Unlocked: map[models.BadgeID]time.Time{}}
	}
	return state
}

// Unlock stamps id with at unless it is already unlocked. It reports whether
// the badge was newly unlocked.
func (r *RewardRepository) Unlock(ctx context.Context, id models.BadgeID, at time.Time) bool {
	state := r.State(ctx)
	if state.IsUnlocked(id) {
		return false
	}
	state.Unlocked[id] = at
	store.Write(ctx, r.s, KeyRewards, state)
	return true
}
