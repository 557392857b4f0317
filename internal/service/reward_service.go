package service

import (
	"context"
	"time"

	"gugudan/internal/models"
	"gugudan/internal/repository"
)

// RewardService decides which badges a finished quiz earns
type RewardService struct {
	repo *repository.RewardRepository
}

// NewRewardService creates a new reward service
func NewRewardService(repo *repository.RewardRepository) *RewardService {
	return &RewardService{repo: repo}
}

// CollectionEntry is one badge as shown in the sticker collection
type CollectionEntry struct {
	models.Badge
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

// Evaluate unlocks every badge result qualifies for, stamped with the result
// time, and returns the newly unlocked ones in catalog order. today is the
// day's totals after result was counted.
func (s *RewardService) Evaluate(ctx context.Context, result models.Result, today models.DailyStat) []models.Badge {
	earned := []models.BadgeID{models.BadgeFirstQuiz, models.DanBadgeID(result.Dan)}
	if result.IsPerfect() {
		earned = append(earned, models.BadgePerfect)
	}

	newly := make(map[models.BadgeID]bool)
	for _, id := range earned {
		if s.repo.Unlock(ctx, id, result.At) {
			newly[id] = true
		}
	}

	// all-clear depends on the dan badges written above
	state := s.repo.State(ctx)
	if state.AllDansUnlocked() && s.repo.Unlock(ctx, models.BadgeAllClear, result.At) {
		newly[models.BadgeAllClear] = true
	}
	if today.GoalDone() && s.repo.Unlock(ctx, models.BadgeDailyGoal, result.At) {
		newly[models.BadgeDailyGoal] = true
	}

	var badges []models.Badge
	for _, b := range models.Badges {
		if newly[b.ID] {
			badges = append(badges, b)
		}
	}
	return badges
}

// Collection returns the full catalog with unlock state
func (s *RewardService) Collection(ctx context.Context) []CollectionEntry {
	state := s.repo.State(ctx)
	entries := make([]CollectionEntry, 0, len(models.Badges))
	for _, b := range models.Badges {
		entry := CollectionEntry{Badge: b}
		if at, ok := state.Unlocked[b.ID]; ok {
			at := at
			entry.Unlocked = true
			entry.UnlockedAt = &at
		}
		entries = append(entries, entry)
	}
	return entries
}

// UnlockedCount returns how many catalog badges are unlocked
func (s *RewardService) UnlockedCount(ctx context.Context) int {
	state := s.repo.State(ctx)
	count := 0
	for _, b := range models.Badges {
		if state.IsUnlocked(b.ID) {
			count++
		}
	}
	return count
}
