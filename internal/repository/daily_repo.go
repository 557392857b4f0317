package repository

import (
	"context"
	"time"

	"gugudan/internal/models"
	"gugudan/internal/store"
	"gugudan/internal/validation"
)

// DailyRepository handles per-day totals. Days are calendar dates in loc.
type DailyRepository struct {
	s   store.Store
	loc *time.Location
}

// NewDailyRepository creates a new daily repository
func NewDailyRepository(s store.Store, loc *time.Location) *DailyRepository {
	if loc == nil {
		loc = time.Local
	}
	return &DailyRepository{s: s, loc: loc}
}

// All returns every day's totals
func (r *DailyRepository) All(ctx context.Context) models.DailyStats {
	stats, ok := store.Read(ctx, r.s, KeyDaily, validation.DailyStats)
	if !ok {
		return models.DailyStats{}
	}
	return stats
}

// DayKey returns the day key for now in the repository's location
func (r *DailyRepository) DayKey(now time.Time) string {
	return models.DayKey(now.In(r.loc))
}

// Today returns the totals for the day containing now
func (r *DailyRepository) Today(ctx context.Context, now time.Time) models.DailyStat {
	return r.All(ctx)[r.DayKey(now)]
}

// BumpToday adds to the totals for the day containing now and returns them
func (r *DailyRepository) BumpToday(ctx context.Context, now time.Time, solved, correct int) models.DailyStat {
	stats := r.All(ctx)
	key := r.DayKey(now)
	prev := stats[key]
	next := models.DailyStat{Solved: prev.Solved + solved, Correct: prev.Correct + correct}
	stats[key] = next
	store.Write(ctx, r.s, KeyDaily, stats)
	return next
}
