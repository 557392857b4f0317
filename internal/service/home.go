package service

import (
	"context"
	"time"

	"gugudan/internal/models"
	"gugudan/internal/repository"
)

// HomeSummary is today's mission card plus a few counters
type HomeSummary struct {
	Solved     int  `json:"solved"`
	Correct    int  `json:"correct"`
	Rate       int  `json:"rate"`
	Stars      int  `json:"stars"`
	Goal       int  `json:"goal"`
	GoalDone   bool `json:"goalDone"`
	Resumable  bool `json:"resumable"`
	BadgeCount int  `json:"badgeCount"`
	BadgeTotal int  `json:"badgeTotal"`
	SoundOn    bool `json:"soundOn"`
}

// HomeService builds the home screen summary
type HomeService struct {
	daily    *repository.DailyRepository
	rewards  *RewardService
	quiz     *QuizService
	settings *SettingsService
	now      func() time.Time
}

// NewHomeService creates a new home service
func NewHomeService(daily *repository.DailyRepository, rewards *RewardService, quiz *QuizService, settings *SettingsService) *HomeService {
	return &HomeService{daily: daily, rewards: rewards, quiz: quiz, settings: settings, now: time.Now}
}

// Summary returns the current home summary
func (s *HomeService) Summary(ctx context.Context) HomeSummary {
	today := s.daily.Today(ctx, s.now())
	_, resumable := s.quiz.Pending(ctx)
	return HomeSummary{
		Solved:     today.Solved,
		Correct:    today.Correct,
		Rate:       today.Rate(),
		Stars:      today.Stars(),
		Goal:       models.DailyGoal,
		GoalDone:   today.GoalDone(),
		Resumable:  resumable,
		BadgeCount: s.rewards.UnlockedCount(ctx),
		BadgeTotal: len(models.Badges),
		SoundOn:    s.settings.Get().SoundOn,
	}
}
