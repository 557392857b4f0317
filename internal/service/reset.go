package service

import (
	"context"
	"errors"
	"log"

	"gugudan/internal/repository"
	"gugudan/internal/store"
)

var (
	ErrResetFailed = errors.New("reset failed")
)

// ResetService wipes every record the app owns
type ResetService struct {
	store    store.Store
	settings *SettingsService
	quiz     *QuizService
}

// NewResetService creates a new reset service
func NewResetService(s store.Store, settings *SettingsService, quiz *QuizService) *ResetService {
	return &ResetService{store: s, settings: settings, quiz: quiz}
}

// Reset deletes every key in order and stops at the first failure, leaving
// the remaining keys in place. In-memory state is refreshed either way.
func (s *ResetService) Reset(ctx context.Context) error {
	defer func() {
		s.quiz.Drop()
		s.settings.Reload(ctx)
	}()

	for _, key := range repository.AllKeys {
		if err := s.store.Delete(ctx, key); err != nil {
			log.Printf("reset: failed to delete %s: %v", key, err)
			return ErrResetFailed
		}
	}
	log.Println("reset: all records deleted")
	return nil
}
