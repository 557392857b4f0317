package repository

import (
	"context"
	"time"

	"gugudan/internal/models"
	"gugudan/internal/store"
	"gugudan/internal/validation"
)

// SessionRepository handles the active-session snapshot
type SessionRepository struct {
	s store.Store
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(s store.Store) *SessionRepository {
	return &SessionRepository{s: s}
}

// Active returns the stored snapshot unless it is missing, malformed or
// older than models.SessionMaxAge at now.
func (r *SessionRepository) Active(ctx context.Context, now time.Time) (models.QuizSession, bool) {
	session, ok := store.Read(ctx, r.s, KeyActiveSession, validation.QuizSession)
	if !ok || session.IsExpired(now) {
		return models.QuizSession{}, false
	}
	return session, true
}

// ClearExpired removes a stored snapshot that is past its max age. It reports
// whether anything was removed.
func (r *SessionRepository) ClearExpired(ctx context.Context, now time.Time) bool {
	session, ok := store.Read(ctx, r.s, KeyActiveSession, validation.QuizSession)
	if !ok || !session.IsExpired(now) {
		return false
	}
	r.Clear(ctx)
	return true
}

// Save replaces the snapshot
func (r *SessionRepository) Save(ctx context.Context, session models.QuizSession) {
	store.Write(ctx, r.s, KeyActiveSession, session)
}

// Clear removes the snapshot
func (r *SessionRepository) Clear(ctx context.Context) {
	store.Remove(ctx, r.s, KeyActiveSession)
}
