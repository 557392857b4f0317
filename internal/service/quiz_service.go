package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"gugudan/internal/models"
	"gugudan/internal/repository"
)

var (
	ErrNoActiveQuiz = errors.New("no quiz in progress")
	ErrNotAnswered  = errors.New("current question has not been answered")
	ErrInvalidMode  = errors.New("mode must be dan, weak or mistakes")
)

// SessionNotifier is told about every finalized quiz
type SessionNotifier interface {
	SessionCompleted(ctx context.Context, result models.Result, newBadges []models.Badge)
}

// StartOutcome describes a newly started quiz
type StartOutcome struct {
	State QuizState `json:"state"`
	// Downgraded is set when mistakes mode had nothing to review and a
	// random quiz was started instead
	Downgraded bool `json:"downgraded"`
}

// PickOutcome is the grading of one answer
type PickOutcome struct {
	Correct bool   `json:"correct"`
	Answer  int    `json:"answer"`
	Picked  int    `json:"picked"`
	Phrase  string `json:"phrase"`
	// Repeated is set when the question had already been answered and the
	// first outcome is returned unchanged
	Repeated bool      `json:"repeated"`
	State    QuizState `json:"state"`
}

// NextOutcome is the state after advancing
type NextOutcome struct {
	Done      bool           `json:"done"`
	State     QuizState      `json:"state"`
	Result    *models.Result `json:"result,omitempty"`
	NewBadges []models.Badge `json:"newBadges,omitempty"`
}

// QuizService owns the single quiz of the app. All methods are safe for
// concurrent use; mutations are serialized.
type QuizService struct {
	mu sync.Mutex

	settings *SettingsService
	rewards  *RewardService
	stats    *repository.StatsRepository
	results  *repository.ResultRepository
	sessions *repository.SessionRepository
	daily    *repository.DailyRepository
	selector *Selector

	now       func() time.Time
	newID     func() string
	notifiers []SessionNotifier

	current *quiz
}

// QuizDeps groups the collaborators of a QuizService
type QuizDeps struct {
	Settings *SettingsService
	Rewards  *RewardService
	Stats    *repository.StatsRepository
	Results  *repository.ResultRepository
	Sessions *repository.SessionRepository
	Daily    *repository.DailyRepository
	Selector *Selector
	// Now defaults to time.Now
	Now func() time.Time
	// NewID defaults to uuid.NewString
	NewID func() string
}

// NewQuizService creates a new quiz service
func NewQuizService(deps QuizDeps) *QuizService {
	s := &QuizService{
		settings: deps.Settings,
		rewards:  deps.Rewards,
		stats:    deps.Stats,
		results:  deps.Results,
		sessions: deps.Sessions,
		daily:    deps.Daily,
		selector: deps.Selector,
		now:      deps.Now,
		newID:    deps.NewID,
	}
	if s.selector == nil {
		s.selector = NewSelector(nil)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// AddNotifier registers n to be told about finalized quizzes
func (s *QuizService) AddNotifier(n SessionNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifiers = append(s.notifiers, n)
}

// Start begins a new quiz for dan, replacing any quiz or snapshot
func (s *QuizService) Start(ctx context.Context, dan int, mode models.Mode) (StartOutcome, error) {
	if dan < 0 || dan > models.MaxDan {
		return StartOutcome{}, ErrInvalidDan
	}
	if mode == "" {
		mode = models.ModeDan
	}
	if !mode.Valid() {
		return StartOutcome{}, ErrInvalidMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.settings.Get()
	stats := s.stats.All(ctx)
	var last *models.Result
	if r, ok := s.results.Last(ctx); ok {
		last = &r
	}

	downgraded := false
	rights, err := s.selector.SelectRights(mode, dan, settings.MaxRight, settings.QuizCount, stats, last)
	if errors.Is(err, ErrNoMistakes) {
		log.Printf("quiz: no mistakes to review for dan %d, starting a random quiz", dan)
		mode = models.ModeDan
		downgraded = true
		rights, err = s.selector.SelectRights(mode, dan, settings.MaxRight, settings.QuizCount, stats, last)
	}
	if err != nil {
		return StartOutcome{}, fmt.Errorf("failed to select questions: %w", err)
	}

	session := models.QuizSession{
		ID:         s.newID(),
		Dan:        dan,
		Mode:       mode,
		Total:      len(rights),
		Rights:     rights,
		WrongItems: []models.WrongItem{},
		StartedAt:  s.now().UnixMilli(),
	}
	s.current = newQuiz(session, s.selector.BuildQuestions(dan, rights))
	s.sessions.Save(ctx, session)

	return StartOutcome{State: s.current.state(), Downgraded: downgraded}, nil
}

// Pending returns the resumable snapshot, if any, when no quiz is running
func (s *QuizService) Pending(ctx context.Context) (models.QuizSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.phase == PhaseInProgress {
		return models.QuizSession{}, false
	}
	return s.resumable(ctx)
}

func (s *QuizService) resumable(ctx context.Context) (models.QuizSession, bool) {
	session, ok := s.sessions.Active(ctx, s.now())
	if !ok || session.Index >= session.Total {
		return models.QuizSession{}, false
	}
	return session, true
}

// Resume rebuilds the quiz from the stored snapshot with fresh choices
func (s *QuizService) Resume(ctx context.Context) (QuizState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.resumable(ctx)
	if !ok {
		return QuizState{}, ErrNoActiveQuiz
	}
	if cur := s.current; cur != nil && cur.phase == PhaseInProgress && cur.session.ID == session.ID {
		return cur.state(), nil
	}
	q := newQuiz(session, s.selector.BuildQuestions(session.Dan, session.Rights))
	if q.answered() {
		q.feedback = s.selector.feedback(*session.Picked == q.current().Answer)
	}
	s.current = q
	return q.state(), nil
}

// Discard drops the running quiz and the stored snapshot
func (s *QuizService) Discard(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.sessions.Clear(ctx)
}

// Current returns the state of the running or just-finished quiz
func (s *QuizService) Current() (QuizState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return QuizState{}, false
	}
	return s.current.state(), true
}

// Pick grades value against the current question. Only the first pick per
// question counts.
func (s *QuizService) Pick(ctx context.Context, value int) (PickOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.current
	if q == nil || q.phase != PhaseInProgress {
		return PickOutcome{}, ErrNoActiveQuiz
	}
	question := q.current()

	if q.answered() {
		first := *q.session.Picked
		return PickOutcome{
			Correct:  first == question.Answer,
			Answer:   question.Answer,
			Picked:   first,
			Phrase:   q.feedback,
			Repeated: true,
			State:    q.state(),
		}, nil
	}

	correct := value == question.Answer
	s.stats.Bump(ctx, question.Fact(), correct)
	if correct {
		q.session.Correct++
	} else {
		q.session.WrongItems = append(q.session.WrongItems, models.WrongItem{
			Dan:    question.Dan,
			Right:  question.Right,
			Answer: question.Answer,
			Picked: value,
		})
	}
	picked := value
	q.session.Picked = &picked
	q.feedback = s.selector.feedback(correct)
	s.sessions.Save(ctx, q.session)

	return PickOutcome{
		Correct: correct,
		Answer:  question.Answer,
		Picked:  value,
		Phrase:  q.feedback,
		State:   q.state(),
	}, nil
}

// Next advances to the following question, or finalizes after the last one.
// Once finalized, further calls return the same result.
func (s *QuizService) Next(ctx context.Context) (NextOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.current
	if q == nil {
		return NextOutcome{}, ErrNoActiveQuiz
	}

	switch q.phase {
	case PhaseFinalizing, PhaseCompleted:
		return NextOutcome{Done: true, State: q.state(), Result: q.result}, nil
	case PhaseInProgress:
	default:
		return NextOutcome{}, ErrNoActiveQuiz
	}

	if !q.answered() {
		return NextOutcome{}, ErrNotAnswered
	}

	if !q.isLast() {
		q.session.Index++
		q.session.Picked = nil
		q.feedback = ""
		s.sessions.Save(ctx, q.session)
		return NextOutcome{State: q.state()}, nil
	}

	result, badges, ok := s.finalize(ctx, q)
	if !ok {
		return NextOutcome{Done: true, State: q.state(), Result: q.result}, nil
	}
	return NextOutcome{Done: true, State: q.state(), Result: &result, NewBadges: badges}, nil
}

func (s *QuizService) finalize(ctx context.Context, q *quiz) (models.Result, []models.Badge, bool) {
	if !q.beginFinalize() {
		return models.Result{}, nil, false
	}

	now := s.now()
	msTotal := now.Sub(q.session.StartedTime()).Milliseconds()
	if msTotal < 0 {
		msTotal = 0
	}
	var avg int64
	if q.session.Total > 0 {
		avg = (msTotal + int64(q.session.Total)/2) / int64(q.session.Total)
	}

	wrong := make([]models.WrongItem, len(q.session.WrongItems))
	copy(wrong, q.session.WrongItems)

	result := models.Result{
		ID:               q.session.ID,
		At:               now.UTC().Truncate(time.Millisecond),
		Dan:              q.session.Dan,
		Total:            q.session.Total,
		Correct:          q.session.Correct,
		MsTotal:          msTotal,
		PerQuestionMsAvg: avg,
		WrongItems:       wrong,
	}

	s.results.Record(ctx, result)
	today := s.daily.BumpToday(ctx, now, result.Total, result.Correct)
	badges := s.rewards.Evaluate(ctx, result, today)
	s.sessions.Clear(ctx)
	q.complete(result)

	log.Printf("quiz: finished %s dan=%d correct=%d/%d new_badges=%d", result.ID, result.Dan, result.Correct, result.Total, len(badges))

	for _, n := range s.notifiers {
		n.SessionCompleted(ctx, result, badges)
	}
	return result, badges, true
}

// Drop forgets the in-memory quiz without touching the store
func (s *QuizService) Drop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// SweepExpired removes an expired snapshot, and the running quiz it belongs
// to. It reports whether anything was removed.
func (s *QuizService) SweepExpired(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.current != nil && s.current.phase == PhaseInProgress && s.current.session.IsExpired(now) {
		s.current = nil
	}
	return s.sessions.ClearExpired(ctx, now)
}
