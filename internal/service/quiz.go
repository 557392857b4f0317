package service

import (
	"fmt"

	"gugudan/internal/models"
)

// Phase is the lifecycle position of a quiz
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseFinalizing
	PhaseCompleted
)

var phaseNames = map[Phase]string{
	PhaseNotStarted: "not_started",
	PhaseInProgress: "in_progress",
	PhaseFinalizing: "finalizing",
	PhaseCompleted:  "completed",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// quiz is the in-memory state of one quiz. The session field is the same
// snapshot that gets persisted after every mutation.
type quiz struct {
	phase     Phase
	session   models.QuizSession
	questions []models.Question
	feedback  string
	result    *models.Result
}

func newQuiz(session models.QuizSession, questions []models.Question) *quiz {
	return &quiz{phase: PhaseInProgress, session: session, questions: questions}
}

func (q *quiz) current() models.Question {
	return q.questions[q.session.Index]
}

func (q *quiz) answered() bool {
	return q.session.Picked != nil
}

func (q *quiz) isLast() bool {
	return q.session.Index >= q.session.Total-1
}

// beginFinalize moves InProgress to Finalizing. It reports false from any
// other phase, so finalization runs at most once.
func (q *quiz) beginFinalize() bool {
	if q.phase != PhaseInProgress {
		return false
	}
	q.phase = PhaseFinalizing
	return true
}

func (q *quiz) complete(result models.Result) {
	q.result = &result
	q.phase = PhaseCompleted
}

// QuizState is what a client needs to render the quiz screen
type QuizState struct {
	ID       string           `json:"id"`
	Phase    Phase            `json:"phase"`
	Dan      int              `json:"dan"`
	Mode     models.Mode      `json:"mode"`
	Index    int              `json:"index"`
	Total    int              `json:"total"`
	Correct  int              `json:"correct"`
	Question *models.Question `json:"question,omitempty"`
	Picked   *int             `json:"picked,omitempty"`
	Status   string           `json:"status"`
	IsLast   bool             `json:"isLast"`
	Result   *models.Result   `json:"result,omitempty"`
}

func (q *quiz) state() QuizState {
	st := QuizState{
		ID:      q.session.ID,
		Phase:   q.phase,
		Dan:     q.session.Dan,
		Mode:    q.session.Mode,
		Index:   q.session.Index,
		Total:   q.session.Total,
		Correct: q.session.Correct,
		Picked:  q.session.Picked,
		IsLast:  q.isLast(),
		Result:  q.result,
	}
	if q.phase == PhaseInProgress {
		question := q.current()
		st.Question = &question
		st.Status = PromptPhrase
		if q.answered() {
			st.Status = q.feedback
		}
	}
	return st
}
