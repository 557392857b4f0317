// Package validation decodes persisted JSON records and rejects malformed shapes.
//
// Every validator either returns a fully trusted value or an error; callers
// treat an error exactly like a missing record.
package validation

import (
	"encoding/json"
	"fmt"
	"time"

	"gugudan/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func missing(field string) error {
	return ValidationError{Field: field, Message: "is required"}
}

func invalid(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

type settingsWire struct {
	SoundOn   *bool   `json:"soundOn"`
	QuizCount *int    `json:"quizCount"`
	MaxRight  *int    `json:"maxRight"`
	LearnView *string `json:"learnView"`
}

// Settings validates a persisted settings record. Records written before the
// learn view option existed are accepted with the default view.
func Settings(raw []byte) (models.Settings, error) {
	var w settingsWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.Settings{}, err
	}
	if w.SoundOn == nil {
		return models.Settings{}, missing("soundOn")
	}
	if w.QuizCount == nil {
		return models.Settings{}, missing("quizCount")
	}
	if w.MaxRight == nil {
		return models.Settings{}, missing("maxRight")
	}

	s := models.Settings{
		SoundOn:   *w.SoundOn,
		QuizCount: *w.QuizCount,
		MaxRight:  *w.MaxRight,
		LearnView: models.LearnViewCards,
	}
	if w.LearnView != nil {
		s.LearnView = models.LearnView(*w.LearnView)
	}
	if err := s.Validate(); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

type wrongItemWire struct {
	Dan    *int `json:"dan"`
	Right  *int `json:"right"`
	Answer *int `json:"answer"`
	Picked *int `json:"picked"`
}

func wrongItems(field string, in []wrongItemWire) ([]models.WrongItem, error) {
	out := make([]models.WrongItem, 0, len(in))
	for i, w := range in {
		if w.Dan == nil || w.Right == nil || w.Answer == nil || w.Picked == nil {
			return nil, invalid(fmt.Sprintf("%s[%d]", field, i), "needs dan, right, answer and picked")
		}
		out = append(out, models.WrongItem{Dan: *w.Dan, Right: *w.Right, Answer: *w.Answer, Picked: *w.Picked})
	}
	return out, nil
}

type resultWire struct {
	ID               *string         `json:"id"`
	At               *string         `json:"at"`
	Dan              *int            `json:"dan"`
	Total            *int            `json:"total"`
	Correct          *int            `json:"correct"`
	MsTotal          *int64          `json:"msTotal"`
	PerQuestionMsAvg *int64          `json:"perQuestionMsAvg"`
	WrongItems       []wrongItemWire `json:"wrongItems"`
}

func (w resultWire) toResult() (models.Result, error) {
	switch {
	case w.ID == nil:
		return models.Result{}, missing("id")
	case w.At == nil:
		return models.Result{}, missing("at")
	case w.Dan == nil:
		return models.Result{}, missing("dan")
	case w.Total == nil:
		return models.Result{}, missing("total")
	case w.Correct == nil:
		return models.Result{}, missing("correct")
	case w.MsTotal == nil:
		return models.Result{}, missing("msTotal")
	case w.PerQuestionMsAvg == nil:
		return models.Result{}, missing("perQuestionMsAvg")
	case w.WrongItems == nil:
		return models.Result{}, missing("wrongItems")
	}

	at, err := time.Parse(time.RFC3339, *w.At)
	if err != nil {
		return models.Result{}, invalid("at", "must be an RFC 3339 timestamp")
	}
	items, err := wrongItems("wrongItems", w.WrongItems)
	if err != nil {
		return models.Result{}, err
	}

	return models.Result{
		ID:               *w.ID,
		At:               at,
		Dan:              *w.Dan,
		Total:            *w.Total,
		Correct:          *w.Correct,
		MsTotal:          *w.MsTotal,
		PerQuestionMsAvg: *w.PerQuestionMsAvg,
		WrongItems:       items,
	}, nil
}

// Result validates a single persisted result
func Result(raw []byte) (models.Result, error) {
	var w resultWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.Result{}, err
	}
	return w.toResult()
}

// Results validates a result history; one bad entry rejects the whole list
func Results(raw []byte) ([]models.Result, error) {
	var ws []resultWire
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, invalid("results", "must be an array")
	}
	out := make([]models.Result, 0, len(ws))
	for i, w := range ws {
		r, err := w.toResult()
		if err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

type itemStatWire struct {
	Attempts *int `json:"attempts"`
	Wrong    *int `json:"wrong"`
}

// ItemStats validates the per-fact counters
func ItemStats(raw []byte) (models.ItemStats, error) {
	var ws map[string]itemStatWire
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, invalid("itemStats", "must be an object")
	}
	out := make(models.ItemStats, len(ws))
	for key, w := range ws {
		if w.Attempts == nil || w.Wrong == nil {
			return nil, invalid(key, "needs attempts and wrong")
		}
		if *w.Wrong < 0 || *w.Attempts < *w.Wrong {
			return nil, invalid(key, "wrong must be between 0 and attempts")
		}
		out[key] = models.ItemStat{Attempts: *w.Attempts, Wrong: *w.Wrong}
	}
	return out, nil
}

type rewardsWire struct {
	Unlocked map[string]string `json:"unlocked"`
}

// RewardState validates the unlocked-badge record. A record without an
// unlocked map is an empty state.
func RewardState(raw []byte) (models.RewardState, error) {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return models.RewardState{}, err
	}
	if present == nil {
		return models.RewardState{}, invalid("rewards", "must be an object")
	}

	var w rewardsWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.RewardState{}, err
	}

	state := models.RewardState{Unlocked: make(map[models.BadgeID]time.Time, len(w.Unlocked))}
	for id, at := range w.Unlocked {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return models.RewardState{}, invalid("unlocked."+id, "must be an RFC 3339 timestamp")
		}
		state.Unlocked[models.BadgeID(id)] = t
	}
	return state, nil
}

type sessionWire struct {
	ID         *string         `json:"id"`
	Dan        *int            `json:"dan"`
	Mode       *string         `json:"mode"`
	Total      *int            `json:"total"`
	Index      *int            `json:"index"`
	Correct    *int            `json:"correct"`
	Rights     []int           `json:"rights"`
	WrongItems []wrongItemWire `json:"wrongItems"`
	StartedAt  *int64          `json:"startedAt"`
	Picked     *int            `json:"picked"`
}

// QuizSession validates an active-session snapshot, including its counters
func QuizSession(raw []byte) (models.QuizSession, error) {
	var w sessionWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.QuizSession{}, err
	}
	switch {
	case w.ID == nil:
		return models.QuizSession{}, missing("id")
	case w.Dan == nil:
		return models.QuizSession{}, missing("dan")
	case w.Mode == nil:
		return models.QuizSession{}, missing("mode")
	case w.Total == nil:
		return models.QuizSession{}, missing("total")
	case w.Index == nil:
		return models.QuizSession{}, missing("index")
	case w.Correct == nil:
		return models.QuizSession{}, missing("correct")
	case w.Rights == nil:
		return models.QuizSession{}, missing("rights")
	case w.WrongItems == nil:
		return models.QuizSession{}, missing("wrongItems")
	case w.StartedAt == nil:
		return models.QuizSession{}, missing("startedAt")
	}

	mode := models.Mode(*w.Mode)
	if !mode.Valid() {
		return models.QuizSession{}, invalid("mode", "must be dan, weak or mistakes")
	}
	if *w.Dan < 0 || *w.Dan > models.MaxDan {
		return models.QuizSession{}, invalid("dan", "out of range")
	}
	if len(w.Rights) != *w.Total {
		return models.QuizSession{}, invalid("rights", "length must equal total")
	}
	seen := make(map[int]bool, len(w.Rights))
	for i, right := range w.Rights {
		if right < 0 || right > models.MaxRightLimit {
			return models.QuizSession{}, invalid(fmt.Sprintf("rights[%d]", i), "out of range")
		}
		if seen[right] {
			return models.QuizSession{}, invalid(fmt.Sprintf("rights[%d]", i), "repeated")
		}
		seen[right] = true
	}
	if w.Picked != nil && *w.Picked < 0 {
		return models.QuizSession{}, invalid("picked", "must not be negative")
	}
	if *w.Index < 0 || *w.Index > *w.Total {
		return models.QuizSession{}, invalid("index", "must be between 0 and total")
	}
	if *w.Correct < 0 || *w.Correct > *w.Index+1 || *w.Correct > *w.Total {
		return models.QuizSession{}, invalid("correct", "exceeds answered questions")
	}
	items, err := wrongItems("wrongItems", w.WrongItems)
	if err != nil {
		return models.QuizSession{}, err
	}

	return models.QuizSession{
		ID:         *w.ID,
		Dan:        *w.Dan,
		Mode:       mode,
		Total:      *w.Total,
		Index:      *w.Index,
		Correct:    *w.Correct,
		Rights:     w.Rights,
		WrongItems: items,
		StartedAt:  *w.StartedAt,
		Picked:     w.Picked,
	}, nil
}

type dailyWire struct {
	Solved  *int `json:"solved"`
	Correct *int `json:"correct"`
}

// DailyStats validates the per-day counters
func DailyStats(raw []byte) (models.DailyStats, error) {
	var ws map[string]dailyWire
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, invalid("daily", "must be an object")
	}
	out := make(models.DailyStats, len(ws))
	for day, w := range ws {
		if w.Solved == nil || w.Correct == nil {
			return nil, invalid(day, "needs solved and correct")
		}
		out[day] = models.DailyStat{Solved: *w.Solved, Correct: *w.Correct}
	}
	return out, nil
}
