package models

import "time"

// Mode selects how a quiz picks its facts
type Mode string

const (
	ModeDan      Mode = "dan"      // random from the whole range
	ModeWeak     Mode = "weak"     // biased towards facts with a high wrong-rate
	ModeMistakes Mode = "mistakes" // replay of the last result's wrong answers
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	switch m {
	case ModeDan, ModeWeak, ModeMistakes:
		return true
	}
	return false
}

// SessionMaxAge is how long an unfinished quiz stays resumable
const SessionMaxAge = 24 * time.Hour

// Question is one multiple-choice question of a running quiz
type Question struct {
	Dan     int   `json:"dan"`
	Right   int   `json:"right"`
	Answer  int   `json:"answer"`
	Choices []int `json:"choices"`
}

// Fact returns the question's fact
func (q Question) Fact() Fact {
	return Fact{Dan: q.Dan, Right: q.Right}
}

// WrongItem records one incorrect answer
type WrongItem struct {
	Dan    int `json:"dan"`
	Right  int `json:"right"`
	Answer int `json:"answer"`
	Picked int `json:"picked"`
}

// QuizSession is the persisted, resumable state of an unfinished quiz
type QuizSession struct {
	ID      string `json:"id"`
	Dan     int    `json:"dan"`
	Mode    Mode   `json:"mode"`
	Total   int    `json:"total"`
	Index   int    `json:"index"`
	Correct int    `json:"correct"`
	// Rights holds the multiplicands in order so questions can be rebuilt
	Rights     []int       `json:"rights"`
	WrongItems []WrongItem `json:"wrongItems"`
	StartedAt  int64       `json:"startedAt"` // epoch milliseconds
	// Picked is the answer already given for the question at Index, if any
	Picked *int `json:"picked,omitempty"`
}

// StartedTime returns StartedAt as a time.Time
func (s *QuizSession) StartedTime() time.Time {
	return time.UnixMilli(s.StartedAt)
}

// IsExpired checks if the session is too old to resume
func (s *QuizSession) IsExpired(now time.Time) bool {
	return now.Sub(s.StartedTime()) > SessionMaxAge
}
