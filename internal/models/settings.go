package models

import "errors"

// LearnView is the layout of the learning screen
type LearnView string

const (
	LearnViewCards LearnView = "cards"
	LearnViewTable LearnView = "table"
)

var (
	ErrInvalidQuizCount = errors.New("quiz count must be 10 or 20")
	ErrInvalidMaxRight  = errors.New("max right must be 9 or 12")
	ErrInvalidLearnView = errors.New("learn view must be cards or table")
)

// Settings holds the parent-adjustable options
type Settings struct {
	SoundOn   bool      `json:"soundOn"`
	QuizCount int       `json:"quizCount"`
	MaxRight  int       `json:"maxRight"`
	LearnView LearnView `json:"learnView"`
}

// DefaultSettings returns the settings used when nothing is stored
func DefaultSettings() Settings {
	return Settings{
		SoundOn:   false,
		QuizCount: 10,
		MaxRight:  9,
		LearnView: LearnViewCards,
	}
}

// Validate checks every field against its allowed values
func (s Settings) Validate() error {
	if s.QuizCount != 10 && s.QuizCount != 20 {
		return ErrInvalidQuizCount
	}
	if s.MaxRight != 9 && s.MaxRight != 12 {
		return ErrInvalidMaxRight
	}
	if s.LearnView != LearnViewCards && s.LearnView != LearnViewTable {
		return ErrInvalidLearnView
	}
	return nil
}
