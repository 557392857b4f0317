package models

import "time"

// RecentResultsLimit caps the stored result history
const RecentResultsLimit = 10

// Result is the finalized, immutable outcome of one completed quiz
type Result struct {
	ID               string      `json:"id"`
	At               time.Time   `json:"at"`
	Dan              int         `json:"dan"`
	Total            int         `json:"total"`
	Correct          int         `json:"correct"`
	MsTotal          int64       `json:"msTotal"`
	PerQuestionMsAvg int64       `json:"perQuestionMsAvg"`
	WrongItems       []WrongItem `json:"wrongItems"`
}

// Accuracy returns the percentage of correct answers, rounded
func (r *Result) Accuracy() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Correct*100 + r.Total/2) / r.Total
}

// IsPerfect reports whether every question was answered correctly
func (r *Result) IsPerfect() bool {
	return r.Total > 0 && r.Correct == r.Total
}

// PrependResult puts r at the head of history, dropping any older copy of the
// same id and trimming to RecentResultsLimit.
func PrependResult(history []Result, r Result) []Result {
	next := make([]Result, 0, RecentResultsLimit)
	next = append(next, r)
	for _, prev := range history {
		if len(next) >= RecentResultsLimit {
			break
		}
		if prev.ID == r.ID {
			continue
		}
		next = append(next, prev)
	}
	return next
}
