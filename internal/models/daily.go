package models

import "time"

// DailyGoal is the number of questions that completes today's mission
const DailyGoal = 10

// DailyStat holds one calendar day's counters
type DailyStat struct {
	Solved  int `json:"solved"`
	Correct int `json:"correct"`
}

// DailyStats maps "YYYY-MM-DD" to that day's counters
type DailyStats map[string]DailyStat

// DayKey formats t as a calendar date in t's own location
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Rate returns the percentage of correct answers, rounded
func (d DailyStat) Rate() int {
	if d.Solved == 0 {
		return 0
	}
	return (d.Correct*100 + d.Solved/2) / d.Solved
}

// Stars returns 0-3 stars for the day's accuracy
func (d DailyStat) Stars() int {
	switch rate := d.Rate(); {
	case rate >= 90:
		return 3
	case rate >= 70:
		return 2
	case rate >= 50:
		return 1
	}
	return 0
}

// GoalDone reports whether today's mission is complete
func (d DailyStat) GoalDone() bool {
	return d.Solved >= DailyGoal
}
