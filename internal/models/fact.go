package models

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxDan is the largest multiplier offered by the app
	MaxDan = 9

	// MaxRightLimit is the largest multiplicand any setting allows
	MaxRightLimit = 12

	// MinAttemptsForWeak is the attempt count below which a fact's wrong-rate is not trusted
	MinAttemptsForWeak = 2
)

// Fact is one multiplier x multiplicand pair
type Fact struct {
	Dan   int `json:"dan"`
	Right int `json:"right"`
}

// Product returns the correct answer for the fact
func (f Fact) Product() int {
	return f.Dan * f.Right
}

// Key returns the item-stats key, e.g. "7x3"
func (f Fact) Key() string {
	return strconv.Itoa(f.Dan) + "x" + strconv.Itoa(f.Right)
}

func (f Fact) String() string {
	return fmt.Sprintf("%d × %d", f.Dan, f.Right)
}

// ParseItemKey turns "7x3" back into a Fact
func ParseItemKey(key string) (Fact, error) {
	danStr, rightStr, ok := strings.Cut(key, "x")
	if !ok {
		return Fact{}, fmt.Errorf("invalid item key %q", key)
	}
	dan, err := strconv.Atoi(danStr)
	if err != nil {
		return Fact{}, fmt.Errorf("invalid item key %q: %w", key, err)
	}
	right, err := strconv.Atoi(rightStr)
	if err != nil {
		return Fact{}, fmt.Errorf("invalid item key %q: %w", key, err)
	}
	return Fact{Dan: dan, Right: right}, nil
}

// ItemStat holds attempt counters for one fact
type ItemStat struct {
	Attempts int `json:"attempts"`
	Wrong    int `json:"wrong"`
}

// Known reports whether there are enough attempts to trust the wrong-rate
func (s ItemStat) Known() bool {
	return s.Attempts >= MinAttemptsForWeak
}

// WrongRate returns wrong/attempts, or 0 when never attempted
func (s ItemStat) WrongRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Wrong) / float64(s.Attempts)
}

// Bump returns the stat after one more attempt
func (s ItemStat) Bump(correct bool) ItemStat {
	next := ItemStat{Attempts: s.Attempts + 1, Wrong: s.Wrong}
	if !correct {
		next.Wrong++
	}
	return next
}

// ItemStats maps item keys to their counters
type ItemStats map[string]ItemStat

// Get returns the stat for a fact, zero if never attempted
func (s ItemStats) Get(f Fact) ItemStat {
	return s[f.Key()]
}
