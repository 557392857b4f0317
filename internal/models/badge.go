package models

import (
	"strconv"
	"time"
)

// BadgeID names one achievement
type BadgeID string

const (
	BadgeFirstQuiz BadgeID = "first-quiz"
	BadgePerfect   BadgeID = "perfect-score"
	BadgeAllClear  BadgeID = "all-clear"
	BadgeDailyGoal BadgeID = "daily-goal"
)

// DanBadgeID returns the per-multiplier badge id, e.g. "dan-7"
func DanBadgeID(dan int) BadgeID {
	return BadgeID("dan-" + strconv.Itoa(dan))
}

// Badge is a static catalog entry
type Badge struct {
	ID    BadgeID `json:"id"`
	Title string  `json:"title"`
	Desc  string  `json:"desc"`
	Emoji string  `json:"emoji"`
}

// Badges is the sticker catalog in display order
var Badges = []Badge{
	{ID: BadgeFirstQuiz, Title: "첫 퀴즈", Desc: "처음으로 퀴즈를 끝냈어요!", Emoji: "🎉"},
	{ID: BadgePerfect, Title: "만점", Desc: "퀴즈 문제를 모두 맞혔어요!", Emoji: "🏆"},
	{ID: DanBadgeID(0), Title: "0단 마스터", Desc: "0단 퀴즈를 끝냈어요!", Emoji: "🫧"},
	{ID: DanBadgeID(1), Title: "1단 마스터", Desc: "1단 퀴즈를 끝냈어요!", Emoji: "🌱"},
	{ID: DanBadgeID(2), Title: "2단 마스터", Desc: "2단 퀴즈를 끝냈어요!", Emoji: "🐣"},
	{ID: DanBadgeID(3), Title: "3단 마스터", Desc: "3단 퀴즈를 끝냈어요!", Emoji: "🐥"},
	{ID: DanBadgeID(4), Title: "4단 마스터", Desc: "4단 퀴즈를 끝냈어요!", Emoji: "🦊"},
	{ID: DanBadgeID(5), Title: "5단 마스터", Desc: "5단 퀴즈를 끝냈어요!", Emoji: "🐻"},
	{ID: DanBadgeID(6), Title: "6단 마스터", Desc: "6단 퀴즈를 끝냈어요!", Emoji: "🐼"},
	{ID: DanBadgeID(7), Title: "7단 마스터", Desc: "7단 퀴즈를 끝냈어요!", Emoji: "🦁"},
	{ID: DanBadgeID(8), Title: "8단 마스터", Desc: "8단 퀴즈를 끝냈어요!", Emoji: "🐯"},
	{ID: DanBadgeID(9), Title: "9단 마스터", Desc: "9단 퀴즈를 끝냈어요!", Emoji: "🐉"},
	{ID: BadgeAllClear, Title: "올클리어", Desc: "0단부터 9단까지 모두 끝냈어요!", Emoji: "🌈"},
	{ID: BadgeDailyGoal, Title: "오늘의 미션", Desc: "하루에 10문제를 풀었어요!", Emoji: "⭐"},
}

// FindBadge looks up a catalog entry by id
func FindBadge(id BadgeID) (Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// RewardState maps unlocked badge ids to their unlock time
type RewardState struct {
	Unlocked map[BadgeID]time.Time `json:"unlocked"`
}

// IsUnlocked reports whether id has been unlocked
func (s *RewardState) IsUnlocked(id BadgeID) bool {
	_, ok := s.Unlocked[id]
	return ok
}

// AllDansUnlocked reports whether every per-multiplier badge is unlocked
func (s *RewardState) AllDansUnlocked() bool {
	for dan := 0; dan <= MaxDan; dan++ {
		if !s.IsUnlocked(DanBadgeID(dan)) {
			return false
		}
	}
	return true
}
