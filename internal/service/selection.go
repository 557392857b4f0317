package service

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"gugudan/internal/models"
)

// UnknownMixCount is how many not-yet-known facts a weak quiz mixes in
const UnknownMixCount = 2

// choiceCount is the number of options per question
const choiceCount = 4

var (
	ErrNoMistakes = errors.New("no mistakes to review for this dan")
)

// Selector picks multiplicands and builds questions. It is not safe for
// concurrent use; QuizService serializes access.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector drawing from rng. A nil rng is seeded from
// the clock.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// SelectRights returns up to count distinct multiplicands in [0, ceiling]
// for dan. In mistakes mode the multiplicands come from last; when last has
// no wrong answers for dan, ErrNoMistakes is returned.
func (s *Selector) SelectRights(mode models.Mode, dan, ceiling, count int, stats models.ItemStats, last *models.Result) ([]int, error) {
	if count > ceiling+1 {
		count = ceiling + 1
	}
	if count < 0 {
		count = 0
	}

	switch mode {
	case models.ModeWeak:
		return s.pickWeakRights(dan, ceiling, count, stats), nil
	case models.ModeMistakes:
		rights := mistakeRights(dan, ceiling, count, last)
		if len(rights) == 0 {
			return nil, ErrNoMistakes
		}
		return rights, nil
	default:
		return s.shuffled(ceiling)[:count], nil
	}
}

type candidate struct {
	right int
	score float64 // -1 when not enough attempts
	wrong int
}

func (s *Selector) pickWeakRights(dan, ceiling, count int, stats models.ItemStats) []int {
	candidates := make([]candidate, 0, ceiling+1)
	for right := 0; right <= ceiling; right++ {
		stat := stats.Get(models.Fact{Dan: dan, Right: right})
		c := candidate{right: right, score: -1, wrong: stat.Wrong}
		if stat.Known() {
			c.score = stat.WrongRate()
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if (a.score == -1) != (b.score == -1) {
			return b.score == -1
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.wrong > b.wrong
	})

	picked := make([]int, 0, count)
	taken := make(map[int]bool, count)
	add := func(r int) {
		if len(picked) < count && !taken[r] {
			picked = append(picked, r)
			taken[r] = true
		}
	}

	// Known facts, weakest first
	var unknown []int
	for _, c := range candidates {
		if c.score == -1 {
			unknown = append(unknown, c.right)
			continue
		}
		add(c.right)
	}

	// A few unknown facts so new material keeps showing up
	s.shuffle(unknown)
	if len(unknown) > UnknownMixCount {
		unknown = unknown[:UnknownMixCount]
	}
	for _, r := range unknown {
		add(r)
	}

	for _, r := range s.shuffled(ceiling) {
		add(r)
	}
	return picked
}

func mistakeRights(dan, ceiling, count int, last *models.Result) []int {
	if last == nil {
		return nil
	}
	var rights []int
	seen := make(map[int]bool)
	for _, item := range last.WrongItems {
		if len(rights) >= count {
			break
		}
		if item.Dan != dan || item.Right < 0 || item.Right > ceiling || seen[item.Right] {
			continue
		}
		seen[item.Right] = true
		rights = append(rights, item.Right)
	}
	return rights
}

// MakeChoices returns choiceCount distinct options including correct, in
// random order. Distractors are never negative.
func (s *Selector) MakeChoices(correct int) []int {
	low := correct - 9
	if correct < 0 {
		low = 0
	}
	choices := []int{correct}
	seen := map[int]bool{correct: true}
	for len(choices) < choiceCount {
		candidate := low + s.rng.Intn(19)
		if candidate < 0 {
			candidate = 0
		}
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		choices = append(choices, candidate)
	}
	s.shuffle(choices)
	return choices
}

// BuildQuestions turns dan and the ordered multiplicands into questions with
// fresh choices.
func (s *Selector) BuildQuestions(dan int, rights []int) []models.Question {
	questions := make([]models.Question, 0, len(rights))
	for _, right := range rights {
		answer := dan * right
		questions = append(questions, models.Question{
			Dan:     dan,
			Right:   right,
			Answer:  answer,
			Choices: s.MakeChoices(answer),
		})
	}
	return questions
}

// Pick returns a uniformly chosen element of list
func (s *Selector) Pick(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[s.rng.Intn(len(list))]
}

func (s *Selector) shuffled(ceiling int) []int {
	pool := make([]int, ceiling+1)
	for i := range pool {
		pool[i] = i
	}
	s.shuffle(pool)
	return pool
}

// shuffle is an in-place Fisher-Yates shuffle
func (s *Selector) shuffle(a []int) {
	for i := len(a) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
