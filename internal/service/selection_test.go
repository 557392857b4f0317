package service

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"gugudan/internal/models"
)

func newTestSelector(seed int64) *Selector {
	return NewSelector(rand.New(rand.NewSource(seed)))
}

func checkRights(t *testing.T, rights []int, want, ceiling int) {
	t.Helper()
	if len(rights) != want {
		t.Fatalf("len(rights) = %d, want %d (%v)", len(rights), want, rights)
	}
	seen := make(map[int]bool)
	for _, r := range rights {
		if r < 0 || r > ceiling {
			t.Errorf("right %d outside [0, %d]", r, ceiling)
		}
		if seen[r] {
			t.Errorf("duplicate right %d in %v", r, rights)
		}
		seen[r] = true
	}
}

func TestSelectRightsRandomProperty(t *testing.T) {
	for _, ceiling := range []int{9, 12} {
		for count := 0; count <= ceiling+1; count++ {
			for seed := int64(1); seed <= 20; seed++ {
				rights, err := newTestSelector(seed).SelectRights(models.ModeDan, 7, ceiling, count, nil, nil)
				if err != nil {
					t.Fatalf("SelectRights() error = %v", err)
				}
				checkRights(t, rights, count, ceiling)
			}
		}
	}
}

func TestSelectRightsCapsCount(t *testing.T) {
	for _, mode := range []models.Mode{models.ModeDan, models.ModeWeak} {
		rights, err := newTestSelector(1).SelectRights(mode, 3, 9, 20, models.ItemStats{}, nil)
		if err != nil {
			t.Fatalf("%s: SelectRights() error = %v", mode, err)
		}
		checkRights(t, rights, 10, 9)
	}
}

func TestSelectRightsWeakProperty(t *testing.T) {
	statsCases := map[string]models.ItemStats{
		"empty": {},
		"all known": func() models.ItemStats {
			s := models.ItemStats{}
			for r := 0; r <= 12; r++ {
				s[models.Fact{Dan: 7, Right: r}.Key()] = models.ItemStat{Attempts: 4, Wrong: r % 5}
			}
			return s
		}(),
		"mixed": {
			"7x3":  {Attempts: 5, Wrong: 4},
			"7x8":  {Attempts: 2, Wrong: 2},
			"7x12": {Attempts: 1, Wrong: 1},
			"6x3":  {Attempts: 9, Wrong: 9},
		},
	}

	for name, stats := range statsCases {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				rights, err := newTestSelector(seed).SelectRights(models.ModeWeak, 7, 12, 10, stats, nil)
				if err != nil {
					t.Fatalf("SelectRights() error = %v", err)
				}
				checkRights(t, rights, 10, 12)
			}
		})
	}
}

func TestPickWeakRightsOrdering(t *testing.T) {
	stats := models.ItemStats{
		"4x2": {Attempts: 4, Wrong: 1}, // 0.25
		"4x5": {Attempts: 2, Wrong: 2}, // 1.0, wrong 2
		"4x7": {Attempts: 4, Wrong: 4}, // 1.0, wrong 4
		"4x9": {Attempts: 2, Wrong: 1}, // 0.5
		"4x1": {Attempts: 1, Wrong: 1}, // unknown
	}

	rights := newTestSelector(7).pickWeakRights(4, 9, 6, stats)

	if !reflect.DeepEqual(rights[:4], []int{7, 5, 9, 2}) {
		t.Errorf("known facts = %v, want [7 5 9 2]", rights[:4])
	}
	checkRights(t, rights, 6, 9)
}

func TestPickWeakRightsKnownFillCount(t *testing.T) {
	stats := models.ItemStats{}
	for r := 0; r <= 9; r++ {
		stats[models.Fact{Dan: 2, Right: r}.Key()] = models.ItemStat{Attempts: 10, Wrong: r}
	}

	rights := newTestSelector(3).pickWeakRights(2, 9, 3, stats)

	if !reflect.DeepEqual(rights, []int{9, 8, 7}) {
		t.Errorf("rights = %v, want weakest three [9 8 7]", rights)
	}
}

func TestPickWeakRightsMixesAtMostTwoUnknown(t *testing.T) {
	stats := models.ItemStats{
		"5x0": {Attempts: 3, Wrong: 1},
	}
	// Everything but 5x0 is unknown; the first three picks are the known
	// fact followed by exactly UnknownMixCount unknowns.
	for seed := int64(1); seed <= 10; seed++ {
		rights := newTestSelector(seed).pickWeakRights(5, 9, 10, stats)
		if rights[0] != 0 {
			t.Errorf("seed %d: first pick = %d, want the known fact 0", seed, rights[0])
		}
		checkRights(t, rights, 10, 9)
	}
}

func TestSelectRightsMistakes(t *testing.T) {
	last := &models.Result{
		Dan: 7,
		WrongItems: []models.WrongItem{
			{Dan: 7, Right: 8, Answer: 56, Picked: 54},
			{Dan: 6, Right: 3, Answer: 18, Picked: 17},
			{Dan: 7, Right: 3, Answer: 21, Picked: 24},
			{Dan: 7, Right: 8, Answer: 56, Picked: 58},
			{Dan: 7, Right: 11, Answer: 77, Picked: 70},
			{Dan: 7, Right: 0, Answer: 0, Picked: 7},
		},
	}

	tests := []struct {
		name    string
		dan     int
		ceiling int
		count   int
		want    []int
		wantErr error
	}{
		{name: "first-seen order without duplicates", dan: 7, ceiling: 12, count: 10, want: []int{8, 3, 11, 0}},
		{name: "capped at count", dan: 7, ceiling: 12, count: 2, want: []int{8, 3}},
		{name: "filtered by ceiling", dan: 7, ceiling: 9, count: 10, want: []int{8, 3, 0}},
		{name: "other dan", dan: 6, ceiling: 9, count: 10, want: []int{3}},
		{name: "no mistakes for dan", dan: 2, ceiling: 9, count: 10, wantErr: ErrNoMistakes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestSelector(1).SelectRights(models.ModeMistakes, tt.dan, tt.ceiling, tt.count, nil, last)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SelectRights() error = %v, want %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectRights() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := newTestSelector(1).SelectRights(models.ModeMistakes, 7, 9, 10, nil, nil); !errors.Is(err, ErrNoMistakes) {
		t.Errorf("nil last result: error = %v, want ErrNoMistakes", err)
	}
}

func TestMakeChoicesNegativeAnswerTerminates(t *testing.T) {
	choices := newTestSelector(1).MakeChoices(-45)
	if len(choices) != 4 {
		t.Fatalf("MakeChoices(-45) = %v, want 4 choices", choices)
	}
	seen := make(map[int]bool)
	for _, c := range choices {
		if seen[c] {
			t.Errorf("MakeChoices(-45) has duplicate %d", c)
		}
		seen[c] = true
	}
}

func TestMakeChoices(t *testing.T) {
	for _, correct := range []int{0, 1, 9, 42, 81, 108} {
		for seed := int64(1); seed <= 20; seed++ {
			choices := newTestSelector(seed).MakeChoices(correct)
			if len(choices) != 4 {
				t.Fatalf("MakeChoices(%d) = %v, want 4 choices", correct, choices)
			}
			seen := make(map[int]bool)
			hasCorrect := false
			for _, c := range choices {
				if c < 0 {
					t.Errorf("MakeChoices(%d) has negative choice %d", correct, c)
				}
				if c < correct-9 || c > correct+9 {
					t.Errorf("MakeChoices(%d) choice %d too far from answer", correct, c)
				}
				if seen[c] {
					t.Errorf("MakeChoices(%d) has duplicate %d", correct, c)
				}
				seen[c] = true
				hasCorrect = hasCorrect || c == correct
			}
			if !hasCorrect {
				t.Errorf("MakeChoices(%d) = %v, missing the answer", correct, choices)
			}
		}
	}
}

func TestSelectorIsReproducible(t *testing.T) {
	a, _ := newTestSelector(42).SelectRights(models.ModeDan, 3, 12, 10, nil, nil)
	b, _ := newTestSelector(42).SelectRights(models.ModeDan, 3, 12, 10, nil, nil)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestBuildQuestions(t *testing.T) {
	questions := newTestSelector(1).BuildQuestions(6, []int{3, 0, 9})
	if len(questions) != 3 {
		t.Fatalf("len = %d, want 3", len(questions))
	}
	for i, right := range []int{3, 0, 9} {
		q := questions[i]
		if q.Dan != 6 || q.Right != right || q.Answer != 6*right {
			t.Errorf("question %d = %+v", i, q)
		}
		if len(q.Choices) != 4 {
			t.Errorf("question %d has %d choices", i, len(q.Choices))
		}
	}
}
