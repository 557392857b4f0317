package validation

import (
	"testing"
	"time"

	"gugudan/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "parent@example.com", wantErr: false},
		{name: "valid email with subdomain", email: "mom@mail.example.co.kr", wantErr: false},
		{name: "valid email with plus", email: "dad+gugudan@example.com", wantErr: false},
		{name: "missing @", email: "parentexample.com", wantErr: true},
		{name: "missing domain", email: "parent@", wantErr: true},
		{name: "empty string", email: "", wantErr: true},
		{name: "spaces in email", email: "par ent@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		wantErr bool
	}{
		{name: "four digits", pin: "0000", wantErr: false},
		{name: "eight digits", pin: "12345678", wantErr: false},
		{name: "too short", pin: "123", wantErr: true},
		{name: "too long", pin: "123456789", wantErr: true},
		{name: "letters", pin: "12a4", wantErr: true},
		{name: "empty", pin: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePIN(tt.pin)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePIN(%q) error = %v, wantErr %v", tt.pin, err, tt.wantErr)
			}
		})
	}
}

func TestSettings(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    models.Settings
		wantErr bool
	}{
		{
			name: "full record",
			raw:  `{"soundOn":true,"quizCount":20,"maxRight":12,"learnView":"table"}`,
			want: models.Settings{SoundOn: true, QuizCount: 20, MaxRight: 12, LearnView: models.LearnViewTable},
		},
		{
			name: "learn view defaults to cards",
			raw:  `{"soundOn":false,"quizCount":10,"maxRight":9}`,
			want: models.Settings{SoundOn: false, QuizCount: 10, MaxRight: 9, LearnView: models.LearnViewCards},
		},
		{name: "missing soundOn", raw: `{"quizCount":10,"maxRight":9}`, wantErr: true},
		{name: "soundOn wrong type", raw: `{"soundOn":"yes","quizCount":10,"maxRight":9}`, wantErr: true},
		{name: "quiz count out of set", raw: `{"soundOn":true,"quizCount":15,"maxRight":9}`, wantErr: true},
		{name: "max right out of set", raw: `{"soundOn":true,"quizCount":10,"maxRight":10}`, wantErr: true},
		{name: "unknown learn view", raw: `{"soundOn":true,"quizCount":10,"maxRight":9,"learnView":"grid"}`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "corrupt", raw: `{"soundOn":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Settings([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Settings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Settings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

const validResult = `{"id":"r1","at":"2026-03-01T09:30:00Z","dan":7,"total":10,"correct":8,"msTotal":42000,"perQuestionMsAvg":4200,"wrongItems":[{"dan":7,"right":8,"answer":56,"picked":54}]}`

func TestResult(t *testing.T) {
	r, err := Result([]byte(validResult))
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if r.ID != "r1" || r.Dan != 7 || r.Correct != 8 || r.MsTotal != 42000 {
		t.Errorf("Result() = %+v", r)
	}
	if !r.At.Equal(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("At = %v", r.At)
	}
	if len(r.WrongItems) != 1 || r.WrongItems[0].Picked != 54 {
		t.Errorf("WrongItems = %+v", r.WrongItems)
	}

	bad := []struct {
		name string
		raw  string
	}{
		{name: "missing id", raw: `{"at":"2026-03-01T09:30:00Z","dan":7,"total":10,"correct":8,"msTotal":1,"perQuestionMsAvg":1,"wrongItems":[]}`},
		{name: "bad timestamp", raw: `{"id":"r","at":"yesterday","dan":7,"total":10,"correct":8,"msTotal":1,"perQuestionMsAvg":1,"wrongItems":[]}`},
		{name: "wrong items not array", raw: `{"id":"r","at":"2026-03-01T09:30:00Z","dan":7,"total":10,"correct":8,"msTotal":1,"perQuestionMsAvg":1,"wrongItems":{}}`},
		{name: "missing wrong items", raw: `{"id":"r","at":"2026-03-01T09:30:00Z","dan":7,"total":10,"correct":8,"msTotal":1,"perQuestionMsAvg":1}`},
		{name: "incomplete wrong item", raw: `{"id":"r","at":"2026-03-01T09:30:00Z","dan":7,"total":10,"correct":8,"msTotal":1,"perQuestionMsAvg":1,"wrongItems":[{"dan":7}]}`},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Result([]byte(tt.raw)); err == nil {
				t.Error("Result() expected error")
			}
		})
	}
}

func TestResults(t *testing.T) {
	got, err := Results([]byte("[" + validResult + "," + validResult + "]"))
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}

	if _, err := Results([]byte("[" + validResult + `,{"id":"broken"}]`)); err == nil {
		t.Error("one bad entry should reject the list")
	}
	if _, err := Results([]byte(`{}`)); err == nil {
		t.Error("object should not validate as a list")
	}
	if _, err := Results([]byte(`null`)); err == nil {
		t.Error("null should not validate as a list")
	}
}

func TestItemStats(t *testing.T) {
	got, err := ItemStats([]byte(`{"7x8":{"attempts":3,"wrong":2},"2x2":{"attempts":1,"wrong":0}}`))
	if err != nil {
		t.Fatalf("ItemStats() error = %v", err)
	}
	if got["7x8"] != (models.ItemStat{Attempts: 3, Wrong: 2}) {
		t.Errorf("7x8 = %+v", got["7x8"])
	}

	for _, raw := range []string{
		`{"7x8":{"attempts":3}}`,
		`{"7x8":{"attempts":1,"wrong":2}}`,
		`{"7x8":{"attempts":"3","wrong":0}}`,
		`[]`,
	} {
		if _, err := ItemStats([]byte(raw)); err == nil {
			t.Errorf("ItemStats(%s) expected error", raw)
		}
	}
}

func TestRewardState(t *testing.T) {
	got, err := RewardState([]byte(`{"unlocked":{"first-quiz":"2026-03-01T09:30:00Z"}}`))
	if err != nil {
		t.Fatalf("RewardState() error = %v", err)
	}
	if !got.IsUnlocked(models.BadgeFirstQuiz) {
		t.Error("first-quiz should be unlocked")
	}

	empty, err := RewardState([]byte(`{}`))
	if err != nil {
		t.Fatalf("RewardState({}) error = %v", err)
	}
	if len(empty.Unlocked) != 0 {
		t.Errorf("empty state has %d badges", len(empty.Unlocked))
	}

	for _, raw := range []string{`{"unlocked":{"first-quiz":"soon"}}`, `{"unlocked":[]}`, `null`, `[]`} {
		if _, err := RewardState([]byte(raw)); err == nil {
			t.Errorf("RewardState(%s) expected error", raw)
		}
	}
}

func TestQuizSession(t *testing.T) {
	valid := `{"id":"s1","dan":3,"mode":"weak","total":3,"index":1,"correct":1,"rights":[4,1,9],"wrongItems":[],"startedAt":1772357400000}`
	s, err := QuizSession([]byte(valid))
	if err != nil {
		t.Fatalf("QuizSession() error = %v", err)
	}
	if s.Mode != models.ModeWeak || s.Index != 1 || len(s.Rights) != 3 || s.Picked != nil {
		t.Errorf("QuizSession() = %+v", s)
	}

	picked, err := QuizSession([]byte(`{"id":"s1","dan":3,"mode":"dan","total":1,"index":0,"correct":1,"rights":[4],"wrongItems":[],"startedAt":1,"picked":12}`))
	if err != nil {
		t.Fatalf("QuizSession(picked) error = %v", err)
	}
	if picked.Picked == nil || *picked.Picked != 12 {
		t.Errorf("Picked = %v, want 12", picked.Picked)
	}

	bad := []struct {
		name string
		raw  string
	}{
		{name: "unknown mode", raw: `{"id":"s","dan":3,"mode":"hard","total":1,"index":0,"correct":0,"rights":[1],"wrongItems":[],"startedAt":1}`},
		{name: "rights length", raw: `{"id":"s","dan":3,"mode":"dan","total":2,"index":0,"correct":0,"rights":[1],"wrongItems":[],"startedAt":1}`},
		{name: "index beyond total", raw: `{"id":"s","dan":3,"mode":"dan","total":1,"index":2,"correct":0,"rights":[1],"wrongItems":[],"startedAt":1}`},
		{name: "too many correct", raw: `{"id":"s","dan":3,"mode":"dan","total":3,"index":0,"correct":2,"rights":[1,2,3],"wrongItems":[],"startedAt":1}`},
		{name: "dan out of range", raw: `{"id":"s","dan":10,"mode":"dan","total":1,"index":0,"correct":0,"rights":[1],"wrongItems":[],"startedAt":1}`},
		{name: "missing startedAt", raw: `{"id":"s","dan":3,"mode":"dan","total":1,"index":0,"correct":0,"rights":[1],"wrongItems":[]}`},
		{name: "negative right", raw: `{"id":"s","dan":9,"mode":"dan","total":2,"index":0,"correct":0,"rights":[-5,3],"wrongItems":[],"startedAt":1}`},
		{name: "right above ceiling", raw: `{"id":"s","dan":9,"mode":"dan","total":2,"index":0,"correct":0,"rights":[13,3],"wrongItems":[],"startedAt":1}`},
		{name: "repeated right", raw: `{"id":"s","dan":9,"mode":"dan","total":2,"index":0,"correct":0,"rights":[3,3],"wrongItems":[],"startedAt":1}`},
		{name: "negative picked", raw: `{"id":"s","dan":9,"mode":"dan","total":1,"index":0,"correct":0,"rights":[3],"wrongItems":[],"startedAt":1,"picked":-1}`},
		{name: "rights not numbers", raw: `{"id":"s","dan":3,"mode":"dan","total":1,"index":0,"correct":0,"rights":["1"],"wrongItems":[],"startedAt":1}`},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := QuizSession([]byte(tt.raw)); err == nil {
				t.Error("QuizSession() expected error")
			}
		})
	}
}

func TestDailyStats(t *testing.T) {
	got, err := DailyStats([]byte(`{"2026-03-01":{"solved":12,"correct":9}}`))
	if err != nil {
		t.Fatalf("DailyStats() error = %v", err)
	}
	if got["2026-03-01"] != (models.DailyStat{Solved: 12, Correct: 9}) {
		t.Errorf("DailyStats() = %+v", got)
	}
	if _, err := DailyStats([]byte(`{"2026-03-01":{"solved":12}}`)); err == nil {
		t.Error("missing correct should be rejected")
	}
}
