package service

import (
	"errors"

	"gugudan/internal/models"
)

var (
	ErrInvalidDan = errors.New("dan must be between 0 and 9")
)

// LearnRow is one line of a multiplication table
type LearnRow struct {
	Right  int `json:"right"`
	Answer int `json:"answer"`
}

// LearnTable is the learning view for one dan
type LearnTable struct {
	Dan  int              `json:"dan"`
	Rows []LearnRow       `json:"rows"`
	Tip  string           `json:"tip"`
	View models.LearnView `json:"view"`
}

// DanTip returns the hint shown above a table
func DanTip(dan int) string {
	switch dan {
	case 0:
		return "0단은 언제나 0이에요!"
	case 1:
		return "1단은 그대로예요!"
	case 2:
		return "2단은 짝수만 나와요."
	case 5:
		return "5단은 0이나 5로 끝나요."
	case 9:
		return "9단은 앞자리는 커지고, 뒷자리는 작아져요."
	}
	return "천천히 읽어보고 따라 말해봐요."
}

// BuildLearnTable lists dan × 0 through dan × settings.MaxRight
func BuildLearnTable(dan int, settings models.Settings) (LearnTable, error) {
	if dan < 0 || dan > models.MaxDan {
		return LearnTable{}, ErrInvalidDan
	}
	rows := make([]LearnRow, 0, settings.MaxRight+1)
	for right := 0; right <= settings.MaxRight; right++ {
		rows = append(rows, LearnRow{Right: right, Answer: dan * right})
	}
	return LearnTable{Dan: dan, Rows: rows, Tip: DanTip(dan), View: settings.LearnView}, nil
}
