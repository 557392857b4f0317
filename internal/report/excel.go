// Package report renders quiz history for parents.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"gugudan/internal/models"
)

// Sheet names
const (
	ResultsSheet = "Results"
	WeakSheet    = "Weak facts"
)

var (
	resultsHeader = []interface{}{"Date", "Dan", "Correct", "Total", "Accuracy (%)", "Avg seconds"}
	weakHeader    = []interface{}{"Fact", "Attempts", "Wrong", "Wrong rate (%)"}
)

// WriteWorkbook writes an xlsx workbook with the result history and the
// per-fact counters, weakest first. Dates are rendered in loc.
func WriteWorkbook(w io.Writer, results []models.Result, stats models.ItemStats, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", ResultsSheet)
	if _, err := f.NewSheet(WeakSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeRows(f, ResultsSheet, resultsHeader, resultRows(results, loc)); err != nil {
		return err
	}
	if err := writeRows(f, WeakSheet, weakHeader, weakRows(stats)); err != nil {
		return err
	}
	f.SetColWidth(ResultsSheet, "A", "A", 18)
	f.SetColWidth(WeakSheet, "A", "A", 10)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	all := append([][]interface{}{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func resultRows(results []models.Result, loc *time.Location) [][]interface{} {
	rows := make([][]interface{}, 0, len(results))
	for _, r := range results {
		rows = append(rows, []interface{}{
			r.At.In(loc).Format("2006-01-02 15:04"),
			r.Dan,
			r.Correct,
			r.Total,
			r.Accuracy(),
			float64(r.PerQuestionMsAvg) / 1000,
		})
	}
	return rows
}

type weakRow struct {
	fact models.Fact
	stat models.ItemStat
}

// weakRows lists attempted facts by wrong rate, then wrong count
func weakRows(stats models.ItemStats) [][]interface{} {
	var list []weakRow
	for key, stat := range stats {
		if stat.Attempts == 0 {
			continue
		}
		fact, err := models.ParseItemKey(key)
		if err != nil {
			continue
		}
		list = append(list, weakRow{fact: fact, stat: stat})
	}

	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.stat.WrongRate() != b.stat.WrongRate() {
			return a.stat.WrongRate() > b.stat.WrongRate()
		}
		if a.stat.Wrong != b.stat.Wrong {
			return a.stat.Wrong > b.stat.Wrong
		}
		if a.fact.Dan != b.fact.Dan {
			return a.fact.Dan < b.fact.Dan
		}
		return a.fact.Right < b.fact.Right
	})

	rows := make([][]interface{}, 0, len(list))
	for _, row := range list {
		rows = append(rows, []interface{}{
			row.fact.String(),
			row.stat.Attempts,
			row.stat.Wrong,
			int(row.stat.WrongRate()*100 + 0.5),
		})
	}
	return rows
}
