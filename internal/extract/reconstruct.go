package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/mfokkema/flaplog/internal/domain"
)

// tableAccum collects cells for one week table while its rows may still
// be split across page boundaries. Each row kind keeps its own cursor:
// fragments are appended by cumulative column position until the column
// count declared by the date header is satisfied, so page identity
// never matters.
type tableAccum struct {
	meta domain.ReportMeta
	days []domain.DayColumn

	tsPos, durPos, visPos, totPos int
}

// Reconstruct assembles one document's tagged rows into logical week
// tables. A document may contain several weeks; each date-header row
// opens a new table. Columns never reached by a fragment stay empty,
// which is the expected shape of a partial trailing week. A document in
// which no date header can be located or parsed is excluded entirely
// and reported as unrecognized table structure.
func Reconstruct(file string, rows []domain.RawRow) ([]domain.WeekTable, []domain.Issue) {
	var (
		tables     []*tableAccum
		issues     []domain.Issue
		cur        *tableAccum
		headerErr  error
		meta       = domain.ReportMeta{SourceFile: file}
		rangeStart time.Time
	)

	for _, row := range rows {
		switch row.Kind {
		case domain.RowMetadata:
			rangeStart = applyMetadata(&meta, row.Cells, rangeStart)

		case domain.RowDateHeader:
			t, err := openTable(meta, rangeStart, row.Cells)
			if err != nil {
				// Rows that follow belong to a week we cannot place.
				headerErr = err
				cur = nil
				continue
			}
			cur = t
			tables = append(tables, t)

		case domain.RowTimestamps, domain.RowDurations, domain.RowVisitsTotal, domain.RowTimeTotal:
			if cur == nil {
				continue
			}
			issues = append(issues, cur.fill(file, row.Kind, row.Cells)...)
		}
	}

	if len(tables) == 0 {
		detail := "no date header found"
		if headerErr != nil {
			detail = headerErr.Error()
		}
		issues = append(issues, domain.Issue{
			Kind:   domain.IssueUnrecognizedTable,
			File:   file,
			Detail: detail,
		})
		return nil, issues
	}
	if headerErr != nil {
		issues = append(issues, domain.Issue{
			Kind:   domain.IssueUnrecognizedTable,
			File:   file,
			Detail: fmt.Sprintf("week skipped: %v", headerErr),
		})
	}

	out := make([]domain.WeekTable, 0, len(tables))
	for _, t := range tables {
		out = append(out, domain.WeekTable{Meta: t.meta, Days: t.days})
	}
	return out, issues
}

func openTable(meta domain.ReportMeta, rangeStart time.Time, cells []string) (*tableAccum, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("empty date header")
	}
	baseYear := meta.Year
	if baseYear == 0 {
		baseYear = time.Now().UTC().Year()
	}
	days := make([]domain.DayColumn, 0, len(cells))
	for _, c := range cells {
		d, err := parseCellDate(c, baseYear, rangeStart)
		if err != nil {
			return nil, err
		}
		days = append(days, domain.DayColumn{
			Date:             d,
			ReportedVisits:   -1,
			ReportedTotalMin: -1,
		})
	}
	return &tableAccum{meta: meta, days: days}, nil
}

// fill appends a row fragment's cells at the current cursor for its row
// kind. Cells beyond the declared column count are page artifacts and
// are dropped.
func (t *tableAccum) fill(file string, kind domain.RowKind, cells []string) []domain.Issue {
	var issues []domain.Issue
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		switch kind {
		case domain.RowTimestamps:
			if t.tsPos >= len(t.days) {
				return issues
			}
			t.days[t.tsPos].TimestampCell = cell
			t.tsPos++

		case domain.RowDurations:
			if t.durPos >= len(t.days) {
				return issues
			}
			t.days[t.durPos].DurationCell = cell
			t.durPos++

		case domain.RowVisitsTotal:
			if t.visPos >= len(t.days) {
				return issues
			}
			day := &t.days[t.visPos]
			t.visPos++
			if emptyCell(cell) {
				continue
			}
			n, ok := parseCount(cell)
			if !ok {
				issues = append(issues, domain.Issue{
					Kind:   domain.IssueUnparseableCell,
					File:   file,
					Date:   day.Date,
					Detail: fmt.Sprintf("unreadable visit count %q", cell),
				})
				continue
			}
			day.ReportedVisits = n

		case domain.RowTimeTotal:
			if t.totPos >= len(t.days) {
				return issues
			}
			day := &t.days[t.totPos]
			t.totPos++
			if emptyCell(cell) {
				continue
			}
			min, ok := ParseDuration(cell)
			if !ok {
				issues = append(issues, domain.Issue{
					Kind:   domain.IssueUnparseableCell,
					File:   file,
					Date:   day.Date,
					Detail: fmt.Sprintf("unreadable daily total %q", cell),
				})
				continue
			}
			day.ReportedTotalMin = min
		}
	}
	return issues
}

// applyMetadata folds "key: value" metadata cells into the report meta.
// The date range start, when present, anchors year resolution for
// yearless date-header cells.
func applyMetadata(meta *domain.ReportMeta, cells []string, rangeStart time.Time) time.Time {
	for _, cell := range cells {
		key, value, found := strings.Cut(cell, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch key {
		case "pet", "name", "pet name":
			meta.PetName = value
		case "age":
			meta.PetAge = value
		case "weight":
			meta.PetWeight = value
		case "report date", "date":
			meta.ReportDate = value
			if d, ok := parseFullDate(value); ok && meta.Year == 0 {
				meta.Year = d.Year()
			}
		case "date range", "range", "period":
			meta.DateRange = value
			if d, ok := parseFullDate(value); ok {
				rangeStart = d
				meta.Year = d.Year()
			}
		}
	}
	return rangeStart
}
