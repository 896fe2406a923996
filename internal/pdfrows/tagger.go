package pdfrows

import (
	"regexp"
	"strings"

	"github.com/mfokkema/flaplog/internal/domain"
)

var (
	reHeaderDate = regexp.MustCompile(`^(?:[A-Za-z]{2,3}\.?\s+)?\d{1,2}/\d{1,2}(?:/\d{4})?$`)
	reClockCell  = regexp.MustCompile(`^\d{1,2}:\d{2}(?:\s*[-–]\s*\d{1,2}:\d{2})?$`)
	reDurCell    = regexp.MustCompile(`(?i)^(?:\d{1,3}:\d{2}\s*(?:h|mins)|\d+\s*s)$`)
	reMetaKey    = regexp.MustCompile(`(?i)^(?:pet(?:\s+name)?|name|age|weight|report\s+date|date\s+range|range|period)\s*:`)
	reCountCell  = regexp.MustCompile(`^\d+$`)
)

// Tag decides which table row a line of cells is, based on the shape of
// its content. The second return is false for lines that belong to no
// known row, which the caller discards.
func Tag(page int, cells []string) (domain.RawRow, bool) {
	if len(cells) == 0 {
		return domain.RawRow{}, false
	}

	if kind, rest, ok := labeledTotals(cells); ok {
		return domain.RawRow{Kind: kind, Page: page, Cells: rest}, true
	}

	switch {
	case countMatching(cells, reMetaKey.MatchString) > 0:
		return domain.RawRow{Kind: domain.RowMetadata, Page: page, Cells: cells}, true
	case allDataCells(cells, reHeaderDate.MatchString) && countMatching(cells, reHeaderDate.MatchString) >= 2:
		return domain.RawRow{Kind: domain.RowDateHeader, Page: page, Cells: cells}, true
	case allDataCells(cells, reClockCell.MatchString) && countMatching(cells, reClockCell.MatchString) >= 1:
		return domain.RawRow{Kind: domain.RowTimestamps, Page: page, Cells: cells}, true
	case allDataCells(cells, reDurCell.MatchString) && countMatching(cells, reDurCell.MatchString) >= 1:
		return domain.RawRow{Kind: domain.RowDurations, Page: page, Cells: cells}, true
	}
	return domain.RawRow{}, false
}

// labeledTotals recognizes the two summary rows by their leading label
// cell and strips it, so the remaining cells line up with the date
// header columns.
func labeledTotals(cells []string) (domain.RowKind, []string, bool) {
	if len(cells) < 2 {
		return "", nil, false
	}
	label := strings.ToLower(cells[0])
	rest := cells[1:]
	switch {
	case strings.Contains(label, "visit"):
		if allDataCells(rest, reCountCell.MatchString) {
			return domain.RowVisitsTotal, rest, true
		}
	case strings.Contains(label, "time outside"), strings.Contains(label, "total"):
		if allDataCells(rest, reDurCell.MatchString) {
			return domain.RowTimeTotal, rest, true
		}
	}
	return "", nil, false
}

func placeholder(cell string) bool {
	s := strings.TrimSpace(cell)
	return s == "" || s == "-" || s == "–"
}

// allDataCells reports whether every non-placeholder cell satisfies the
// shape check. A row of nothing but placeholders satisfies any shape,
// so callers also require a minimum match count.
func allDataCells(cells []string, match func(string) bool) bool {
	for _, c := range cells {
		if placeholder(c) {
			continue
		}
		if !match(strings.TrimSpace(c)) {
			return false
		}
	}
	return true
}

func countMatching(cells []string, match func(string) bool) int {
	n := 0
	for _, c := range cells {
		if !placeholder(c) && match(strings.TrimSpace(c)) {
			n++
		}
	}
	return n
}
