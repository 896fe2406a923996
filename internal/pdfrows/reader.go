package pdfrows

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/mfokkema/flaplog/internal/domain"
)

// Text positioned closer than this on the same line belongs to the same
// table cell; a wider gap starts the next column.
const cellGap = 12.0

// Lines whose Y coordinates differ by less than this render as one
// visual row.
const lineTolerance = 2.0

type positioned struct {
	x, w float64
	s    string
}

type line struct {
	y     float64
	texts []positioned
}

// ReadFile extracts the tagged table rows from a weekly report PDF.
// Rows that match none of the known table row shapes (footers, page
// numbers, decorative text) are dropped.
func ReadFile(path string) ([]domain.RawRow, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rows []domain.RawRow
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, cells := range pageCells(p.Content().Text) {
			if row, ok := Tag(i, cells); ok {
				rows = append(rows, row)
			}
		}
	}
	return rows, nil
}

// pageCells groups a page's positioned text into visual lines, then
// splits each line into cells on horizontal gaps.
func pageCells(texts []pdf.Text) [][]string {
	lines := groupLines(texts)

	// PDF Y grows upward; the visually first line has the largest Y.
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	out := make([][]string, 0, len(lines))
	for _, ln := range lines {
		sort.SliceStable(ln.texts, func(i, j int) bool { return ln.texts[i].x < ln.texts[j].x })
		out = append(out, splitCells(ln.texts))
	}
	return out
}

func groupLines(texts []pdf.Text) []line {
	var lines []line
	for _, t := range texts {
		s := strings.TrimSpace(t.S)
		if s == "" {
			continue
		}
		placed := false
		for i := range lines {
			d := lines[i].y - t.Y
			if d < 0 {
				d = -d
			}
			if d < lineTolerance {
				lines[i].texts = append(lines[i].texts, positioned{x: t.X, w: t.W, s: s})
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, line{y: t.Y, texts: []positioned{{x: t.X, w: t.W, s: s}}})
		}
	}
	return lines
}

func splitCells(texts []positioned) []string {
	var (
		cells []string
		parts []string
		right float64
	)
	flush := func() {
		if len(parts) > 0 {
			cells = append(cells, strings.Join(parts, " "))
			parts = nil
		}
	}
	for _, t := range texts {
		if len(parts) > 0 && t.x-right > cellGap {
			flush()
		}
		parts = append(parts, t.s)
		right = t.x + t.w
	}
	flush()
	return cells
}
