package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reClock    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	reCellDate = regexp.MustCompile(`(\d{1,2})/(\d{1,2})(?:/(\d{4}))?`)
	reInt      = regexp.MustCompile(`\d+`)
)

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	m := reClock.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("not a clock time: %q", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return 0, fmt.Errorf("clock time out of range: %q", s)
	}
	return h*60 + min, nil
}

// clockString renders minutes since midnight as "HH:MM", normalizing
// values outside one day.
func clockString(minute int) string {
	minute = ((minute % fullDay) + fullDay) % fullDay
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// parseTimestampCell splits a day's timestamp cell into recorded clock
// times in minutes since midnight. A cell holds zero, one, or two
// hyphen-joined "HH:MM" values. ok=false means the cell had content
// that could not be read as timestamps.
func parseTimestampCell(cell string) (times []int, ok bool) {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" {
		return nil, true
	}
	parts := strings.Split(strings.ReplaceAll(s, "–", "-"), "-")
	if len(parts) > 2 {
		return nil, false
	}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		minute, err := parseClock(p)
		if err != nil {
			return nil, false
		}
		times = append(times, minute)
	}
	return times, true
}

// parseCellDate reads a date-header cell such as "Mon 14/08", "14/08"
// or "14/08/2023". Cells without an explicit year are resolved against
// the report's date range start (when known) by picking the candidate
// year closest to it, which keeps December/January weeks intact.
func parseCellDate(cell string, baseYear int, rangeStart time.Time) (time.Time, error) {
	m := reCellDate.FindStringSubmatch(cell)
	if m == nil {
		return time.Time{}, fmt.Errorf("no date in header cell %q", cell)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date out of range in header cell %q", cell)
	}
	if m[3] != "" {
		year, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}

	if rangeStart.IsZero() {
		return time.Date(baseYear, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}
	best := time.Time{}
	for _, year := range []int{baseYear - 1, baseYear, baseYear + 1} {
		cand := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if best.IsZero() || absDuration(cand.Sub(rangeStart)) < absDuration(best.Sub(rangeStart)) {
			best = cand
		}
	}
	return best, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// parseFullDate reads a "DD/MM/YYYY" value as found in report metadata.
func parseFullDate(s string) (time.Time, bool) {
	m := reCellDate.FindStringSubmatch(s)
	if m == nil || m[3] == "" {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// parseCount extracts the first integer from a visits-total cell such
// as "4" or "4 visits".
func parseCount(cell string) (int, bool) {
	m := reInt.FindString(cell)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

func emptyCell(cell string) bool {
	s := strings.TrimSpace(cell)
	return s == "" || s == "-"
}
