package domain

import "time"

// ReportMeta carries per-report header fields that apply to every
// session extracted from that report.
type ReportMeta struct {
	SourceFile string
	ReportDate string
	DateRange  string
	Year       int
	PetName    string
	PetAge     string
	PetWeight  string
}

// DayColumn is one calendar date's column of a weekly table.
// ReportedVisits and ReportedTotalMin are -1 when the report did not
// state them (or the cell could not be read).
type DayColumn struct {
	Date             time.Time
	TimestampCell    string
	DurationCell     string
	ReportedVisits   int
	ReportedTotalMin float64
}

// WeekTable is the reconstructed logical table for one reporting week,
// up to 7 day columns wide. A day column with no timestamp data is a
// valid "no activity" day, not an error.
type WeekTable struct {
	Meta ReportMeta
	Days []DayColumn
}

// FirstDate returns the earliest day column date, or the zero time for
// an empty table. Columns normally arrive in chronological order, but
// sorting by the minimum keeps batch ordering correct either way.
func (w *WeekTable) FirstDate() time.Time {
	earliest := time.Time{}
	for _, d := range w.Days {
		if earliest.IsZero() || d.Date.Before(earliest) {
			earliest = d.Date
		}
	}
	return earliest
}
