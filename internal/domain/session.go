package domain

import "time"

// UnknownTime marks a session boundary that could not be recovered,
// typically because the paired duration was unreadable.
const UnknownTime = "unknown"

// Session is one continuous outdoor excursion, bounded by an exit and
// an entry event. Immutable once emitted by the session builder.
type Session struct {
	SourceFile string
	ReportDate string
	DateRange  string
	Year       int
	PetName    string
	PetAge     string
	PetWeight  string

	// Date is the calendar day the session is recorded under. A
	// cross-midnight session is dated on its exit day.
	Date          time.Time
	Number        int
	ExitTime      string // "HH:MM" or UnknownTime
	EntryTime     string // "HH:MM" or UnknownTime
	DurationMin   float64
	CrossMidnight bool

	// Daily totals as printed in the report (-1 when absent) and as
	// recomputed from the emitted sessions of the same day.
	ReportedVisits   int
	ReportedTotalMin float64
	CalcVisits       int
	CalcTotalMin     float64
}

// DateStr renders the session date in the report's short day/month form.
func (s *Session) DateStr() string {
	return s.Date.Format("02/01")
}

// DateFull renders the session date as YYYY-MM-DD.
func (s *Session) DateFull() string {
	return s.Date.Format("2006-01-02")
}
