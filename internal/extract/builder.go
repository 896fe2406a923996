package extract

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mfokkema/flaplog/internal/domain"
)

// carriedExit is a not-yet-emitted EXIT-classified lone timestamp from
// the most recently processed day, held while a cross-midnight pairing
// with the next day's first lone timestamp is still possible.
type carriedExit struct {
	Meta     domain.ReportMeta
	Date     time.Time
	Minute   int
	Duration float64
	DurKnown bool
	Trace    ClassifyResult
}

// BuilderState threads cross-midnight pairing through the day-by-day
// fold. The zero value means no pending carry.
type BuilderState struct {
	Carry *carriedExit
}

// DayInput is one day column plus the report identity it came from.
type DayInput struct {
	Meta domain.ReportMeta
	Day  domain.DayColumn
}

// StepDay processes one day column, returning the updated state plus
// any sessions and issues the day produced. It is a pure fold step so
// cross-midnight behavior can be exercised from arbitrary states.
func StepDay(state BuilderState, in DayInput) (BuilderState, []domain.Session, []domain.Issue) {
	var (
		sessions []domain.Session
		issues   []domain.Issue
	)

	// Pairing across an undocumented gap is unsafe: resolve the carry
	// on its own and record the gap.
	if c := state.Carry; c != nil && !in.Day.Date.Equal(c.Date.AddDate(0, 0, 1)) {
		issues = append(issues, domain.Issue{
			Kind:   domain.IssueGapDetected,
			File:   c.Meta.SourceFile,
			Date:   c.Date,
			Detail: fmt.Sprintf("no data between %s and %s; overnight pairing skipped", c.Date.Format("2006-01-02"), in.Day.Date.Format("2006-01-02")),
		})
		sessions = append(sessions, resolveCarry(c))
		state.Carry = nil
	}

	times, ok := parseTimestampCell(in.Day.TimestampCell)
	if !ok {
		issues = append(issues, domain.Issue{
			Kind:   domain.IssueUnparseableCell,
			File:   in.Meta.SourceFile,
			Date:   in.Day.Date,
			Detail: fmt.Sprintf("unreadable timestamp cell %q", in.Day.TimestampCell),
		})
	}
	duration, durKnown := ParseDuration(in.Day.DurationCell)
	if !durKnown {
		issues = append(issues, domain.Issue{
			Kind:   domain.IssueUnparseableCell,
			File:   in.Meta.SourceFile,
			Date:   in.Day.Date,
			Detail: fmt.Sprintf("unreadable duration cell %q", in.Day.DurationCell),
		})
	}

	switch len(times) {
	case 0:
		// A documented day with no activity. Any pending carry has no
		// partner to pair with.
		if c := state.Carry; c != nil {
			sessions = append(sessions, resolveCarry(c))
			state.Carry = nil
		}

	case 2:
		if c := state.Carry; c != nil {
			sessions = append(sessions, resolveCarry(c))
			state.Carry = nil
		}
		sessions = append(sessions, twoTimestampSession(in, times[0], times[1], duration))

	case 1:
		minute := times[0]
		res := Classify(ClassifyInput{Minute: minute, Duration: duration, DurationKnown: durKnown})

		if c := state.Carry; c != nil {
			if merged, ok := tryMerge(c, in.Day.Date, minute, duration, durKnown); ok {
				sessions = append(sessions, merged)
				state.Carry = nil
				return state, sessions, issues
			}
			sessions = append(sessions, resolveCarry(c))
			state.Carry = nil
		}

		if res.Class == ClassExit {
			// Defer emission: the matching entry may open the next day.
			state.Carry = &carriedExit{
				Meta:     in.Meta,
				Date:     in.Day.Date,
				Minute:   minute,
				Duration: duration,
				DurKnown: durKnown,
				Trace:    res,
			}
		} else {
			sessions = append(sessions, entrySession(in, minute, duration, durKnown))
		}
	}

	return state, sessions, issues
}

// tryMerge tests whether a carried EXIT and the next day's leading lone
// timestamp describe one excursion spanning midnight: the wall-clock
// interval from the exit to the entry must match the two recorded
// durations combined, within the shared tolerance.
func tryMerge(c *carriedExit, date time.Time, minute int, duration float64, durKnown bool) (domain.Session, bool) {
	if !c.DurKnown || !durKnown {
		return domain.Session{}, false
	}
	span := float64(fullDay-c.Minute) + float64(minute)
	sum := c.Duration + duration
	if math.Abs(span-sum) > MatchTolerance {
		return domain.Session{}, false
	}
	s := newSession(c.Meta, c.Date)
	s.ExitTime = clockString(c.Minute)
	s.EntryTime = clockString(minute)
	s.DurationMin = sum
	s.CrossMidnight = true
	return s, true
}

// resolveCarry emits a carried EXIT on its own, inferring the entry
// from the recorded duration where possible.
func resolveCarry(c *carriedExit) domain.Session {
	s := newSession(c.Meta, c.Date)
	s.ExitTime = clockString(c.Minute)
	s.DurationMin = c.Duration
	if !c.DurKnown {
		s.EntryTime = domain.UnknownTime
		return s
	}
	entry := c.Minute + int(math.Round(c.Duration))
	s.EntryTime = clockString(entry)
	s.CrossMidnight = entry >= fullDay
	return s
}

func twoTimestampSession(in DayInput, exit, entry int, duration float64) domain.Session {
	s := newSession(in.Meta, in.Day.Date)
	s.ExitTime = clockString(exit)
	s.EntryTime = clockString(entry)
	s.DurationMin = duration
	s.CrossMidnight = entry < exit
	return s
}

// entrySession emits an ENTRY-classified lone timestamp, inferring the
// exit from the recorded duration. An exit before midnight keeps the
// session on the entry's calendar day, flagged as spanning midnight.
func entrySession(in DayInput, minute int, duration float64, durKnown bool) domain.Session {
	s := newSession(in.Meta, in.Day.Date)
	s.EntryTime = clockString(minute)
	s.DurationMin = duration
	if !durKnown {
		s.ExitTime = domain.UnknownTime
		return s
	}
	exit := minute - int(math.Round(duration))
	s.ExitTime = clockString(exit)
	s.CrossMidnight = exit < 0
	return s
}

func newSession(meta domain.ReportMeta, date time.Time) domain.Session {
	return domain.Session{
		SourceFile:       meta.SourceFile,
		ReportDate:       meta.ReportDate,
		DateRange:        meta.DateRange,
		Year:             meta.Year,
		PetName:          meta.PetName,
		PetAge:           meta.PetAge,
		PetWeight:        meta.PetWeight,
		Date:             date,
		ReportedVisits:   -1,
		ReportedTotalMin: -1,
	}
}

type dayTotals struct {
	visits   int
	totalMin float64
}

// Builder folds week tables, fed in calendar order, into the final
// session list. Cross-midnight state carries across week and report
// boundaries; only Finish resolves a still-pending carry.
type Builder struct {
	state    BuilderState
	sessions []domain.Session
	issues   []domain.Issue
	reported map[string]dayTotals
}

func NewBuilder() *Builder {
	return &Builder{reported: make(map[string]dayTotals)}
}

// AddWeek feeds one reconstructed week table through the day fold.
func (b *Builder) AddWeek(w *domain.WeekTable) {
	for _, day := range w.Days {
		key := day.Date.Format("2006-01-02")
		if _, seen := b.reported[key]; !seen {
			b.reported[key] = dayTotals{visits: day.ReportedVisits, totalMin: day.ReportedTotalMin}
		}
		var emitted []domain.Session
		var raised []domain.Issue
		b.state, emitted, raised = StepDay(b.state, DayInput{Meta: w.Meta, Day: day})
		b.sessions = append(b.sessions, emitted...)
		b.issues = append(b.issues, raised...)
	}
}

// Finish resolves any pending carry, orders and numbers the sessions,
// and fills in per-day reported and recomputed totals.
func (b *Builder) Finish() ([]domain.Session, []domain.Issue) {
	if c := b.state.Carry; c != nil {
		b.sessions = append(b.sessions, resolveCarry(c))
		b.state.Carry = nil
	}
	b.finalize()
	return b.sessions, b.issues
}

func (b *Builder) finalize() {
	sort.SliceStable(b.sessions, func(i, j int) bool {
		a, c := &b.sessions[i], &b.sessions[j]
		if !a.Date.Equal(c.Date) {
			return a.Date.Before(c.Date)
		}
		return sortMinute(a) < sortMinute(c)
	})

	type dayCalc struct {
		visits   int
		totalMin float64
	}
	calc := make(map[string]dayCalc)
	for i := range b.sessions {
		key := b.sessions[i].Date.Format("2006-01-02")
		c := calc[key]
		c.visits++
		c.totalMin += b.sessions[i].DurationMin
		calc[key] = c
	}

	number := 0
	var prev time.Time
	for i := range b.sessions {
		s := &b.sessions[i]
		if !s.Date.Equal(prev) {
			number = 0
			prev = s.Date
		}
		number++
		s.Number = number

		key := s.Date.Format("2006-01-02")
		c := calc[key]
		s.CalcVisits = c.visits
		s.CalcTotalMin = c.totalMin
		if rep, ok := b.reported[key]; ok {
			s.ReportedVisits = rep.visits
			s.ReportedTotalMin = rep.totalMin
		}
	}
}

// sortMinute orders a day's sessions by exit time; a session whose exit
// could not be recovered sorts by its entry instead.
func sortMinute(s *domain.Session) int {
	if m, err := parseClock(s.ExitTime); err == nil {
		return m
	}
	if m, err := parseClock(s.EntryTime); err == nil {
		return m
	}
	return 0
}
