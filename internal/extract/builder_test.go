package extract

import (
	"testing"
	"time"

	"github.com/mfokkema/flaplog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMeta = domain.ReportMeta{
	SourceFile: "week34.pdf",
	PetName:    "Whiskers",
	Year:       2023,
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func dayCol(dateStr, ts, dur string) domain.DayColumn {
	return domain.DayColumn{
		Date:             date(dateStr),
		TimestampCell:    ts,
		DurationCell:     dur,
		ReportedVisits:   -1,
		ReportedTotalMin: -1,
	}
}

func buildWeek(days ...domain.DayColumn) *domain.WeekTable {
	return &domain.WeekTable{Meta: testMeta, Days: days}
}

func TestBuilder_TwoTimestampDay(t *testing.T) {
	b := NewBuilder()
	b.AddWeek(buildWeek(dayCol("2023-08-14", "08:15 - 09:20", "01:05 h")))
	sessions, issues := b.Finish()

	assert.Empty(t, issues)
	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, "08:15", s.ExitTime, "first timestamp is always the exit")
	assert.Equal(t, "09:20", s.EntryTime, "second timestamp is always the entry")
	assert.InDelta(t, 65, s.DurationMin, 0.001)
	assert.Equal(t, 1, s.Number)
	assert.Equal(t, 1, s.CalcVisits)
	assert.False(t, s.CrossMidnight)
	assert.Equal(t, "Whiskers", s.PetName)
}

func TestBuilder_CompleteWeekRoundTrip(t *testing.T) {
	durations := []float64{65, 30, 45, 120, 15, 90, 60}
	cells := []string{"08:00 - 09:05", "10:00 - 10:30", "11:00 - 11:45", "12:00 - 14:00", "07:00 - 07:15", "16:00 - 17:30", "18:00 - 19:00"}
	durCells := []string{"01:05 h", "30:00 mins", "45:00 mins", "02:00 h", "15:00 mins", "01:30 h", "01:00 h"}

	days := make([]domain.DayColumn, 7)
	var wantTotal float64
	for i := range days {
		days[i] = dayCol(date("2023-08-14").AddDate(0, 0, i).Format("2006-01-02"), cells[i], durCells[i])
		days[i].ReportedVisits = 1
		days[i].ReportedTotalMin = durations[i]
		wantTotal += durations[i]
	}

	b := NewBuilder()
	b.AddWeek(buildWeek(days...))
	sessions, issues := b.Finish()

	require.Len(t, sessions, 7)
	assert.Empty(t, issues)
	assert.Empty(t, Validate(sessions), "totals match the report exactly")

	var gotTotal float64
	for _, s := range sessions {
		gotTotal += s.DurationMin
	}
	assert.InDelta(t, wantTotal, gotTotal, 0.001, "emitted durations must sum to the input durations")
}

func TestBuilder_CrossMidnightMerge(t *testing.T) {
	b := NewBuilder()
	b.AddWeek(buildWeek(
		dayCol("2023-08-14", "22:24", "01:35 h"),
		dayCol("2023-08-15", "00:21", "21:40 mins"),
	))
	sessions, issues := b.Finish()

	assert.Empty(t, issues)
	require.Len(t, sessions, 1, "the two lone timestamps describe one excursion")
	s := sessions[0]
	assert.Equal(t, date("2023-08-14"), s.Date, "a spanning session is dated on its exit day")
	assert.Equal(t, "22:24", s.ExitTime)
	assert.Equal(t, "00:21", s.EntryTime)
	assert.True(t, s.CrossMidnight)
	assert.InDelta(t, 95+21+40.0/60, s.DurationMin, 0.001)
}

func TestBuilder_MergeCarriesAcrossWeekTables(t *testing.T) {
	b := NewBuilder()
	b.AddWeek(buildWeek(dayCol("2023-08-20", "22:24", "01:35 h")))
	b.AddWeek(&domain.WeekTable{
		Meta: domain.ReportMeta{SourceFile: "week35.pdf", PetName: "Whiskers", Year: 2023},
		Days: []domain.DayColumn{dayCol("2023-08-21", "00:21", "21:40 mins")},
	})
	sessions, issues := b.Finish()

	assert.Empty(t, issues)
	require.Len(t, sessions, 1, "report boundaries are invisible to pairing")
	assert.Equal(t, "week34.pdf", sessions[0].SourceFile, "merged session belongs to the exit day's report")
}

func TestBuilder_GapBlocksMerge(t *testing.T) {
	b := NewBuilder()
	b.AddWeek(buildWeek(
		dayCol("2023-08-14", "22:24", "01:35 h"),
		dayCol("2023-08-16", "00:21", "21:40 mins"), // the 15th is missing
	))
	sessions, issues := b.Finish()

	require.Len(t, sessions, 2, "no pairing across an undocumented day")
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueGapDetected, issues[0].Kind)

	first := sessions[0]
	assert.Equal(t, date("2023-08-14"), first.Date)
	assert.Equal(t, "22:24", first.ExitTime)
	assert.Equal(t, "23:59", first.EntryTime, "entry inferred from the recorded duration")
}

func TestBuilder_MergeRejectedWhenDurationsDisagree(t *testing.T) {
	b := NewBuilder()
	b.AddWeek(buildWeek(
		dayCol("2023-08-14", "22:24", "01:35 h"),
		// Recorded as nearly three hours: cannot be the other half of
		// the 22:24 departure.
		dayCol("2023-08-15", "00:21", "02:50 h"),
	))
	sessions, _ := b.Finish()

	require.Len(t, sessions, 2)
	assert.Equal(t, date("2023-08-14"), sessions[0].Date)
	assert.Equal(t, date("2023-08-15"), sessions[1].Date)
}

func TestBuilder_LoneEntryInfersExit(t *testing.T) {
	// 07:30 after roughly 7h20m outside: an overnight return whose
	// departure the device never logged.
	b := NewBuilder()
	b.AddWeek(buildWeek(dayCol("2023-08-14", "07:30", "07:20 h")))
	sessions, issues := b.Finish()

	assert.Empty(t, issues)
	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, "00:10", s.ExitTime)
	assert.Equal(t, "07:30", s.EntryTime)
	assert.False(t, s.CrossMidnight)
}

func TestBuilder_PendingCarryFlushedAtFinish(t *testing.T) {
	b := NewBuilder()
	b.AddWeek(buildWeek(dayCol("2023-08-20", "22:24", "01:35 h")))
	sessions, issues := b.Finish()

	assert.Empty(t, issues)
	require.Len(t, sessions, 1)
	assert.Equal(t, "22:24", sessions[0].ExitTime)
	assert.Equal(t, "23:59", sessions[0].EntryTime)
}

func TestBuilder_UnreadableDurationMarksUnknownBoundary(t *testing.T) {
	b := NewBuilder()
	b.AddWeek(buildWeek(
		dayCol("2023-08-14", "08:00", "N/A"),
		dayCol("2023-08-15", "09:00 - 09:30", "30:00 mins"),
	))
	sessions, issues := b.Finish()

	require.Len(t, sessions, 2, "processing continues past the bad cell")
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueUnparseableCell, issues[0].Kind)

	first := sessions[0]
	assert.Equal(t, domain.UnknownTime, first.ExitTime, "no duration to infer the exit from")
	assert.Equal(t, "08:00", first.EntryTime)
	assert.Equal(t, 0.0, first.DurationMin)
}

func TestBuilder_OverlappingReportsNumberWithinDay(t *testing.T) {
	b := NewBuilder()
	b.AddWeek(buildWeek(dayCol("2023-08-14", "16:00 - 17:30", "01:30 h")))
	b.AddWeek(buildWeek(dayCol("2023-08-14", "08:15 - 09:20", "01:05 h")))
	sessions, _ := b.Finish()

	require.Len(t, sessions, 2)
	assert.Equal(t, "08:15", sessions[0].ExitTime, "ordered by exit time, not feed order")
	assert.Equal(t, 1, sessions[0].Number)
	assert.Equal(t, 2, sessions[1].Number)
	assert.Equal(t, 2, sessions[0].CalcVisits)
	assert.InDelta(t, 155, sessions[0].CalcTotalMin, 0.001)
}

func TestStepDay_FromArbitraryCarryState(t *testing.T) {
	state := BuilderState{Carry: &carriedExit{
		Meta:     testMeta,
		Date:     date("2023-08-14"),
		Minute:   22*60 + 24,
		Duration: 95,
		DurKnown: true,
	}}

	next, sessions, issues := StepDay(state, DayInput{
		Meta: testMeta,
		Day:  dayCol("2023-08-15", "00:21", "21:40 mins"),
	})

	assert.Nil(t, next.Carry)
	assert.Empty(t, issues)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].CrossMidnight)
}

func TestStepDay_EmptyDayResolvesCarry(t *testing.T) {
	state := BuilderState{Carry: &carriedExit{
		Meta:     testMeta,
		Date:     date("2023-08-14"),
		Minute:   22 * 60,
		Duration: 60,
		DurKnown: true,
	}}

	next, sessions, issues := StepDay(state, DayInput{
		Meta: testMeta,
		Day:  dayCol("2023-08-15", "", ""),
	})

	assert.Nil(t, next.Carry, "a documented empty day ends the pairing window")
	assert.Empty(t, issues, "an empty day is not a gap")
	require.Len(t, sessions, 1)
	assert.Equal(t, "23:00", sessions[0].EntryTime)
}
