package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mfokkema/flaplog/internal/domain"
	"github.com/mfokkema/flaplog/internal/teatest"
)

func reviewSessions() []domain.Session {
	return []domain.Session{
		{
			SourceFile: "week34.pdf", PetName: "Whiskers", PetAge: "4 years", PetWeight: "3.9 kg",
			Date: time.Date(2023, 8, 14, 0, 0, 0, 0, time.UTC), Number: 1,
			ExitTime: "08:15", EntryTime: "09:20", DurationMin: 65,
			ReportedVisits: 1, ReportedTotalMin: 65, CalcVisits: 1, CalcTotalMin: 65,
		},
		{
			SourceFile: "week34.pdf", PetName: "Whiskers", PetAge: "4 years", PetWeight: "3.9 kg",
			Date: time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC), Number: 1,
			ExitTime: "22:24", EntryTime: "00:21", DurationMin: 116.67, CrossMidnight: true,
			ReportedVisits: -1, ReportedTotalMin: -1, CalcVisits: 1, CalcTotalMin: 116.67,
		},
	}
}

func TestReviewModel_RendersSessions(t *testing.T) {
	d := teatest.New(t, newReviewModel(reviewSessions()), teatest.WithSize(100, 30))

	view := d.View()
	assert.Contains(t, view, "SESSIONS (2)")
	assert.Contains(t, view, "2023-08-14")
	assert.Contains(t, view, "08:15")
	assert.Contains(t, view, "↩", "the spanning session carries the midnight marker")
	assert.Contains(t, view, "week34.pdf")
}

func TestReviewModel_CursorMovesDetail(t *testing.T) {
	d := teatest.New(t, newReviewModel(reviewSessions()), teatest.WithSize(100, 30))

	assert.Contains(t, d.View(), "reported 1 visits")

	d.PressDown()
	assert.Contains(t, d.View(), "reported none",
		"second session's day has no reported totals")

	d.PressUp()
	assert.Contains(t, d.View(), "reported 1 visits")
}

func TestReviewModel_Quits(t *testing.T) {
	d := teatest.New(t, newReviewModel(reviewSessions()))
	d.PressKey('q')
	assert.True(t, d.Quitting)
	assert.Equal(t, "", d.View())
}
