package extract

import (
	"testing"

	"github.com/mfokkema/flaplog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validatedSession(calcMin, repMin float64, calcVisits, repVisits int) domain.Session {
	return domain.Session{
		SourceFile:       "week34.pdf",
		Date:             date("2023-08-14"),
		CalcTotalMin:     calcMin,
		ReportedTotalMin: repMin,
		CalcVisits:       calcVisits,
		ReportedVisits:   repVisits,
	}
}

func TestValidate_DurationToleranceBoundary(t *testing.T) {
	issues := Validate([]domain.Session{validatedSession(70, 60, 1, 1)})
	assert.Empty(t, issues, "exactly 10 minutes off is within tolerance")

	issues = Validate([]domain.Session{validatedSession(71, 60, 1, 1)})
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueDurationMismatch, issues[0].Kind)
	assert.Contains(t, issues[0].Detail, "71.0")
	assert.Contains(t, issues[0].Detail, "60.0")
}

func TestValidate_VisitCountToleranceBoundary(t *testing.T) {
	issues := Validate([]domain.Session{validatedSession(60, 60, 3, 2)})
	assert.Empty(t, issues, "one extra session is within tolerance")

	issues = Validate([]domain.Session{validatedSession(60, 60, 4, 2)})
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueCountMismatch, issues[0].Kind)
}

func TestValidate_SkipsDaysWithoutReportedTotals(t *testing.T) {
	issues := Validate([]domain.Session{validatedSession(500, -1, 9, -1)})
	assert.Empty(t, issues, "nothing to compare against")
}

func TestValidate_OneIssuePerDayNotPerSession(t *testing.T) {
	day := []domain.Session{
		validatedSession(100, 60, 2, 2),
		validatedSession(100, 60, 2, 2),
	}
	day[1].Number = 2

	issues := Validate(day)
	assert.Len(t, issues, 1, "a day's mismatch is reported once")
}

func TestValidate_DoesNotMutateSessions(t *testing.T) {
	sessions := []domain.Session{validatedSession(200, 60, 5, 1)}
	before := sessions[0]

	Validate(sessions)
	assert.Equal(t, before, sessions[0], "validation only observes")
}
