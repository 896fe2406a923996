package extract

import (
	"fmt"

	"github.com/mfokkema/flaplog/internal/domain"
)

// Validation tolerances against the report's own daily totals.
const (
	DurationToleranceMin = 10.0
	VisitCountTolerance  = 1
)

// Validate compares each day's emitted sessions against the totals the
// report itself printed for that day. Discrepancies are flagged, never
// repaired: rewriting sessions to match a printed total would hide real
// extraction bugs. Days without reported totals are skipped.
func Validate(sessions []domain.Session) []domain.Issue {
	var issues []domain.Issue
	seen := make(map[string]bool)

	for i := range sessions {
		s := &sessions[i]
		key := s.SourceFile + "|" + s.Date.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true

		if s.ReportedTotalMin >= 0 {
			diff := s.CalcTotalMin - s.ReportedTotalMin
			if diff < 0 {
				diff = -diff
			}
			if diff > DurationToleranceMin {
				issues = append(issues, domain.Issue{
					Kind:   domain.IssueDurationMismatch,
					File:   s.SourceFile,
					Date:   s.Date,
					Detail: fmt.Sprintf("sessions total %.1f min, report says %.1f min", s.CalcTotalMin, s.ReportedTotalMin),
				})
			}
		}

		if s.ReportedVisits >= 0 {
			diff := s.CalcVisits - s.ReportedVisits
			if diff < 0 {
				diff = -diff
			}
			if diff > VisitCountTolerance {
				issues = append(issues, domain.Issue{
					Kind:   domain.IssueCountMismatch,
					File:   s.SourceFile,
					Date:   s.Date,
					Detail: fmt.Sprintf("%d sessions extracted, report says %d visits", s.CalcVisits, s.ReportedVisits),
				})
			}
		}
	}
	return issues
}
