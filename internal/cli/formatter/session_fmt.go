package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/mfokkema/flaplog/internal/domain"
	"github.com/mfokkema/flaplog/internal/repository"
)

// FormatMinutes converts fractional minutes into human-friendly format.
func FormatMinutes(min float64) string {
	whole := int(math.Round(min))
	if whole <= 0 {
		return "0m"
	}
	h := whole / 60
	m := whole % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// SessionTime renders a clock boundary, dimming an unrecoverable one.
func SessionTime(t string) string {
	if t == domain.UnknownTime {
		return StyleDim.Render("??:??")
	}
	return t
}

// RenderSessions renders extracted sessions as a table, one line per
// session, ordered as given.
func RenderSessions(sessions []domain.Session) string {
	if len(sessions) == 0 {
		return Dim("No sessions.") + "\n"
	}

	headers := []string{"DATE", "#", "EXIT", "ENTRY", "DURATION", "PET", "SOURCE"}
	rows := make([][]string, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		exit := SessionTime(s.ExitTime)
		if s.CrossMidnight {
			exit = StylePurple.Render(SessionTime(s.ExitTime) + " ↩")
		}
		rows = append(rows, []string{
			s.DateFull(),
			fmt.Sprintf("%d", s.Number),
			exit,
			SessionTime(s.EntryTime),
			FormatMinutes(s.DurationMin),
			s.PetName,
			Dim(s.SourceFile),
		})
	}
	return RenderTable(headers, rows)
}

// RenderIssues renders extraction issues grouped as given, colored by
// severity.
func RenderIssues(issues []domain.Issue) string {
	if len(issues) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Issues (%d)", len(issues))))
	b.WriteString("\n")
	for _, issue := range issues {
		style := IssueColor(issue.Kind)
		b.WriteString(fmt.Sprintf("%s %s\n", style.Render("▲ "+string(issue.Kind)), issue.String()))
	}
	return b.String()
}

// RenderMergeStats summarizes a merge outcome in one line.
func RenderMergeStats(stats repository.MergeStats) string {
	inserted := StyleGreen.Render(fmt.Sprintf("%d inserted", stats.Inserted))
	if stats.Duplicates == 0 {
		return inserted
	}
	return fmt.Sprintf("%s, %s", inserted, Dim(fmt.Sprintf("%d duplicates skipped", stats.Duplicates)))
}

// RenderSummary renders the stored dataset summary.
func RenderSummary(s repository.Summary) string {
	if s.Sessions == 0 {
		return Dim("Dataset is empty.") + "\n"
	}
	span := ""
	if s.FirstDate != nil && s.LastDate != nil {
		span = fmt.Sprintf("%s — %s", s.FirstDate.Format("2006-01-02"), s.LastDate.Format("2006-01-02"))
	}
	lines := []string{
		fmt.Sprintf("%s %s", Bold(fmt.Sprintf("%d", s.Sessions)), "sessions"),
		fmt.Sprintf("%s %s", Bold(fmt.Sprintf("%d", s.Pets)), "pets"),
		fmt.Sprintf("%s outside in total", Bold(FormatMinutes(s.TotalMin))),
		fmt.Sprintf("%s spanning midnight", Bold(fmt.Sprintf("%d", s.CrossMidnight))),
	}
	if span != "" {
		lines = append(lines, Dim(span))
	}
	return strings.Join(lines, "\n") + "\n"
}

// RenderDailyTotals renders per-day aggregates from the dataset.
func RenderDailyTotals(totals []repository.DailyTotal) string {
	if len(totals) == 0 {
		return ""
	}
	headers := []string{"DATE", "PET", "VISITS", "TIME OUTSIDE"}
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			t.PetName,
			fmt.Sprintf("%d", t.Visits),
			FormatMinutes(t.TotalMin),
		})
	}
	return RenderTable(headers, rows)
}
