package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfokkema/flaplog/internal/cli/formatter"
	"github.com/mfokkema/flaplog/internal/domain"
)

// reviewModel drives the interactive session browser: a table of
// sessions with a detail pane for the selected one.
type reviewModel struct {
	sessions []domain.Session
	table    table.Model
	quitting bool
}

func newReviewModel(sessions []domain.Session) reviewModel {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "#", Width: 3},
		{Title: "Exit", Width: 7},
		{Title: "Entry", Width: 7},
		{Title: "Duration", Width: 9},
		{Title: "Pet", Width: 12},
	}

	rows := make([]table.Row, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		exit := reviewTime(s.ExitTime)
		if s.CrossMidnight {
			exit += " ↩"
		}
		rows = append(rows, table.Row{
			s.DateFull(),
			fmt.Sprintf("%d", s.Number),
			exit,
			reviewTime(s.EntryTime),
			reviewDuration(s),
			s.PetName,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(formatter.ColorHeader).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(formatter.ColorDim).
		Bold(true)
	t.SetStyles(styles)

	return reviewModel{sessions: sessions, table: t}
}

func reviewTime(t string) string {
	if t == domain.UnknownTime {
		return "??:??"
	}
	return t
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h := msg.Height - 10
		if h < 5 {
			h = 5
		}
		m.table.SetHeight(h)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m reviewModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("Sessions (%d)", len(m.sessions))))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(formatter.Dim("↑/↓ move · q quit"))
	return b.String()
}

// detailView shows the selected session's provenance and the daily
// totals comparison the table has no room for.
func (m reviewModel) detailView() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.sessions) {
		return ""
	}
	s := &m.sessions[idx]

	reported := "none"
	if s.ReportedVisits >= 0 {
		reported = fmt.Sprintf("%d visits, %s", s.ReportedVisits, formatter.FormatMinutes(s.ReportedTotalMin))
	}
	lines := []string{
		fmt.Sprintf("%s %s", formatter.Bold(s.PetName), formatter.Dim(fmt.Sprintf("(%s, %s)", s.PetAge, s.PetWeight))),
		fmt.Sprintf("source %s", formatter.Dim(s.SourceFile)),
		fmt.Sprintf("day totals: calculated %d visits, %s · reported %s",
			s.CalcVisits, formatter.FormatMinutes(s.CalcTotalMin), reported),
	}
	return strings.Join(lines, "\n")
}
