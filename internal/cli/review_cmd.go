package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mfokkema/flaplog/internal/domain"
	"github.com/mfokkema/flaplog/internal/repository"
)

func newReviewCmd(app *App) *cobra.Command {
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Browse stored sessions interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("review requires an interactive terminal")
			}

			ctx := context.Background()
			repo := repository.NewSQLiteSessionRepo(app.DB)

			from, to, err := reviewRange(ctx, repo, fromStr, toStr)
			if err != nil {
				return err
			}

			sessions, err := repo.ListByDateRange(ctx, from, to)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions in range.")
				return nil
			}

			p := tea.NewProgram(newReviewModel(sessions))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Start date (YYYY-MM-DD), defaults to the earliest stored day")
	cmd.Flags().StringVar(&toStr, "to", "", "End date (YYYY-MM-DD), defaults to the latest stored day")

	return cmd
}

// reviewRange resolves the date window, falling back to the stored
// dataset's full span for absent bounds.
func reviewRange(ctx context.Context, repo repository.SessionRepo, fromStr, toStr string) (time.Time, time.Time, error) {
	var from, to time.Time

	if fromStr == "" || toStr == "" {
		summary, err := repo.Summary(ctx)
		if err != nil {
			return from, to, err
		}
		if summary.FirstDate != nil {
			from = *summary.FirstDate
		}
		if summary.LastDate != nil {
			to = *summary.LastDate
		}
	}

	var err error
	if fromStr != "" {
		if from, err = time.Parse("2006-01-02", fromStr); err != nil {
			return from, to, fmt.Errorf("parsing --from: %w", err)
		}
	}
	if toStr != "" {
		if to, err = time.Parse("2006-01-02", toStr); err != nil {
			return from, to, fmt.Errorf("parsing --to: %w", err)
		}
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("--to %s is before --from %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return from, to, nil
}

func reviewDuration(s *domain.Session) string {
	h := int(s.DurationMin) / 60
	m := int(s.DurationMin) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
