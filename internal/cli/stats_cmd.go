package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfokkema/flaplog/internal/cli/formatter"
	"github.com/mfokkema/flaplog/internal/repository"
)

func newStatsCmd(app *App) *cobra.Command {
	var daily bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dataset statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			repo := repository.NewSQLiteSessionRepo(app.DB)

			summary, err := repo.Summary(ctx)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderBox("Dataset", formatter.RenderSummary(summary)) + "\n")

			if daily {
				totals, err := repo.DailyTotals(ctx)
				if err != nil {
					return err
				}
				if len(totals) > 0 {
					fmt.Print(formatter.RenderDailyTotals(totals))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&daily, "daily", false, "Also show per-day totals")

	return cmd
}
