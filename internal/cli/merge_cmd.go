package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mfokkema/flaplog/internal/cli/formatter"
	"github.com/mfokkema/flaplog/internal/db"
	"github.com/mfokkema/flaplog/internal/extract"
	"github.com/mfokkema/flaplog/internal/repository"
)

func newMergeCmd(app *App) *cobra.Command {
	var (
		fromRows bool
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Extract report PDFs and merge the sessions into the dataset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := collectInputs(args, fromRows, "")
			if err != nil {
				return err
			}

			result := extract.Run(inputs)
			if s := formatter.RenderIssues(result.Issues); s != "" {
				fmt.Print(s + "\n")
			}
			if len(result.Sessions) == 0 {
				fmt.Println("Nothing to merge.")
				return nil
			}

			if !yes && app.IsInteractive() {
				proceed := true
				confirm := huh.NewConfirm().
					Title(fmt.Sprintf("Merge %d sessions into the dataset?", len(result.Sessions))).
					Value(&proceed)
				if err := confirm.Run(); err != nil {
					return err
				}
				if !proceed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			ctx := context.Background()
			var stats repository.MergeStats
			err = app.UoW.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				repo := repository.NewSQLiteSessionRepo(tx)
				var mergeErr error
				stats, mergeErr = repo.Merge(ctx, result.Sessions, time.Now())
				return mergeErr
			})
			if err != nil {
				return err
			}

			fmt.Println(formatter.RenderMergeStats(stats))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromRows, "rows", false, "Treat inputs as JSON row dumps instead of PDFs")
	cmd.Flags().BoolVar(&yes, "yes", false, "Merge without confirmation")

	return cmd
}
