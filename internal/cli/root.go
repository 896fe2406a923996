package cli

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/mfokkema/flaplog/internal/db"
)

// App holds the shared dependencies CLI commands run against.
type App struct {
	DB  *sql.DB
	UoW db.UnitOfWork

	// IsInteractive reports whether stdin is attached to a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "flaplog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "flaplog",
		Short: "Extract pet door sessions from weekly report PDFs",
	}

	root.AddCommand(
		newExtractCmd(app),
		newMergeCmd(app),
		newStatsCmd(app),
		newReviewCmd(app),
	)

	return root
}
