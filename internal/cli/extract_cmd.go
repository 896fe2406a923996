package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfokkema/flaplog/internal/cli/formatter"
	"github.com/mfokkema/flaplog/internal/domain"
	"github.com/mfokkema/flaplog/internal/export"
	"github.com/mfokkema/flaplog/internal/extract"
	"github.com/mfokkema/flaplog/internal/pdfrows"
)

func newExtractCmd(app *App) *cobra.Command {
	var (
		csvPath  string
		jsonPath string
		fromRows bool
		dumpDir  string
	)

	cmd := &cobra.Command{
		Use:   "extract FILE...",
		Short: "Extract sessions from report PDFs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := collectInputs(args, fromRows, dumpDir)
			if err != nil {
				return err
			}

			result := extract.Run(inputs)

			fmt.Print(formatter.RenderSessions(result.Sessions))
			if s := formatter.RenderIssues(result.Issues); s != "" {
				fmt.Print("\n" + s)
			}

			now := time.Now()
			if csvPath != "" {
				if err := writeExport(csvPath, result.Sessions, now, export.WriteCSV); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", csvPath)
			}
			if jsonPath != "" {
				if err := writeExport(jsonPath, result.Sessions, now, export.WriteJSON); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", jsonPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Write sessions to a CSV file")
	cmd.Flags().StringVar(&jsonPath, "json", "", "Write sessions to a JSON file")
	cmd.Flags().BoolVar(&fromRows, "rows", false, "Treat inputs as JSON row dumps instead of PDFs")
	cmd.Flags().StringVar(&dumpDir, "dump-rows", "", "Also write tagged rows as JSON into this directory")

	return cmd
}

// collectInputs reads each file into tagged rows, from the PDF itself
// or from a prior row dump.
func collectInputs(files []string, fromRows bool, dumpDir string) ([]extract.Input, error) {
	var inputs []extract.Input
	for _, f := range files {
		var (
			rows []domain.RawRow
			err  error
		)
		if fromRows {
			rows, err = pdfrows.LoadDump(f)
		} else {
			rows, err = pdfrows.ReadFile(f)
		}
		if err != nil {
			return nil, err
		}

		if dumpDir != "" {
			name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f)) + ".rows.json"
			if err := pdfrows.DumpRows(filepath.Join(dumpDir, name), rows); err != nil {
				return nil, err
			}
		}

		inputs = append(inputs, extract.Input{File: filepath.Base(f), Rows: rows})
	}
	return inputs, nil
}

func writeExport(path string, sessions []domain.Session, at time.Time, write func(w io.Writer, sessions []domain.Session, at time.Time) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, sessions, at); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
