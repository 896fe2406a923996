package cli_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfokkema/flaplog/internal/cli"
	"github.com/mfokkema/flaplog/internal/domain"
	"github.com/mfokkema/flaplog/internal/pdfrows"
	"github.com/mfokkema/flaplog/internal/repository"
	"github.com/mfokkema/flaplog/internal/testutil"
)

func newTestApp(t *testing.T) *cli.App {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &cli.App{
		DB:            database,
		UoW:           testutil.NewTestUoW(database),
		IsInteractive: func() bool { return false },
	}
}

// writeRowDump stores a one-week report as a row dump the commands can
// consume with --rows.
func writeRowDump(t *testing.T) string {
	t.Helper()
	rows := []domain.RawRow{
		{Kind: domain.RowMetadata, Page: 1, Cells: []string{
			"Name: Whiskers", "Age: 4 years", "Weight: 3.9 kg",
			"Report date: 21/08/2023", "Date range: 14/08/2023 - 20/08/2023",
		}},
		{Kind: domain.RowDateHeader, Page: 1, Cells: []string{
			"Mon 14/08", "Tue 15/08", "Wed 16/08", "Thu 17/08", "Fri 18/08", "Sat 19/08", "Sun 20/08",
		}},
		{Kind: domain.RowTimestamps, Page: 1, Cells: []string{"08:15 - 09:20", "07:02", "", "", "", "", ""}},
		{Kind: domain.RowDurations, Page: 1, Cells: []string{"01:05 h", "07:00 h", "", "", "", "", ""}},
	}

	path := filepath.Join(t.TempDir(), "week34.rows.json")
	require.NoError(t, pdfrows.DumpRows(path, rows))
	return path
}

func TestExtractCmd_WritesCSV(t *testing.T) {
	app := newTestApp(t)
	dump := writeRowDump(t)
	out := filepath.Join(t.TempDir(), "sessions.csv")

	root := cli.NewRootCmd(app)
	root.SetArgs([]string{"extract", dump, "--rows", "--csv", out})
	require.NoError(t, root.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two sessions")
	assert.Equal(t, "week34.rows.json", records[1][0])
	assert.Equal(t, "Whiskers", records[1][4])
	assert.Equal(t, "08:15", records[1][10])
	assert.Equal(t, "00:02", records[2][10], "lone return's exit inferred from duration")
}

func TestMergeCmd_StoresSessions(t *testing.T) {
	app := newTestApp(t)
	dump := writeRowDump(t)

	root := cli.NewRootCmd(app)
	root.SetArgs([]string{"merge", dump, "--rows", "--yes"})
	require.NoError(t, root.Execute())

	repo := repository.NewSQLiteSessionRepo(app.DB)
	summary, err := repo.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Sessions)

	// Merging the same dump again must not duplicate anything.
	root = cli.NewRootCmd(app)
	root.SetArgs([]string{"merge", dump, "--rows", "--yes"})
	require.NoError(t, root.Execute())

	summary, err = repo.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Sessions)
}

func TestStatsCmd_RunsOnEmptyDataset(t *testing.T) {
	app := newTestApp(t)

	root := cli.NewRootCmd(app)
	root.SetArgs([]string{"stats", "--daily"})
	require.NoError(t, root.Execute())
}

func TestReviewCmd_RefusesNonInteractive(t *testing.T) {
	app := newTestApp(t)

	root := cli.NewRootCmd(app)
	root.SetArgs([]string{"review"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive")
}

func TestReviewRange_Validation(t *testing.T) {
	app := newTestApp(t)
	repo := repository.NewSQLiteSessionRepo(app.DB)

	d, _ := time.Parse("2006-01-02", "2023-08-14")
	_, err := repo.Merge(context.Background(), []domain.Session{{
		SourceFile: "week34.pdf", PetName: "Whiskers", Date: d, Number: 1,
		ExitTime: "08:15", EntryTime: "09:20", DurationMin: 65,
		ReportedVisits: -1, ReportedTotalMin: -1, CalcVisits: 1, CalcTotalMin: 65,
	}}, time.Now())
	require.NoError(t, err)

	root := cli.NewRootCmd(app)
	root.SetArgs([]string{"review", "--from", "2023-08-20", "--to", "2023-08-14"})
	app.IsInteractive = func() bool { return true }
	err = root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before")
}
