package extract

import (
	"sort"

	"github.com/mfokkema/flaplog/internal/domain"
)

// Input is one document's tagged rows, ready for reconstruction.
type Input struct {
	File string
	Rows []domain.RawRow
}

// RunResult is the contract surface of a processing run: the sessions
// produced and the issues raised, both always populated (possibly
// empty) for every document that passed structural parsing.
type RunResult struct {
	Sessions []domain.Session
	Issues   []domain.Issue
}

// Run processes a batch of documents: each is reconstructed
// independently, then all week tables are ordered by the earliest
// calendar date they contain and fed through a single sequential
// builder pass, so overnight excursions pair correctly across report
// boundaries regardless of upload order.
func Run(inputs []Input) *RunResult {
	result := &RunResult{}

	var tables []domain.WeekTable
	for _, in := range inputs {
		weeks, issues := Reconstruct(in.File, in.Rows)
		result.Issues = append(result.Issues, issues...)
		tables = append(tables, weeks...)
	}

	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].FirstDate().Before(tables[j].FirstDate())
	})

	builder := NewBuilder()
	for i := range tables {
		builder.AddWeek(&tables[i])
	}
	sessions, issues := builder.Finish()
	result.Sessions = sessions
	result.Issues = append(result.Issues, issues...)
	result.Issues = append(result.Issues, Validate(sessions)...)
	return result
}
