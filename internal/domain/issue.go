package domain

import (
	"fmt"
	"time"
)

// IssueKind classifies an extraction warning.
type IssueKind string

const (
	IssueDurationMismatch  IssueKind = "duration-mismatch"
	IssueCountMismatch     IssueKind = "count-mismatch"
	IssueGapDetected       IssueKind = "gap-detected"
	IssueUnparseableCell   IssueKind = "unparseable-cell"
	IssueUnrecognizedTable IssueKind = "unrecognized-table-structure"
)

// Issue is a structured extraction warning. An issue never discards
// data by itself; it annotates a processing run for downstream review.
type Issue struct {
	Kind   IssueKind
	File   string
	Date   time.Time // zero when the issue concerns the whole file
	Detail string
}

func (i Issue) String() string {
	scope := i.File
	if !i.Date.IsZero() {
		scope = fmt.Sprintf("%s %s", i.File, i.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("[%s] %s: %s", i.Kind, scope, i.Detail)
}
