package domain

// RowKind tags a raw table row as segmented from one report page.
type RowKind string

const (
	RowDateHeader  RowKind = "date-header"
	RowTimestamps  RowKind = "timestamp-row"
	RowDurations   RowKind = "duration-row"
	RowVisitsTotal RowKind = "visits-total-row"
	RowTimeTotal   RowKind = "time-total-row"
	RowMetadata    RowKind = "metadata-row"
)

// RawRow is one tagged row of text cells from a report page, cells in
// left-to-right column order. Rows are ephemeral: produced by an input
// adapter and consumed within a single reconstruction pass.
type RawRow struct {
	Kind  RowKind  `json:"kind"`
	Page  int      `json:"page"`
	Cells []string `json:"cells"`
}
