package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mfokkema/flaplog/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// MergeStats reports the outcome of merging an extraction run into the
// master dataset.
type MergeStats struct {
	Inserted   int
	Duplicates int
}

// DailyTotal is one pet-day aggregated from stored sessions.
type DailyTotal struct {
	Date     time.Time
	PetName  string
	Visits   int
	TotalMin float64
}

// Summary describes the whole stored dataset.
type Summary struct {
	Sessions      int
	Pets          int
	CrossMidnight int
	TotalMin      float64
	FirstDate     *time.Time
	LastDate      *time.Time
}

type SessionRepo interface {
	// Merge inserts sessions, silently skipping any whose identity
	// (pet, date, exit, entry) is already stored. Bind the repository
	// to a transaction to make the merge atomic.
	Merge(ctx context.Context, sessions []domain.Session, extractedAt time.Time) (MergeStats, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Session, error)
	DailyTotals(ctx context.Context) ([]DailyTotal, error)
	Summary(ctx context.Context) (Summary, error)
}
