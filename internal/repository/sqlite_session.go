package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfokkema/flaplog/internal/db"
	"github.com/mfokkema/flaplog/internal/domain"
)

const dateLayout = "2006-01-02"

// SQLiteSessionRepo implements SessionRepo on SQLite. It is bound to a
// db.DBTX, so callers can scope it to a transaction for atomic merges.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(dbtx db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: dbtx}
}

func (r *SQLiteSessionRepo) Merge(ctx context.Context, sessions []domain.Session, extractedAt time.Time) (MergeStats, error) {
	query := `INSERT INTO sessions (
		id, source_file, report_date, date_range, report_year,
		pet_name, pet_age, pet_weight,
		date, session_number, exit_time, entry_time, duration_min, cross_midnight,
		reported_visits, reported_total_min, calc_visits, calc_total_min, extracted_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(pet_name, date, exit_time, entry_time) DO NOTHING`

	var stats MergeStats
	stamp := extractedAt.UTC().Format(time.RFC3339)
	for i := range sessions {
		s := &sessions[i]
		res, err := r.db.ExecContext(ctx, query,
			uuid.NewString(),
			s.SourceFile, s.ReportDate, s.DateRange, s.Year,
			s.PetName, s.PetAge, s.PetWeight,
			s.Date.Format(dateLayout), s.Number, s.ExitTime, s.EntryTime,
			s.DurationMin, boolToInt(s.CrossMidnight),
			s.ReportedVisits, s.ReportedTotalMin, s.CalcVisits, s.CalcTotalMin,
			stamp,
		)
		if err != nil {
			return stats, fmt.Errorf("inserting session: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return stats, fmt.Errorf("checking insert result: %w", err)
		}
		if n == 0 {
			stats.Duplicates++
		} else {
			stats.Inserted++
		}
	}
	return stats, nil
}

func (r *SQLiteSessionRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	query := `SELECT source_file, report_date, date_range, report_year,
		pet_name, pet_age, pet_weight,
		date, session_number, exit_time, entry_time, duration_min, cross_midnight,
		reported_visits, reported_total_min, calc_visits, calc_total_min
		FROM sessions
		WHERE date >= ? AND date <= ?
		ORDER BY date, session_number`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing sessions by date range: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) DailyTotals(ctx context.Context) ([]DailyTotal, error) {
	query := `SELECT date, pet_name, COUNT(*), SUM(duration_min)
		FROM sessions
		GROUP BY date, pet_name
		ORDER BY date, pet_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("aggregating daily totals: %w", err)
	}
	defer rows.Close()

	var totals []DailyTotal
	for rows.Next() {
		var t DailyTotal
		var dateStr string
		if err := rows.Scan(&dateStr, &t.PetName, &t.Visits, &t.TotalMin); err != nil {
			return nil, fmt.Errorf("scanning daily total: %w", err)
		}
		t.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing total date: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily totals: %w", err)
	}
	return totals, nil
}

func (r *SQLiteSessionRepo) Summary(ctx context.Context) (Summary, error) {
	query := `SELECT COUNT(*), COUNT(DISTINCT pet_name),
		COALESCE(SUM(cross_midnight), 0), COALESCE(SUM(duration_min), 0),
		MIN(date), MAX(date)
		FROM sessions`

	var (
		s        Summary
		min, max sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.Sessions, &s.Pets, &s.CrossMidnight, &s.TotalMin, &min, &max,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing sessions: %w", err)
	}
	s.FirstDate = parseNullableDate(min)
	s.LastDate = parseNullableDate(max)
	return s, nil
}

// scanSessions scans session rows in the SELECT column order used above.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]domain.Session, error) {
	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		var dateStr string
		var crossMidnight int

		err := rows.Scan(
			&s.SourceFile, &s.ReportDate, &s.DateRange, &s.Year,
			&s.PetName, &s.PetAge, &s.PetWeight,
			&dateStr, &s.Number, &s.ExitTime, &s.EntryTime, &s.DurationMin, &crossMidnight,
			&s.ReportedVisits, &s.ReportedTotalMin, &s.CalcVisits, &s.CalcTotalMin,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		s.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing session date: %w", err)
		}
		s.CrossMidnight = intToBool(crossMidnight)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}
