package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mfokkema/flaplog/internal/domain"
)

// Columns is the flat session schema, one line per session. Reported
// daily totals come from the PDF itself, calculated ones from the
// extracted sessions, so consumers can audit the two against each
// other.
var Columns = []string{
	"filename",
	"report_date",
	"report_date_range",
	"report_year",
	"pet_name",
	"age",
	"weight",
	"date_str",
	"date_full",
	"session_number",
	"exit_time",
	"entry_time",
	"duration",
	"daily_total_visits_PDF",
	"daily_total_time_outside_PDF",
	"daily_total_visits_calculated",
	"daily_total_time_outside_calculated",
	"extracted_at",
}

// WriteCSV writes sessions in the flat schema. The extraction time is
// passed in so a run stamps every line identically.
func WriteCSV(w io.Writer, sessions []domain.Session, extractedAt time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	stamp := extractedAt.Format(time.RFC3339)
	for i := range sessions {
		if err := cw.Write(record(&sessions[i], stamp)); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(s *domain.Session, stamp string) []string {
	return []string{
		s.SourceFile,
		s.ReportDate,
		s.DateRange,
		strconv.Itoa(s.Year),
		s.PetName,
		s.PetAge,
		s.PetWeight,
		s.DateStr(),
		s.DateFull(),
		strconv.Itoa(s.Number),
		s.ExitTime,
		s.EntryTime,
		minutes(s.DurationMin),
		count(s.ReportedVisits),
		optMinutes(s.ReportedTotalMin),
		strconv.Itoa(s.CalcVisits),
		minutes(s.CalcTotalMin),
		stamp,
	}
}

func minutes(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// optMinutes renders a reported total, empty when the PDF did not carry
// one or it could not be read.
func optMinutes(v float64) string {
	if v < 0 {
		return ""
	}
	return minutes(v)
}

func count(v int) string {
	if v < 0 {
		return ""
	}
	return strconv.Itoa(v)
}
