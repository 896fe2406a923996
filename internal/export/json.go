package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mfokkema/flaplog/internal/domain"
)

// sessionJSON mirrors the CSV schema field for field. Reported totals
// are pointers so an absent PDF total serializes as null rather than a
// sentinel.
type sessionJSON struct {
	Filename      string   `json:"filename"`
	ReportDate    string   `json:"report_date"`
	DateRange     string   `json:"report_date_range"`
	ReportYear    int      `json:"report_year"`
	PetName       string   `json:"pet_name"`
	Age           string   `json:"age"`
	Weight        string   `json:"weight"`
	DateStr       string   `json:"date_str"`
	DateFull      string   `json:"date_full"`
	SessionNumber int      `json:"session_number"`
	ExitTime      string   `json:"exit_time"`
	EntryTime     string   `json:"entry_time"`
	Duration      float64  `json:"duration"`
	PDFVisits     *int     `json:"daily_total_visits_PDF"`
	PDFTotalMin   *float64 `json:"daily_total_time_outside_PDF"`
	CalcVisits    int      `json:"daily_total_visits_calculated"`
	CalcTotalMin  float64  `json:"daily_total_time_outside_calculated"`
	ExtractedAt   string   `json:"extracted_at"`
}

// WriteJSON writes sessions as a JSON array in the flat schema.
func WriteJSON(w io.Writer, sessions []domain.Session, extractedAt time.Time) error {
	stamp := extractedAt.Format(time.RFC3339)
	out := make([]sessionJSON, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		j := sessionJSON{
			Filename:      s.SourceFile,
			ReportDate:    s.ReportDate,
			DateRange:     s.DateRange,
			ReportYear:    s.Year,
			PetName:       s.PetName,
			Age:           s.PetAge,
			Weight:        s.PetWeight,
			DateStr:       s.DateStr(),
			DateFull:      s.DateFull(),
			SessionNumber: s.Number,
			ExitTime:      s.ExitTime,
			EntryTime:     s.EntryTime,
			Duration:      s.DurationMin,
			CalcVisits:    s.CalcVisits,
			CalcTotalMin:  s.CalcTotalMin,
			ExtractedAt:   stamp,
		}
		if s.ReportedVisits >= 0 {
			v := s.ReportedVisits
			j.PDFVisits = &v
		}
		if s.ReportedTotalMin >= 0 {
			m := s.ReportedTotalMin
			j.PDFTotalMin = &m
		}
		out = append(out, j)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	return nil
}
