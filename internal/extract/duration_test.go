package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration_AcceptedShapes(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want float64
	}{
		{"hours and minutes", "02:13 h", 133},
		{"single digit hour", "1:05 h", 65},
		{"minutes and seconds", "21:40 mins", 21 + 40.0/60},
		{"seconds only", "45 s", 0.75},
		{"no space before unit", "02:13h", 133},
		{"extra whitespace", "  02:13   h  ", 133},
		{"uppercase unit", "02:13 H", 133},
		{"mixed case mins", "21:40 Mins", 21 + 40.0/60},
		{"empty cell", "", 0},
		{"dash placeholder", "-", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDuration(tt.cell)
			assert.True(t, ok, "expected %q to parse", tt.cell)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestParseDuration_Unparseable(t *testing.T) {
	for _, cell := range []string{"N/A", "h", "12:3x h", "02:13 hours", "1.5 h", "mins"} {
		got, ok := ParseDuration(cell)
		assert.False(t, ok, "expected %q to be rejected", cell)
		assert.Equal(t, 0.0, got, "unparseable cell must yield zero duration")
	}
}
