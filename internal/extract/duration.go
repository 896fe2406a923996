package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Duration cells appear in three shapes depending on magnitude:
//
//	"02:13 h"     hours and minutes
//	"21:40 mins"  minutes and seconds
//	"45 s"        bare seconds
//
// Unit markers are matched case-insensitively after lowercasing.
var (
	reDurHours   = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*h$`)
	reDurMinutes = regexp.MustCompile(`^(\d{1,3}):(\d{2})\s*mins$`)
	reDurSeconds = regexp.MustCompile(`^(\d+)\s*s$`)
)

// ParseDuration converts a report duration cell into minutes.
// An empty cell is a valid zero duration. Any other unrecognized
// content returns ok=false with a zero duration so the caller can
// record an issue and keep going.
func ParseDuration(cell string) (minutes float64, ok bool) {
	s := strings.ToLower(strings.TrimSpace(cell))
	if s == "" || s == "-" {
		return 0, true
	}
	if m := reDurHours.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		return float64(h*60 + min), true
	}
	if m := reDurMinutes.FindStringSubmatch(s); m != nil {
		min, _ := strconv.Atoi(m[1])
		sec, _ := strconv.Atoi(m[2])
		return float64(min) + float64(sec)/60, true
	}
	if m := reDurSeconds.FindStringSubmatch(s); m != nil {
		sec, _ := strconv.Atoi(m[1])
		return float64(sec) / 60, true
	}
	return 0, false
}
