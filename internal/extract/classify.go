package extract

import "math"

// Classification of a lone recorded timestamp.
type Classification int

const (
	ClassExit Classification = iota
	ClassEntry
)

func (c Classification) String() string {
	if c == ClassEntry {
		return "entry"
	}
	return "exit"
}

// Time constants in minutes.
const (
	midday  = 12 * 60
	halfDay = 12 * 60
	fullDay = 24 * 60

	// MatchTolerance is the ±band within which a recorded duration is
	// considered to match a computed midnight-boundary interval.
	MatchTolerance = 30.0
)

// ClassifyInput describes one single-timestamp cell.
type ClassifyInput struct {
	Minute        int     // minutes since midnight of the recorded timestamp
	Duration      float64 // recorded duration in minutes
	DurationKnown bool    // false when the duration cell was unreadable
}

// ClassifyResult carries the classification plus the name of the rule
// that produced it. Fallback marks the lowest-confidence answer, based
// only on the time-of-day prior; downstream consumers may discount it.
type ClassifyResult struct {
	Class    Classification
	Rule     string
	Fallback bool
}

type classifyRule func(in ClassifyInput) (ClassifyResult, bool)

// classifyRules are evaluated in fixed order and the first match wins.
// Reordering changes outcomes on ambiguous inputs, so the order is part
// of the contract. The duration-matching rules come first because they
// are falsifiable; the time-of-day prior only fires when duration
// arithmetic is inconclusive.
var classifyRules = []classifyRule{
	ruleMorningShort,
	ruleMorningLong,
	ruleAfternoonShort,
	ruleAfternoonLong,
	ruleTimeOfDay,
}

// Classify determines whether a lone timestamp marks an exit or an entry.
func Classify(in ClassifyInput) ClassifyResult {
	for _, rule := range classifyRules {
		if res, ok := rule(in); ok {
			return res
		}
	}
	// Unreachable: ruleTimeOfDay always matches.
	return ClassifyResult{Class: ClassExit, Rule: "none", Fallback: true}
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= MatchTolerance
}

// ruleMorningShort: before midday with a sub-12h duration. A duration
// matching the elapsed time since midnight means the pet was out
// overnight and this timestamp is the return.
func ruleMorningShort(in ClassifyInput) (ClassifyResult, bool) {
	if !in.DurationKnown || in.Minute >= midday || in.Duration >= halfDay {
		return ClassifyResult{}, false
	}
	if near(in.Duration, float64(in.Minute)) {
		return ClassifyResult{Class: ClassEntry, Rule: "morning-since-midnight"}, true
	}
	return ClassifyResult{Class: ClassExit, Rule: "morning-no-match"}, true
}

// ruleMorningLong: before midday with a 12h+ duration. Test both
// midnight boundaries; the unresolved case defaults to entry, the more
// common morning outcome.
func ruleMorningLong(in ClassifyInput) (ClassifyResult, bool) {
	if !in.DurationKnown || in.Minute >= midday || in.Duration < halfDay {
		return ClassifyResult{}, false
	}
	if near(in.Duration, float64(in.Minute)) {
		return ClassifyResult{Class: ClassEntry, Rule: "morning-long-since-midnight"}, true
	}
	if near(in.Duration, float64(fullDay-in.Minute)) {
		return ClassifyResult{Class: ClassExit, Rule: "morning-long-until-midnight"}, true
	}
	return ClassifyResult{Class: ClassEntry, Rule: "morning-long-default"}, true
}

// ruleAfternoonShort: at/after midday with a sub-12h duration. A
// duration matching the time left until midnight means the excursion
// runs past midnight and this timestamp is the departure.
func ruleAfternoonShort(in ClassifyInput) (ClassifyResult, bool) {
	if !in.DurationKnown || in.Minute < midday || in.Duration >= halfDay {
		return ClassifyResult{}, false
	}
	if near(in.Duration, float64(fullDay-in.Minute)) {
		return ClassifyResult{Class: ClassExit, Rule: "afternoon-until-midnight"}, true
	}
	return ClassifyResult{Class: ClassEntry, Rule: "afternoon-no-match"}, true
}

// ruleAfternoonLong: at/after midday with a 12h+ duration. The
// unresolved case defaults to exit, the more common evening outcome.
func ruleAfternoonLong(in ClassifyInput) (ClassifyResult, bool) {
	if !in.DurationKnown || in.Minute < midday || in.Duration < halfDay {
		return ClassifyResult{}, false
	}
	if near(in.Duration, float64(in.Minute)) {
		return ClassifyResult{Class: ClassEntry, Rule: "afternoon-long-since-midnight"}, true
	}
	if near(in.Duration, float64(fullDay-in.Minute)) {
		return ClassifyResult{Class: ClassExit, Rule: "afternoon-long-until-midnight"}, true
	}
	return ClassifyResult{Class: ClassExit, Rule: "afternoon-long-default"}, true
}

// ruleTimeOfDay is the last resort when no duration arithmetic applies:
// mornings are usually returns, afternoons usually departures.
func ruleTimeOfDay(in ClassifyInput) (ClassifyResult, bool) {
	if in.Minute < midday {
		return ClassifyResult{Class: ClassEntry, Rule: "time-of-day-fallback", Fallback: true}, true
	}
	return ClassifyResult{Class: ClassExit, Rule: "time-of-day-fallback", Fallback: true}, true
}
