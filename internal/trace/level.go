package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // driver and passes, kept in the ring for failure dumps
	LevelPhase               // driver and passes, streamed
	LevelDetail              // plus per-file events
	LevelDebug               // plus evaluator calls
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// finest is the finest scope each level lets through.
var finest = [...]Scope{LevelOff: 0, LevelError: ScopePass, LevelPhase: ScopePass, LevelDetail: ScopeFile, LevelDebug: ScopeCall}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel maps a --trace-level value.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(finest) && scope != 0 && scope <= finest[l]
}
