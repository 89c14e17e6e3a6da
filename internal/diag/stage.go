package diag

// Stage names a pipeline stage. Stages are ordered; a later stage never
// runs after an earlier one reported an error.
type Stage uint8

const (
	StageNone Stage = iota
	StageLex
	StageParse
	StageResolve
	StageRuntime
	// StageDone marks a pipeline that finished without errors.
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageResolve:
		return "resolve"
	case StageRuntime:
		return "runtime"
	case StageDone:
		return "done"
	}
	return "none"
}

// Family returns the error family name used in qualified codes.
func (s Stage) Family() string {
	switch s {
	case StageLex:
		return "LexError"
	case StageParse:
		return "ParseError"
	case StageResolve:
		return "ResolveError"
	case StageRuntime:
		return "RuntimeError"
	}
	return "Error"
}
