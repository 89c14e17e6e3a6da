package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Values are stable; do not renumber.
type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnexpectedChar      Code = 1001
	LexUnterminatedString  Code = 1002
	LexInvalidEscape       Code = 1003
	LexInvalidNumber       Code = 1004
	LexUnterminatedComment Code = 1005

	// Синтаксические
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynInvalidExpression Code = 2003
	SynNestingTooDeep    Code = 2004

	// Разрешение имён
	ResUnresolvedName     Code = 3001
	ResDuplicateBinding   Code = 3002
	ResNonExhaustiveMatch Code = 3003

	// Времени выполнения
	RunIntegerOverflow  Code = 4001
	RunDivisionByZero   Code = 4002
	RunNoSuchField      Code = 4003
	RunNotCallable      Code = 4004
	RunArityMismatch    Code = 4005
	RunMatchFailure     Code = 4006
	RunStackOverflow    Code = 4007
	RunTypeMismatch     Code = 4008
	RunIndexOutOfBounds Code = 4009
	RunUseBeforeInit    Code = 4010
	RunAssertionFailed  Code = 4011
	RunPanic            Code = 4012
	RunHostError        Code = 4013
	RunCancelled        Code = 4014
)

var codeNames = map[Code]string{
	UnknownCode: "Unknown",

	LexUnexpectedChar:      "UnexpectedChar",
	LexUnterminatedString:  "UnterminatedString",
	LexInvalidEscape:       "InvalidEscape",
	LexInvalidNumber:       "InvalidNumber",
	LexUnterminatedComment: "UnterminatedComment",

	SynUnexpectedToken:   "UnexpectedToken",
	SynUnclosedDelimiter: "UnclosedDelimiter",
	SynInvalidExpression: "InvalidExpression",
	SynNestingTooDeep:    "NestingTooDeep",

	ResUnresolvedName:     "UnresolvedName",
	ResDuplicateBinding:   "DuplicateBinding",
	ResNonExhaustiveMatch: "NonExhaustiveMatch",

	RunIntegerOverflow:  "IntegerOverflow",
	RunDivisionByZero:   "DivisionByZero",
	RunNoSuchField:      "NoSuchField",
	RunNotCallable:      "NotCallable",
	RunArityMismatch:    "ArityMismatch",
	RunMatchFailure:     "MatchFailure",
	RunStackOverflow:    "StackOverflow",
	RunTypeMismatch:     "TypeMismatch",
	RunIndexOutOfBounds: "IndexOutOfBounds",
	RunUseBeforeInit:    "UseBeforeInit",
	RunAssertionFailed:  "AssertionFailed",
	RunPanic:            "Panic",
	RunHostError:        "HostError",
	RunCancelled:        "Cancelled",
}

// Stage returns the pipeline stage owning the code.
func (c Code) Stage() Stage {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return StageLex
	case ic >= 2000 && ic < 3000:
		return StageParse
	case ic >= 3000 && ic < 4000:
		return StageResolve
	case ic >= 4000 && ic < 5000:
		return StageRuntime
	}
	return StageNone
}

// ID returns the short stable identifier, e.g. "RUN4002".
func (c Code) ID() string {
	switch c.Stage() {
	case StageLex:
		return fmt.Sprintf("LEX%04d", int(c))
	case StageParse:
		return fmt.Sprintf("SYN%04d", int(c))
	case StageResolve:
		return fmt.Sprintf("RES%04d", int(c))
	case StageRuntime:
		return fmt.Sprintf("RUN%04d", int(c))
	}
	return "E0000"
}

// Name returns the variant name inside its error family, e.g. "DivisionByZero".
func (c Code) Name() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return codeNames[UnknownCode]
}

// String returns the qualified name, e.g. "RuntimeError::DivisionByZero".
func (c Code) String() string {
	return c.Stage().Family() + "::" + c.Name()
}
