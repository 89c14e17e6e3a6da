// Package repl keeps the state of an interactive session. Every accepted
// input is appended to the session source and the whole program is run
// again; output already shown is cut off the front.
package repl

import (
	"context"
	"strings"

	"rustle/internal/diag"
	"rustle/internal/driver"
	"rustle/internal/value"
)

// SessionName labels REPL input in diagnostics.
const SessionName = "<repl>"

// Session is the accumulated program of one REPL run.
type Session struct {
	opts   driver.Options
	chunks []string
	output string
}

// Reply is what one input produced.
type Reply struct {
	// Output is the part of print/println output that this input added.
	Output string
	// Value is the display form of the result; empty for unit.
	Value  string
	Result driver.ExecutionResult
}

// OK reports whether the input was accepted into the session.
func (r *Reply) OK() bool { return r.Result.OK() }

// NewSession returns an empty session. opts.Name and opts.Stdout are
// overridden.
func NewSession(opts driver.Options) *Session {
	opts.Name = SessionName
	opts.Stdout = nil
	return &Session{opts: opts}
}

// Eval runs the session with input appended. The input is kept only when
// every stage succeeds.
func (s *Session) Eval(ctx context.Context, input string) Reply {
	src := s.sourceWith(input)
	res := driver.Run(ctx, src, s.opts)
	reply := Reply{Result: res}
	if !res.OK() {
		return reply
	}

	if strings.HasPrefix(res.Output, s.output) {
		reply.Output = res.Output[len(s.output):]
	} else {
		reply.Output = res.Output
	}
	if res.Value.Kind != value.KindUnit {
		reply.Value = res.Printed
	}
	s.chunks = append(s.chunks, terminate(input))
	s.output = res.Output
	return reply
}

// Source returns the accepted program.
func (s *Session) Source() string { return strings.Join(s.chunks, "\n") }

// Len is the number of accepted inputs.
func (s *Session) Len() int { return len(s.chunks) }

// Reset forgets every accepted input.
func (s *Session) Reset() {
	s.chunks = nil
	s.output = ""
}

func (s *Session) sourceWith(input string) string {
	if len(s.chunks) == 0 {
		return input
	}
	return s.Source() + "\n" + input
}

// terminate turns a trailing expression into a statement so that later
// inputs can follow it.
func terminate(input string) string {
	trimmed := strings.TrimRight(input, " \t\r\n")
	if trimmed == "" || strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}") {
		return trimmed
	}
	return trimmed + ";"
}

// Incomplete reports whether src stops inside an open delimiter, string
// or block comment, so the prompt should ask for more lines.
func Incomplete(src string) bool {
	res := driver.ParseSource(src, driver.Options{Name: SessionName})
	for _, d := range res.Bag.Items() {
		switch d.Code {
		case diag.SynUnclosedDelimiter, diag.LexUnterminatedString, diag.LexUnterminatedComment:
			return true
		}
	}
	return false
}
