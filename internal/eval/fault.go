package eval

import (
	"fmt"
	"strings"

	"rustle/internal/diag"
	"rustle/internal/source"
)

// BacktraceFrame represents one active call when a fault was raised.
type BacktraceFrame struct {
	FuncName string
	Span     source.Span // call site
}

// Fault is a runtime error. Evaluation stops at the first fault.
type Fault struct {
	Code      diag.Code
	Message   string
	Span      source.Span      // where the fault was raised
	Backtrace []BacktraceFrame // innermost call first
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Code.ID(), f.Message)
}

// Diagnostic converts the fault for reporting. Each backtrace frame becomes
// a note at its call site.
func (f *Fault) Diagnostic() diag.Diagnostic {
	d := diag.NewError(f.Code, f.Span, f.Message)
	for _, fr := range f.Backtrace {
		d = d.WithNote(fr.Span, fmt.Sprintf("in call to '%s'", fr.FuncName))
	}
	return d
}

// FormatWithFiles formats the fault with resolved file:line:col information.
func (f *Fault) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder

	// Header: RUN4002 DivisionByZero: <message>
	fmt.Fprintf(&sb, "%s %s: %s\n", f.Code.ID(), f.Code.Name(), f.Message)
	sb.WriteString("at ")
	sb.WriteString(formatSpan(f.Span, files))
	sb.WriteString("\n")

	if len(f.Backtrace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, frame := range f.Backtrace {
			fmt.Fprintf(&sb, "  %d: %s at %s\n", i, frame.FuncName, formatSpan(frame.Span, files))
		}
	}
	return sb.String()
}

// formatSpan formats a span as "file:line:col" or "<no-span>".
func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || span == (source.Span{}) {
		return "<no-span>"
	}
	file := files.Get(span.File)
	if file == nil {
		return "<no-span>"
	}
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}
