// Package rustle embeds a small Rust-like scripting language. Run takes
// source text through lexing, parsing, name resolution and evaluation and
// returns the final value together with any diagnostics.
package rustle

import (
	"context"
	"io"
	"strings"

	"rustle/internal/builtin"
	"rustle/internal/diag"
	"rustle/internal/diagfmt"
	"rustle/internal/driver"
	"rustle/internal/value"
)

type (
	// Value is a runtime value.
	Value = value.Value
	// Kind tags a Value.
	Kind = value.Kind
	// Builtin is a host function callable from scripts by name.
	Builtin = builtin.Func
	// Call is passed to every Builtin; Out receives print output.
	Call = builtin.Call
	// Diagnostic is one reported problem.
	Diagnostic = diag.Diagnostic
	// Stage names the pipeline stage a diagnostic came from.
	Stage = diag.Stage
	// ExecutionResult is the outcome of Run.
	ExecutionResult = driver.ExecutionResult
)

// Value kinds a host function can inspect.
const (
	KindUnit  = value.KindUnit
	KindBool  = value.KindBool
	KindInt   = value.KindInt
	KindFloat = value.KindFloat
	KindStr   = value.KindStr
	KindVec   = value.KindVec
	KindMap   = value.KindMap
)

// Stages reported in ExecutionResult.Stage.
const (
	StageLex     = diag.StageLex
	StageParse   = diag.StageParse
	StageResolve = diag.StageResolve
	StageRuntime = diag.StageRuntime
	StageDone    = diag.StageDone
)

// Options configure Run.
type Options struct {
	// Name labels the source in diagnostics; defaults to "main.rsl".
	Name string
	// MaxCallDepth bounds recursion; 0 keeps the default.
	MaxCallDepth int
	// CollectDiagnosticsOnly stops after name resolution.
	CollectDiagnosticsOnly bool
	// Builtins replace or extend the standard functions.
	Builtins map[string]Builtin
	// Stdout mirrors print output while the program runs. Output is
	// captured in the result either way.
	Stdout io.Writer
}

func (o Options) driver() driver.Options {
	return driver.Options{
		Name:                   o.Name,
		MaxCallDepth:           o.MaxCallDepth,
		CollectDiagnosticsOnly: o.CollectDiagnosticsOnly,
		Builtins:               o.Builtins,
		Stdout:                 o.Stdout,
	}
}

// Run executes src. It never panics on bad input: every failure is a
// diagnostic in the result.
func Run(ctx context.Context, src string, opts Options) ExecutionResult {
	return driver.Run(ctx, src, opts.driver())
}

// RunFile executes the file at path. The error reports I/O failures only.
func RunFile(ctx context.Context, path string, opts Options) (ExecutionResult, error) {
	return driver.RunFile(ctx, path, opts.driver())
}

// FormatDiagnostics renders the diagnostics of res one per line as
// "<severity>: <message> at line <L>, column <C>".
func FormatDiagnostics(res ExecutionResult) string {
	var sb strings.Builder
	_ = diagfmt.Plain(&sb, res.Diagnostics, res.FileSet)
	return sb.String()
}

// Constructors for host functions.

func Int(n int64) Value     { return value.MakeInt(n) }
func Float(f float64) Value { return value.MakeFloat(f) }
func Str(s string) Value    { return value.MakeStr(s) }
func Bool(b bool) Value     { return value.MakeBool(b) }
func Unit() Value           { return value.Unit }
func Some(v Value) Value    { return value.Some(v) }
func None() Value           { return value.None() }
func Vec(elems ...Value) Value {
	return value.MakeVec(elems)
}

// Display renders v the way print does.
func Display(v Value) string { return value.Display(v) }
