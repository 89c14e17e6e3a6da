package driver

import (
	"context"
	"io"

	"rustle/internal/builtin"
	"rustle/internal/observ"
	"rustle/internal/trace"
)

// DefaultFileName names in-memory sources in diagnostics.
const DefaultFileName = "main.rsl"

// Options configure one pipeline run.
type Options struct {
	// Name is the file name used for in-memory sources.
	Name string
	// MaxCallDepth bounds recursion; 0 selects eval.DefaultMaxCallDepth.
	MaxCallDepth int
	// CollectDiagnosticsOnly stops after resolution.
	CollectDiagnosticsOnly bool
	// Builtins are host functions callable by name. A host entry replaces a
	// standard built-in of the same name.
	Builtins       map[string]builtin.Func
	MaxDiagnostics int
	MaxNesting     int
	// Stdout mirrors print/println output as it happens.
	Stdout io.Writer
	// Tracer overrides the tracer carried by the context.
	Tracer trace.Tracer
	Timer  *observ.Timer
}

func (o Options) tracer(ctx context.Context) trace.Tracer {
	if o.Tracer != nil {
		return o.Tracer
	}
	return trace.FromContext(ctx)
}

func (o Options) fileName() string {
	if o.Name == "" {
		return DefaultFileName
	}
	return o.Name
}
