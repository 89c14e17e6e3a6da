package driver

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"rustle/internal/diag"
	"rustle/internal/eval"
	"rustle/internal/source"
	"rustle/internal/trace"
	"rustle/internal/value"
)

// ExecutionResult is the outcome of Run.
type ExecutionResult struct {
	FileSet *source.FileSet
	File    *source.File

	Value value.Value
	// Printed is the display form of Value.
	Printed string
	// Output is everything print and println wrote.
	Output string

	// Diagnostics of the first failing stage, or warnings on success.
	Diagnostics []diag.Diagnostic
	Stage       diag.Stage
	Fault       *eval.Fault
	Stats       eval.Stats
}

// OK reports whether every stage succeeded.
func (r *ExecutionResult) OK() bool { return r.Stage == diag.StageDone }

// Run executes src as one program.
func Run(ctx context.Context, src string, opts Options) ExecutionResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(opts.fileName(), []byte(src)))
	return runFile(ctx, fs, file, opts)
}

// RunFile loads and executes the program at path. The error covers loading
// only; language errors are reported through the result.
func RunFile(ctx context.Context, path string, opts Options) (ExecutionResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("load %s: %w", path, err)
	}
	return runFile(ctx, fs, fs.Get(id), opts), nil
}

func runFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) ExecutionResult {
	tr := opts.tracer(ctx)
	root := trace.Begin(tr, trace.ScopeDriver, "run", trace.CurrentSpan(ctx).SpanID)
	res := ExecutionResult{FileSet: fs, File: file, Value: value.Unit}

	u := compile(fs, file, opts, tr, root.ID())
	if u.bag.HasErrors() || opts.CollectDiagnosticsOnly {
		res.Stage, res.Diagnostics = outcome(u.bag)
		if res.OK() {
			res.Printed = value.Display(res.Value)
		}
		root.End(res.Stage.String())
		return res
	}

	var out bytes.Buffer
	w := io.Writer(&out)
	if opts.Stdout != nil {
		w = io.MultiWriter(&out, opts.Stdout)
	}

	span := trace.Begin(tr, trace.ScopePass, "eval", root.ID())
	idx := opts.Timer.Begin("eval")
	ev := eval.New(eval.Options{
		MaxCallDepth: opts.MaxCallDepth,
		Builtins:     u.table,
		Out:          w,
		Tracer:       tr,
	})
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	v, fault := ev.Run(ctx, eval.Program{Builder: u.builder, File: u.astFile, Resolved: u.resolved})
	res.Stats = ev.Stats()
	res.Output = out.String()
	opts.Timer.End(idx, fmt.Sprintf("calls=%d", res.Stats.Calls))

	if fault != nil {
		span.End("fault")
		res.Fault = fault
		u.bag.Merge(singleBag(fault.Diagnostic()))
	} else {
		span.End("ok")
		res.Value = v
		res.Printed = value.Display(v)
	}
	res.Stage, res.Diagnostics = outcome(u.bag)
	root.End(res.Stage.String())
	return res
}

// singleBag wraps d so it bypasses the diagnostic limit of the run.
func singleBag(d diag.Diagnostic) *diag.Bag {
	b := diag.NewBag(0)
	b.Add(d)
	return b
}
