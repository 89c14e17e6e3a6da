package eval

import (
	"context"
	"errors"
	"fmt"
	"io"

	"rustle/internal/ast"
	"rustle/internal/builtin"
	"rustle/internal/diag"
	"rustle/internal/resolve"
	"rustle/internal/source"
	"rustle/internal/trace"
	"rustle/internal/value"
)

// DefaultMaxCallDepth bounds recursion when Options.MaxCallDepth is zero.
const DefaultMaxCallDepth = 1024

// Options configures an Evaluator.
type Options struct {
	MaxCallDepth int
	// Builtins must be the table whose Names() were given to the resolver.
	Builtins *builtin.Table
	// Out receives print output.
	Out    io.Writer
	Tracer trace.Tracer
}

// Program is a resolved file ready to run.
type Program struct {
	Builder  *ast.Builder
	File     ast.FileID
	Resolved *resolve.Result
}

// Stats describes one run.
type Stats struct {
	Calls    int
	MaxDepth int
	Refs     int
}

// Evaluator runs programs. It is not safe for concurrent use.
type Evaluator struct {
	opts   Options
	tracer trace.Tracer

	b     *ast.Builder
	res   *resolve.Result
	ctx   context.Context
	root  *frame
	env   *frame
	stack []activation
	spans []uint64
	stats Stats
}

// New creates an evaluator.
func New(opts Options) *Evaluator {
	if opts.MaxCallDepth <= 0 {
		opts.MaxCallDepth = DefaultMaxCallDepth
	}
	if opts.Builtins == nil {
		opts.Builtins = builtin.NewTable(nil)
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop
	}
	return &Evaluator{opts: opts, tracer: tr}
}

// Stats returns counters of the last run.
func (e *Evaluator) Stats() Stats { return e.stats }

// Run evaluates the program. When the file has no trailing expression and
// declares fn main() without parameters, main is called and its value is
// the result.
func (e *Evaluator) Run(ctx context.Context, prog Program) (value.Value, *Fault) {
	if ctx == nil {
		ctx = context.Background()
	}
	e.b = prog.Builder
	e.res = prog.Resolved
	e.ctx = ctx
	e.stack = e.stack[:0]
	e.spans = e.spans[:0]
	e.stats = Stats{}

	f := e.b.Files.Get(prog.File)
	if f == nil {
		return value.Unit, nil
	}
	e.root = newFrame(e.res.FrameSize(resolve.RootOwner(prog.File)), nil)
	e.env = e.root

	v, err := e.body(f.Body, f.Tail)
	if err == nil && !f.Tail.IsValid() && e.res.Main.IsValid() {
		v, err = e.callMain()
	}
	if err != nil {
		var j *jump
		if errors.As(err, &j) && j.kind == jumpReturn {
			return j.value, nil
		}
		return value.Value{}, e.asFault(err, f.Span)
	}
	return v, nil
}

func (e *Evaluator) callMain() (value.Value, error) {
	item := e.b.Items.Get(e.res.Main)
	fn := e.root.slots[e.res.Items[e.res.Main]]
	return e.callValue(fn, nil, item.NameSpan)
}

// asFault converts anything that escaped evaluation into a fault.
func (e *Evaluator) asFault(err error, sp source.Span) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return e.faultf(diag.RunPanic, sp, "internal error: %v", err)
}

// faultf builds a fault with the current backtrace.
func (e *Evaluator) faultf(code diag.Code, sp source.Span, format string, args ...any) *Fault {
	f := &Fault{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    sp,
	}
	if n := len(e.stack); n > 0 {
		f.Backtrace = make([]BacktraceFrame, n)
		for i := n - 1; i >= 0; i-- {
			f.Backtrace[n-1-i] = BacktraceFrame{FuncName: e.stack[i].name, Span: e.stack[i].call}
		}
	}
	return f
}

func (e *Evaluator) typeMismatch(sp source.Span, format string, args ...any) *Fault {
	return e.faultf(diag.RunTypeMismatch, sp, format, args...)
}

// checkCancel is polled at loop back-edges and calls.
func (e *Evaluator) checkCancel(sp source.Span) error {
	if err := e.ctx.Err(); err != nil {
		return e.faultf(diag.RunCancelled, sp, "evaluation cancelled: %v", err)
	}
	return nil
}

func (e *Evaluator) exprSpan(id ast.ExprID) source.Span {
	if x := e.b.Exprs.Get(id); x != nil {
		return x.Span
	}
	return source.Span{}
}

// load reads a resolved name.
func (e *Evaluator) load(b resolve.Binding, sp source.Span) (value.Value, error) {
	var v value.Value
	switch b.Kind {
	case resolve.BindLocal:
		v = e.env.up(b.Depth).slots[b.Slot]
	case resolve.BindGlobal:
		v = e.root.slots[b.Slot]
	case resolve.BindBuiltin:
		return value.MakeBuiltin(b.Name, b.Slot), nil
	case resolve.BindVariant:
		return variantValue(b.Decl, b.Slot), nil
	}
	if v.IsZero() {
		return value.Value{}, e.faultf(diag.RunUseBeforeInit, sp, "use of uninitialized binding '%s'", b.Name)
	}
	return v, nil
}

// slot returns the storage of an assignable name.
func (e *Evaluator) slot(b resolve.Binding, sp source.Span) (*value.Value, error) {
	switch b.Kind {
	case resolve.BindLocal:
		return &e.env.up(b.Depth).slots[b.Slot], nil
	case resolve.BindGlobal:
		return &e.root.slots[b.Slot], nil
	}
	return nil, e.typeMismatch(sp, "cannot assign to %s '%s'", b.Kind, b.Name)
}
