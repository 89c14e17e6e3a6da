package eval

import (
	"errors"
	"strconv"

	"rustle/internal/ast"
	"rustle/internal/builtin"
	"rustle/internal/diag"
	"rustle/internal/resolve"
	"rustle/internal/source"
	"rustle/internal/symbols"
	"rustle/internal/trace"
	"rustle/internal/value"
)

// closure is the Impl of user fn items and closure expressions.
type closure struct {
	params []ast.Param
	body   ast.ExprID
	owner  symbols.ScopeOwner // parameter frame
	env    *frame
}

// variantCtor is the Impl of a tuple variant used as a function.
type variantCtor struct {
	decl    *symbols.TypeDecl
	variant int
}

func (e *Evaluator) makeFnItem(id ast.ItemID) value.Value {
	fn, _ := e.b.Items.Fn(id)
	item := e.b.Items.Get(id)
	return value.MakeFunc(&value.Func{
		Name:  item.Name,
		Arity: len(fn.Params),
		Impl:  &closure{params: fn.Params, body: fn.Body, owner: resolve.FnOwner(id), env: e.env},
	})
}

func (e *Evaluator) makeClosure(id ast.ExprID, d *ast.ClosureExpr) value.Value {
	return value.MakeFunc(&value.Func{
		Name:  "closure",
		Arity: len(d.Params),
		Impl:  &closure{params: d.Params, body: d.Body, owner: resolve.ExprOwner(id), env: e.env},
	})
}

// variantValue returns a unit variant as a value and a tuple variant as its
// constructor.
func variantValue(decl *symbols.TypeDecl, variant int) value.Value {
	v := decl.Variants[variant]
	if !v.Tuple {
		return value.MakeEnum(decl, variant, nil)
	}
	name := v.Name
	if !decl.IsPrelude() {
		name = decl.Name + "::" + v.Name
	}
	return value.MakeFunc(&value.Func{
		Name:  name,
		Arity: v.Arity,
		Impl:  &variantCtor{decl: decl, variant: variant},
	})
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// supplied renders "1 was supplied" / "3 were supplied".
func supplied(n int) string {
	if n == 1 {
		return "1 was supplied"
	}
	return strconv.Itoa(n) + " were supplied"
}

// callValue applies callee to already evaluated arguments.
func (e *Evaluator) callValue(callee value.Value, args []value.Value, sp source.Span) (value.Value, error) {
	e.stats.Calls++
	switch callee.Kind {
	case value.KindFunc:
		fn := callee.AsFunc()
		if len(args) != fn.Arity {
			return value.Value{}, e.faultf(diag.RunArityMismatch, sp,
				"function '%s' takes %d argument%s but %s", fn.Name, fn.Arity, plural(fn.Arity), supplied(len(args)))
		}
		switch impl := fn.Impl.(type) {
		case *closure:
			return e.callClosure(fn.Name, impl, args, sp)
		case *variantCtor:
			payload := make([]value.Value, len(args))
			for i, a := range args {
				payload[i] = value.Copy(a)
			}
			return value.MakeEnum(impl.decl, impl.variant, payload), nil
		}
	case value.KindBuiltin:
		return e.callBuiltin(callee.AsBuiltin(), args, sp)
	}
	return value.Value{}, e.faultf(diag.RunNotCallable, sp, "expected function, found %s", callee.TypeName())
}

func (e *Evaluator) callClosure(name string, c *closure, args []value.Value, sp source.Span) (value.Value, error) {
	if len(e.stack) >= e.opts.MaxCallDepth {
		return value.Value{}, e.faultf(diag.RunStackOverflow, sp,
			"stack overflow: call depth exceeded %d in '%s'", e.opts.MaxCallDepth, name)
	}
	if err := e.checkCancel(sp); err != nil {
		return value.Value{}, err
	}

	var span *trace.Span
	if e.tracer.Enabled() {
		span = trace.Begin(e.tracer, trace.ScopeCall, "call:"+name, e.parentSpan())
		e.spans = append(e.spans, span.ID())
	}

	e.stack = append(e.stack, activation{name: name, call: sp})
	if len(e.stack) > e.stats.MaxDepth {
		e.stats.MaxDepth = len(e.stack)
	}
	params := newFrame(e.res.FrameSize(c.owner), c.env)
	for i, a := range args {
		params.slots[i] = value.Copy(a)
	}
	saved := e.env
	e.env = params
	v, err := e.expr(c.body)
	e.env = saved
	e.stack = e.stack[:len(e.stack)-1]

	if span != nil {
		e.spans = e.spans[:len(e.spans)-1]
		detail := "ok"
		if err != nil {
			detail = "unwind"
		}
		span.End(detail)
	}

	if err != nil {
		var j *jump
		if errors.As(err, &j) && j.kind == jumpReturn {
			return j.value, nil
		}
		return value.Value{}, err
	}
	return v, nil
}

func (e *Evaluator) parentSpan() uint64 {
	if n := len(e.spans); n > 0 {
		return e.spans[n-1]
	}
	return trace.CurrentSpan(e.ctx).SpanID
}

func (e *Evaluator) callBuiltin(b *value.Builtin, args []value.Value, sp source.Span) (value.Value, error) {
	def := e.opts.Builtins.Def(b.Slot)
	if def == nil {
		return value.Value{}, e.faultf(diag.RunNotCallable, sp, "unknown builtin '%s'", b.Name)
	}
	if !def.Accepts(len(args)) {
		return value.Value{}, e.faultf(diag.RunArityMismatch, sp,
			"function '%s' takes %s argument%s but %s", def.Name, def.ArityText(), plural(def.Max), supplied(len(args)))
	}
	v, err := def.Fn(&builtin.Call{Name: def.Name, Out: e.opts.Out}, args)
	if err != nil {
		var be *builtin.Error
		if errors.As(err, &be) {
			return value.Value{}, e.faultf(be.Code, sp, "%s", be.Msg)
		}
		return value.Value{}, e.faultf(diag.RunHostError, sp, "host function '%s' failed: %v", def.Name, err)
	}
	if v.Kind == value.KindRef && def.Name == "Ref" && !def.Host {
		e.stats.Refs++
	}
	if v.IsZero() {
		v = value.Unit
	}
	return v, nil
}

func (e *Evaluator) args(ids []ast.ExprID) ([]value.Value, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]value.Value, len(ids))
	for i, id := range ids {
		v, err := e.expr(id)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *Evaluator) call(id ast.ExprID, sp source.Span) (value.Value, error) {
	d, _ := e.b.Exprs.Call(id)
	callee, err := e.expr(d.Callee)
	if err != nil {
		return value.Value{}, err
	}
	args, err := e.args(d.Args)
	if err != nil {
		return value.Value{}, err
	}
	return e.callValue(callee, args, sp)
}

// methodCall implements recv.f(args): a callable field f of a struct wins,
// otherwise f(recv, args...) is called.
func (e *Evaluator) methodCall(id ast.ExprID, sp source.Span) (value.Value, error) {
	d, _ := e.b.Exprs.MethodCall(id)
	recv, err := e.expr(d.Recv)
	if err != nil {
		return value.Value{}, err
	}
	args, err := e.args(d.Args)
	if err != nil {
		return value.Value{}, err
	}
	if recv.Kind == value.KindStruct {
		if f, ok := recv.AsStruct().Field(d.Name); ok && (f.Kind == value.KindFunc || f.Kind == value.KindBuiltin) {
			return e.callValue(f, args, sp)
		}
	}
	b, ok := e.res.Methods[id]
	if !ok {
		return value.Value{}, e.faultf(diag.RunNoSuchField, d.NameSpan,
			"no method named '%s' found for %s", d.Name, recv.TypeName())
	}
	callee, err := e.load(b, d.NameSpan)
	if err != nil {
		return value.Value{}, err
	}
	return e.callValue(callee, append([]value.Value{recv}, args...), sp)
}
