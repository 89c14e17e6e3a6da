package eval

import (
	"errors"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/resolve"
	"rustle/internal/source"
	"rustle/internal/value"
)

func (e *Evaluator) expr(id ast.ExprID) (value.Value, error) {
	x := e.b.Exprs.Get(id)
	if x == nil {
		return value.Unit, nil
	}
	switch x.Kind {
	case ast.ExprLit:
		d, _ := e.b.Exprs.Literal(id)
		return literal(d), nil
	case ast.ExprIdent:
		b, ok := e.res.Idents[id]
		if !ok {
			d, _ := e.b.Exprs.Ident(id)
			return value.Value{}, e.faultf(diag.RunUseBeforeInit, x.Span, "unresolved name '%s'", d.Name)
		}
		return e.load(b, x.Span)
	case ast.ExprPath:
		ref := e.res.ExprDecls[id]
		return variantValue(ref.Decl, ref.Variant), nil
	case ast.ExprBinary:
		return e.binary(id, x.Span)
	case ast.ExprUnary:
		return e.unary(id, x.Span)
	case ast.ExprAssign:
		return value.Unit, e.assign(id, x.Span)
	case ast.ExprCall:
		return e.call(id, x.Span)
	case ast.ExprMethodCall:
		return e.methodCall(id, x.Span)
	case ast.ExprField:
		return e.field(id)
	case ast.ExprIndex:
		return e.index(id, x.Span)
	case ast.ExprStruct:
		return e.structLit(id, x.Span)
	case ast.ExprVec:
		d, _ := e.b.Exprs.Vec(id)
		elems, err := e.args(d.Elems)
		if err != nil {
			return value.Value{}, err
		}
		for i := range elems {
			elems[i] = value.Copy(elems[i])
		}
		return value.MakeVec(elems), nil
	case ast.ExprRange:
		return e.rangeVec(id)
	case ast.ExprIf:
		return e.ifExpr(id)
	case ast.ExprMatch:
		return e.match(id, x.Span)
	case ast.ExprBlock:
		return e.block(id)
	case ast.ExprLoop:
		return e.loop(id, x.Span)
	case ast.ExprWhile:
		return e.while(id, x.Span)
	case ast.ExprFor:
		return e.forLoop(id, x.Span)
	case ast.ExprClosure:
		d, _ := e.b.Exprs.Closure(id)
		return e.makeClosure(id, d), nil
	case ast.ExprGroup:
		d, _ := e.b.Exprs.Group(id)
		return e.expr(d.Inner)
	}
	return value.Value{}, e.faultf(diag.RunTypeMismatch, x.Span, "cannot evaluate %s expression", x.Kind)
}

// literal converts a decoded literal; neg applies to negative patterns.
// literal converts l to a value. Negative pattern literals already carry
// the negated number.
func literal(l *ast.Literal) value.Value {
	switch l.Kind {
	case ast.LitInt:
		return value.MakeInt(l.Int)
	case ast.LitFloat:
		return value.MakeFloat(l.Float)
	case ast.LitString:
		return value.MakeStr(l.Str)
	case ast.LitBool:
		return value.MakeBool(l.Bool)
	}
	return value.Unit
}

// block runs a block in a fresh frame.
func (e *Evaluator) block(id ast.ExprID) (value.Value, error) {
	d, _ := e.b.Exprs.Block(id)
	saved := e.env
	e.env = newFrame(e.res.FrameSize(resolve.ExprOwner(id)), saved)
	v, err := e.body(d.Stmts, d.Tail)
	e.env = saved
	return v, err
}

// body runs statements in the current frame. Fn items are bound before the
// first statement so they may be called from anywhere in the body.
func (e *Evaluator) body(stmts []ast.StmtID, tail ast.ExprID) (value.Value, error) {
	for _, id := range stmts {
		st, ok := e.b.Stmts.Item(id)
		if !ok {
			continue
		}
		if slot, ok := e.res.Items[st.Item]; ok {
			e.env.slots[slot] = e.makeFnItem(st.Item)
		}
	}
	for _, id := range stmts {
		if err := e.stmt(id); err != nil {
			return value.Value{}, err
		}
	}
	if tail.IsValid() {
		return e.expr(tail)
	}
	return value.Unit, nil
}

func (e *Evaluator) stmt(id ast.StmtID) error {
	st := e.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtLet:
		let, _ := e.b.Stmts.Let(id)
		if !let.Value.IsValid() {
			return nil
		}
		v, err := e.expr(let.Value)
		if err != nil {
			return err
		}
		e.env.slots[e.res.Lets[id]] = value.Copy(v)
	case ast.StmtExpr:
		es, _ := e.b.Stmts.Expr(id)
		_, err := e.expr(es.Expr)
		return err
	case ast.StmtReturn, ast.StmtBreak:
		j, _ := e.b.Stmts.Jump(id)
		v := value.Unit
		if j.Value.IsValid() {
			var err error
			if v, err = e.expr(j.Value); err != nil {
				return err
			}
		}
		kind := jumpReturn
		if st.Kind == ast.StmtBreak {
			kind = jumpBreak
		}
		return &jump{kind: kind, value: v}
	case ast.StmtContinue:
		return continueJump
	}
	return nil
}

func (e *Evaluator) cond(id ast.ExprID) (bool, error) {
	v, err := e.expr(id)
	if err != nil {
		return false, err
	}
	if v.Kind != value.KindBool {
		return false, e.typeMismatch(e.exprSpan(id), "expected Bool condition, found %s", v.TypeName())
	}
	return v.Bool, nil
}

func (e *Evaluator) ifExpr(id ast.ExprID) (value.Value, error) {
	d, _ := e.b.Exprs.If(id)
	ok, err := e.cond(d.Cond)
	if err != nil {
		return value.Value{}, err
	}
	if ok {
		return e.expr(d.Then)
	}
	if d.Else.IsValid() {
		return e.expr(d.Else)
	}
	return value.Unit, nil
}

// loopStep interprets the outcome of one loop body run.
// done is set for break; the value is the break value.
func loopStep(err error) (done bool, v value.Value, out error) {
	if err == nil {
		return false, value.Value{}, nil
	}
	var j *jump
	if errors.As(err, &j) {
		switch j.kind {
		case jumpContinue:
			return false, value.Value{}, nil
		case jumpBreak:
			return true, j.value, nil
		}
	}
	return true, value.Value{}, err
}

func (e *Evaluator) loop(id ast.ExprID, sp source.Span) (value.Value, error) {
	d, _ := e.b.Exprs.Loop(id)
	for {
		_, err := e.expr(d.Body)
		if done, v, err := loopStep(err); done {
			return v, err
		}
		if err := e.checkCancel(sp); err != nil {
			return value.Value{}, err
		}
	}
}

func (e *Evaluator) while(id ast.ExprID, sp source.Span) (value.Value, error) {
	d, _ := e.b.Exprs.While(id)
	for {
		ok, err := e.cond(d.Cond)
		if err != nil {
			return value.Value{}, err
		}
		if !ok {
			return value.Unit, nil
		}
		_, err = e.expr(d.Body)
		if done, _, err := loopStep(err); done {
			return value.Unit, err
		}
		if err := e.checkCancel(sp); err != nil {
			return value.Value{}, err
		}
	}
}
