package eval

import (
	"math"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/source"
	"rustle/internal/value"
)

var overflowText = [...]string{
	ast.BinAdd: "add",
	ast.BinSub: "subtract",
	ast.BinMul: "multiply",
	ast.BinDiv: "divide",
	ast.BinRem: "calculate the remainder",
}

func (e *Evaluator) binary(id ast.ExprID, sp source.Span) (value.Value, error) {
	d, _ := e.b.Exprs.Binary(id)
	if d.Op == ast.BinAnd || d.Op == ast.BinOr {
		return e.logical(d)
	}
	l, err := e.expr(d.Left)
	if err != nil {
		return value.Value{}, err
	}
	r, err := e.expr(d.Right)
	if err != nil {
		return value.Value{}, err
	}
	return e.apply(d.Op, l, r, sp)
}

// logical short-circuits && and ||.
func (e *Evaluator) logical(d *ast.BinaryExpr) (value.Value, error) {
	l, err := e.cond(d.Left)
	if err != nil {
		return value.Value{}, err
	}
	if d.Op == ast.BinAnd && !l || d.Op == ast.BinOr && l {
		return value.MakeBool(l), nil
	}
	r, err := e.cond(d.Right)
	if err != nil {
		return value.Value{}, err
	}
	return value.MakeBool(r), nil
}

// apply evaluates a non-short-circuit binary operator.
func (e *Evaluator) apply(op ast.BinaryOp, l, r value.Value, sp source.Span) (value.Value, error) {
	switch op {
	case ast.BinEq:
		return value.MakeBool(value.Equal(l, r)), nil
	case ast.BinNe:
		return value.MakeBool(!value.Equal(l, r)), nil
	case ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		return e.compare(op, l, r, sp)
	}
	if l.Kind != r.Kind {
		return value.Value{}, e.typeMismatch(sp, "cannot apply '%s' to %s and %s", op, l.TypeName(), r.TypeName())
	}
	switch l.Kind {
	case value.KindInt:
		return e.intArith(op, l.Int, r.Int, sp)
	case value.KindFloat:
		return value.MakeFloat(floatArith(op, l.Float, r.Float)), nil
	case value.KindStr:
		if op == ast.BinAdd {
			return value.MakeStr(l.Str + r.Str), nil
		}
	}
	return value.Value{}, e.typeMismatch(sp, "cannot apply '%s' to %s and %s", op, l.TypeName(), r.TypeName())
}

func (e *Evaluator) intArith(op ast.BinaryOp, a, b int64, sp source.Span) (value.Value, error) {
	if (op == ast.BinDiv || op == ast.BinRem) && b == 0 {
		msg := "attempt to divide by zero"
		if op == ast.BinRem {
			msg = "attempt to calculate the remainder with a divisor of zero"
		}
		return value.Value{}, e.faultf(diag.RunDivisionByZero, sp, "%s", msg)
	}
	var (
		n  int64
		ok bool
	)
	switch op {
	case ast.BinAdd:
		n, ok = value.AddInt64Checked(a, b)
	case ast.BinSub:
		n, ok = value.SubInt64Checked(a, b)
	case ast.BinMul:
		n, ok = value.MulInt64Checked(a, b)
	case ast.BinDiv:
		n, ok = value.DivInt64Checked(a, b)
	case ast.BinRem:
		n, ok = value.RemInt64Checked(a, b)
	}
	if !ok {
		return value.Value{}, e.faultf(diag.RunIntegerOverflow, sp, "attempt to %s with overflow", overflowText[op])
	}
	return value.MakeInt(n), nil
}

// floatArith follows IEEE 754: x/0.0 is ±inf, 0.0/0.0 is NaN.
func floatArith(op ast.BinaryOp, a, b float64) float64 {
	switch op {
	case ast.BinAdd:
		return a + b
	case ast.BinSub:
		return a - b
	case ast.BinMul:
		return a * b
	case ast.BinDiv:
		return a / b
	}
	return math.Mod(a, b)
}

func (e *Evaluator) compare(op ast.BinaryOp, l, r value.Value, sp source.Span) (value.Value, error) {
	if !value.Comparable(l, r) {
		return value.Value{}, e.typeMismatch(sp, "cannot compare %s with %s", l.TypeName(), r.TypeName())
	}
	o := value.Compare(l, r)
	if o == value.Unordered {
		return value.MakeBool(false), nil
	}
	var res bool
	switch op {
	case ast.BinLt:
		res = o == value.Less
	case ast.BinLe:
		res = o != value.Greater
	case ast.BinGt:
		res = o == value.Greater
	case ast.BinGe:
		res = o != value.Less
	}
	return value.MakeBool(res), nil
}

func (e *Evaluator) unary(id ast.ExprID, sp source.Span) (value.Value, error) {
	d, _ := e.b.Exprs.Unary(id)
	v, err := e.expr(d.Operand)
	if err != nil {
		return value.Value{}, err
	}
	switch d.Op {
	case ast.UnNeg:
		switch v.Kind {
		case value.KindInt:
			n, ok := value.NegInt64Checked(v.Int)
			if !ok {
				return value.Value{}, e.faultf(diag.RunIntegerOverflow, sp, "attempt to negate with overflow")
			}
			return value.MakeInt(n), nil
		case value.KindFloat:
			return value.MakeFloat(-v.Float), nil
		}
	case ast.UnNot:
		if v.Kind == value.KindBool {
			return value.MakeBool(!v.Bool), nil
		}
	case ast.UnDeref:
		if v.Kind == value.KindRef {
			return v.AsRef().V, nil
		}
		return value.Value{}, e.typeMismatch(sp, "cannot dereference %s", v.TypeName())
	}
	return value.Value{}, e.typeMismatch(sp, "cannot apply unary '%s' to %s", d.Op, v.TypeName())
}
