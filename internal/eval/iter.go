package eval

import (
	"unicode/utf8"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/resolve"
	"rustle/internal/source"
	"rustle/internal/value"
)

// forLoop iterates ranges lazily; vectors and map keys are snapshotted
// when the loop starts.
func (e *Evaluator) forLoop(id ast.ExprID, sp source.Span) (value.Value, error) {
	d, _ := e.b.Exprs.For(id)
	size := e.res.FrameSize(resolve.ExprOwner(id))
	run := func(item value.Value) (bool, error) {
		saved := e.env
		e.env = newFrame(size, saved)
		e.env.slots[0] = item
		_, err := e.expr(d.Body)
		e.env = saved
		done, _, err := loopStep(err)
		if done || err != nil {
			return true, err
		}
		return false, e.checkCancel(sp)
	}

	if r, ok := e.b.Exprs.Range(e.unparen(d.Iter)); ok {
		lo, hi, err := e.bounds(r)
		if err != nil {
			return value.Value{}, err
		}
		for i := lo; i < hi; i++ {
			if stop, err := run(value.MakeInt(i)); stop || err != nil {
				return value.Unit, err
			}
		}
		return value.Unit, nil
	}

	iter, err := e.expr(d.Iter)
	if err != nil {
		return value.Value{}, err
	}
	var items []value.Value
	switch iter.Kind {
	case value.KindVec:
		items = append([]value.Value(nil), iter.AsVec().Elems...)
	case value.KindMap:
		items = iter.AsMap().Keys()
	case value.KindStr:
		items = make([]value.Value, 0, utf8.RuneCountInString(iter.Str))
		for _, r := range iter.Str {
			items = append(items, value.MakeStr(string(r)))
		}
	default:
		return value.Value{}, e.typeMismatch(e.exprSpan(d.Iter), "%s is not iterable", iter.TypeName())
	}
	for _, it := range items {
		if stop, err := run(value.Copy(it)); stop || err != nil {
			return value.Unit, err
		}
	}
	return value.Unit, nil
}

func (e *Evaluator) bounds(r *ast.RangeExpr) (int64, int64, error) {
	lo, err := e.expr(r.Start)
	if err != nil {
		return 0, 0, err
	}
	hi, err := e.expr(r.End)
	if err != nil {
		return 0, 0, err
	}
	if lo.Kind != value.KindInt || hi.Kind != value.KindInt {
		return 0, 0, e.typeMismatch(e.exprSpan(r.Start).Cover(e.exprSpan(r.End)),
			"range bounds must be Int, found %s..%s", lo.TypeName(), hi.TypeName())
	}
	return lo.Int, hi.Int, nil
}

// maxRangeVec caps ranges materialised outside of for loops.
const maxRangeVec = 1 << 24

// rangeVec evaluates a..b used as a value into a vector of Ints.
func (e *Evaluator) rangeVec(id ast.ExprID) (value.Value, error) {
	r, _ := e.b.Exprs.Range(id)
	lo, hi, err := e.bounds(r)
	if err != nil {
		return value.Value{}, err
	}
	if n, ok := value.SubInt64Checked(hi, lo); !ok || n > maxRangeVec {
		return value.Value{}, e.faultf(diag.RunIndexOutOfBounds, e.exprSpan(id), "range %d..%d is too large to collect", lo, hi)
	}
	var elems []value.Value
	for i := lo; i < hi; i++ {
		elems = append(elems, value.MakeInt(i))
	}
	return value.MakeVec(elems), nil
}
