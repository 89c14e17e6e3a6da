package eval

import (
	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/source"
	"rustle/internal/value"
)

// assign evaluates the right-hand side before the target, like Rust.
func (e *Evaluator) assign(id ast.ExprID, sp source.Span) error {
	d, _ := e.b.Exprs.Assign(id)
	rhs, err := e.expr(d.Value)
	if err != nil {
		return err
	}
	op, compound := d.Op.Binary()

	target := e.unparen(d.Target)
	var ptr *value.Value
	if ix, ok := e.b.Exprs.Index(target); ok {
		container, key, err := e.indexOperands(ix)
		if err != nil {
			return err
		}
		if container.Kind == value.KindMap {
			return e.storeMapEntry(container.AsMap(), key, op, compound, rhs, e.exprSpan(ix.Index), sp)
		}
		if ptr, err = e.elemPlace(container, key, e.exprSpan(target), e.exprSpan(ix.Index)); err != nil {
			return err
		}
	} else if ptr, err = e.place(target); err != nil {
		return err
	}
	if compound {
		nv, err := e.apply(op, *ptr, rhs, sp)
		if err != nil {
			return err
		}
		*ptr = nv
		return nil
	}
	*ptr = value.Copy(rhs)
	return nil
}

func (e *Evaluator) unparen(id ast.ExprID) ast.ExprID {
	for {
		g, ok := e.b.Exprs.Group(id)
		if !ok {
			return id
		}
		id = g.Inner
	}
}

func (e *Evaluator) indexOperands(ix *ast.IndexExpr) (value.Value, value.Value, error) {
	container, err := e.expr(ix.Target)
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	key, err := e.expr(ix.Index)
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	return container, key, nil
}

// storeMapEntry handles m[k] = v, which inserts missing keys.
func (e *Evaluator) storeMapEntry(m *value.Map, key value.Value, op ast.BinaryOp, compound bool, rhs value.Value, keySpan, sp source.Span) error {
	nv := value.Copy(rhs)
	if compound {
		old, ok, kerr := m.Get(key)
		if kerr != nil {
			return e.typeMismatch(keySpan, "%v", kerr)
		}
		if !ok {
			return e.faultf(diag.RunIndexOutOfBounds, keySpan, "key %s not found in map", value.Debug(key))
		}
		var err error
		if nv, err = e.apply(op, old, rhs, sp); err != nil {
			return err
		}
	}
	if _, _, kerr := m.Insert(value.Copy(key), nv); kerr != nil {
		return e.typeMismatch(keySpan, "%v", kerr)
	}
	return nil
}

func (e *Evaluator) elemPlace(container, idx value.Value, sp, idxSpan source.Span) (*value.Value, error) {
	if container.Kind != value.KindVec {
		return nil, e.typeMismatch(sp, "cannot index into %s", container.TypeName())
	}
	elems := container.AsVec().Elems
	i, err := e.vecIndex(idx, len(elems), idxSpan)
	if err != nil {
		return nil, err
	}
	return &elems[i], nil
}

// place returns the storage an assignment writes to. Containers share their
// backing objects, so a field or element place is reached through a plain
// read of the container.
func (e *Evaluator) place(id ast.ExprID) (*value.Value, error) {
	x := e.b.Exprs.Get(id)
	switch x.Kind {
	case ast.ExprIdent:
		b, ok := e.res.Idents[id]
		if !ok {
			return nil, e.typeMismatch(x.Span, "invalid assignment target")
		}
		return e.slot(b, x.Span)
	case ast.ExprGroup:
		return e.place(e.unparen(id))
	case ast.ExprField:
		d, _ := e.b.Exprs.Field(id)
		container, err := e.expr(d.Target)
		if err != nil {
			return nil, err
		}
		if container.Kind == value.KindStruct {
			s := container.AsStruct()
			if i := s.Decl.FieldIndex(d.Name); i >= 0 {
				return &s.Fields[i], nil
			}
		}
		return nil, e.noSuchField(container, d.Name, d.NameSpan)
	case ast.ExprIndex:
		d, _ := e.b.Exprs.Index(id)
		container, idx, err := e.indexOperands(d)
		if err != nil {
			return nil, err
		}
		return e.elemPlace(container, idx, x.Span, e.exprSpan(d.Index))
	case ast.ExprUnary:
		d, _ := e.b.Exprs.Unary(id)
		if d.Op == ast.UnDeref {
			v, err := e.expr(d.Operand)
			if err != nil {
				return nil, err
			}
			if v.Kind != value.KindRef {
				return nil, e.typeMismatch(x.Span, "cannot dereference %s", v.TypeName())
			}
			return &v.AsRef().V, nil
		}
	}
	return nil, e.typeMismatch(x.Span, "invalid assignment target")
}

func (e *Evaluator) noSuchField(v value.Value, name string, sp source.Span) *Fault {
	return e.faultf(diag.RunNoSuchField, sp, "no field '%s' on type %s", name, v.TypeName())
}

func (e *Evaluator) vecIndex(idx value.Value, n int, sp source.Span) (int, error) {
	if idx.Kind != value.KindInt {
		return 0, e.typeMismatch(sp, "vector index must be Int, found %s", idx.TypeName())
	}
	if idx.Int < 0 || idx.Int >= int64(n) {
		return 0, e.faultf(diag.RunIndexOutOfBounds, sp, "index out of bounds: the len is %d but the index is %d", n, idx.Int)
	}
	return int(idx.Int), nil
}

func (e *Evaluator) field(id ast.ExprID) (value.Value, error) {
	d, _ := e.b.Exprs.Field(id)
	v, err := e.expr(d.Target)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind == value.KindStruct {
		if f, ok := v.AsStruct().Field(d.Name); ok {
			return f, nil
		}
	}
	return value.Value{}, e.noSuchField(v, d.Name, d.NameSpan)
}

func (e *Evaluator) index(id ast.ExprID, sp source.Span) (value.Value, error) {
	d, _ := e.b.Exprs.Index(id)
	container, idx, err := e.indexOperands(d)
	if err != nil {
		return value.Value{}, err
	}
	if container.Kind == value.KindMap {
		v, ok, kerr := container.AsMap().Get(idx)
		if kerr != nil {
			return value.Value{}, e.typeMismatch(e.exprSpan(d.Index), "%v", kerr)
		}
		if !ok {
			return value.Value{}, e.faultf(diag.RunIndexOutOfBounds, e.exprSpan(d.Index), "key %s not found in map", value.Debug(idx))
		}
		return v, nil
	}
	ptr, err := e.elemPlace(container, idx, sp, e.exprSpan(d.Index))
	if err != nil {
		return value.Value{}, err
	}
	return *ptr, nil
}

// structLit evaluates field initializers in source order.
func (e *Evaluator) structLit(id ast.ExprID, sp source.Span) (value.Value, error) {
	d, _ := e.b.Exprs.Struct(id)
	decl := e.res.ExprDecls[id].Decl
	fields := make([]value.Value, len(decl.Fields))
	for _, f := range d.Fields {
		v, err := e.expr(f.Value)
		if err != nil {
			return value.Value{}, err
		}
		fields[decl.FieldIndex(f.Name)] = value.Copy(v)
	}
	for i, f := range fields {
		if f.IsZero() {
			return value.Value{}, e.faultf(diag.RunNoSuchField, sp, "missing field '%s' in initializer of '%s'", decl.Fields[i], decl.Name)
		}
	}
	return value.MakeStruct(decl, fields), nil
}
