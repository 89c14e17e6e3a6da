package eval

import (
	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/resolve"
	"rustle/internal/source"
	"rustle/internal/symbols"
	"rustle/internal/value"
)

// match tries arms top to bottom. Each attempt gets a fresh arm frame.
func (e *Evaluator) match(id ast.ExprID, sp source.Span) (value.Value, error) {
	d, _ := e.b.Exprs.Match(id)
	scrut, err := e.expr(d.Scrutinee)
	if err != nil {
		return value.Value{}, err
	}
	saved := e.env
	for i, arm := range d.Arms {
		f := newFrame(e.res.FrameSize(resolve.ArmOwner(id, i)), saved)
		if !e.matchPat(arm.Pattern, scrut, f) {
			continue
		}
		e.env = f
		if arm.Guard.IsValid() {
			ok, err := e.cond(arm.Guard)
			if err != nil || !ok {
				e.env = saved
				if err != nil {
					return value.Value{}, err
				}
				continue
			}
		}
		v, err := e.expr(arm.Body)
		e.env = saved
		return v, err
	}
	return value.Value{}, e.faultf(diag.RunMatchFailure, sp, "no match arm matched value %s", value.Qualified(scrut))
}

// matchPat tests v against the pattern and binds names into f.
func (e *Evaluator) matchPat(id ast.PatID, v value.Value, f *frame) bool {
	p := e.b.Pats.Get(id)
	switch p.Kind {
	case ast.PatWild:
		return true
	case ast.PatBinding:
		if ref, ok := e.res.PatDecls[id]; ok {
			return isVariant(v, ref.Decl, ref.Variant)
		}
		f.slots[e.res.PatSlots[id]] = value.Copy(v)
		return true
	case ast.PatLit:
		d, _ := e.b.Pats.Lit(id)
		return value.Equal(v, literal(&d.Lit))
	case ast.PatVariant:
		d, _ := e.b.Pats.Variant(id)
		ref := e.res.PatDecls[id]
		if !isVariant(v, ref.Decl, ref.Variant) {
			return false
		}
		payload := v.AsEnum().Payload
		for i, arg := range d.Args {
			if !e.matchPat(arg, payload[i], f) {
				return false
			}
		}
		return true
	case ast.PatStruct:
		d, _ := e.b.Pats.Struct(id)
		decl := e.res.PatDecls[id].Decl
		if v.Kind != value.KindStruct || v.AsStruct().Decl != decl {
			return false
		}
		fields := v.AsStruct().Fields
		for i, fp := range d.Fields {
			fv := fields[decl.FieldIndex(fp.Name)]
			if fp.Pat.IsValid() {
				if !e.matchPat(fp.Pat, fv, f) {
					return false
				}
				continue
			}
			f.slots[e.res.FieldSlots[resolve.FieldKey{Pat: id, Field: i}]] = value.Copy(fv)
		}
		return true
	case ast.PatOr:
		d, _ := e.b.Pats.Or(id)
		for _, alt := range d.Alts {
			if e.matchPat(alt, v, f) {
				return true
			}
		}
	}
	return false
}

func isVariant(v value.Value, decl *symbols.TypeDecl, variant int) bool {
	if v.Kind != value.KindEnum {
		return false
	}
	en := v.AsEnum()
	return en.Decl == decl && en.Variant == variant
}
