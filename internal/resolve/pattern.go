package resolve

import (
	"rustle/internal/ast"
	"rustle/internal/source"
	"rustle/internal/symbols"
)

// occurrence is one binding site inside a pattern.
type occurrence struct {
	name  string
	pat   ast.PatID
	field int // -1 for a PatBinding, otherwise the shorthand field index
}

type patNames struct {
	order []string
	spans map[string]source.Span
	occ   []occurrence
}

func newPatNames() patNames {
	return patNames{spans: make(map[string]source.Span)}
}

func (pn *patNames) has(name string) bool {
	_, ok := pn.spans[name]
	return ok
}

// pattern declares the names bound by a match-arm pattern in the current scope.
// Alternatives of an or-pattern share one slot per name.
func (r *resolver) pattern(id ast.PatID) {
	pn := r.patNames(id)
	slots := make(map[string]int, len(pn.order))
	for _, name := range pn.order {
		if sym, ok := r.declare(name, pn.spans[name], symbols.SymbolPattern, 0); ok {
			slots[name] = sym.Slot
		}
	}
	for _, o := range pn.occ {
		slot, ok := slots[o.name]
		if !ok {
			continue
		}
		if o.field < 0 {
			r.res.PatSlots[o.pat] = slot
		} else {
			r.res.FieldSlots[FieldKey{Pat: o.pat, Field: o.field}] = slot
		}
	}
}

// merge adds src into dst; a name bound twice is a duplicate.
func (r *resolver) merge(dst *patNames, src patNames) {
	for _, name := range src.order {
		if dst.has(name) {
			r.duplicate("binding", name, src.spans[name], dst.spans[name])
			continue
		}
		dst.order = append(dst.order, name)
		dst.spans[name] = src.spans[name]
	}
	dst.occ = append(dst.occ, src.occ...)
}

func (r *resolver) patNames(id ast.PatID) patNames {
	pn := newPatNames()
	p := r.b.Pats.Get(id)
	if p == nil {
		return pn
	}
	switch p.Kind {
	case ast.PatWild, ast.PatLit:
	case ast.PatBinding:
		d, _ := r.b.Pats.Binding(id)
		if ref, ok := r.bareUnitVariant(d.Name); ok {
			r.res.PatDecls[id] = ref
			return pn
		}
		pn.order = append(pn.order, d.Name)
		pn.spans[d.Name] = p.Span
		pn.occ = append(pn.occ, occurrence{name: d.Name, pat: id, field: -1})
	case ast.PatVariant:
		d, _ := r.b.Pats.Variant(id)
		var (
			ref symbols.DeclRef
			ok  bool
		)
		if d.Enum == "" {
			ref, ok = r.preludeVariant(d.Variant, d.NameSpan)
		} else {
			ref, ok = r.variantRef(d.Enum, p.Span, d.Variant, d.NameSpan)
		}
		if ok {
			v := ref.Decl.Variants[ref.Variant]
			if v.Tuple != d.Tuple || v.Arity != len(d.Args) {
				r.unresolved(p.Span, "this pattern has %d field(s), but variant '%s' has %d", len(d.Args), v.Name, v.Arity)
			} else {
				r.res.PatDecls[id] = ref
			}
		}
		for _, arg := range d.Args {
			r.merge(&pn, r.patNames(arg))
		}
	case ast.PatStruct:
		r.structPatNames(id, &pn)
	case ast.PatOr:
		d, _ := r.b.Pats.Or(id)
		alts := make([]patNames, len(d.Alts))
		for i, alt := range d.Alts {
			alts[i] = r.patNames(alt)
		}
		r.merge(&pn, alts[0])
		for i := 1; i < len(alts); i++ {
			for _, name := range alts[i].order {
				if !alts[0].has(name) {
					r.unresolved(alts[i].spans[name], "variable '%s' is not bound in all patterns", name)
				}
			}
			for _, name := range alts[0].order {
				if !alts[i].has(name) {
					r.unresolved(r.patSpan(d.Alts[i]), "variable '%s' is not bound in all patterns", name)
				}
			}
			pn.occ = append(pn.occ, alts[i].occ...)
		}
	}
	return pn
}

func (r *resolver) structPatNames(id ast.PatID, pn *patNames) {
	d, _ := r.b.Pats.Struct(id)
	var decl *symbols.TypeDecl
	if sym, ok := r.lookupType(d.Name); ok && sym.Kind == symbols.SymbolStruct {
		decl = sym.Decl
		r.res.PatDecls[id] = symbols.DeclRef{Decl: decl}
	} else {
		r.unresolved(d.NameSpan, "cannot find struct '%s' in this scope", d.Name)
	}
	seen := make(map[string]source.Span, len(d.Fields))
	for i, f := range d.Fields {
		if prev, dup := seen[f.Name]; dup {
			r.duplicate("field", f.Name, f.Span, prev)
			continue
		}
		seen[f.Name] = f.Span
		if decl != nil && decl.FieldIndex(f.Name) < 0 {
			r.unresolved(f.Span, "struct '%s' has no field named '%s'", d.Name, f.Name)
		}
		if f.Pat.IsValid() {
			r.merge(pn, r.patNames(f.Pat))
			continue
		}
		short := newPatNames()
		short.order = []string{f.Name}
		short.spans[f.Name] = f.Span
		short.occ = []occurrence{{name: f.Name, pat: id, field: i}}
		r.merge(pn, short)
	}
}

// bareUnitVariant reports whether name, as seen from here, is a prelude unit
// variant such as None.
func (r *resolver) bareUnitVariant(name string) (symbols.DeclRef, bool) {
	hit, ok := r.sr.Lookup(name, symbols.NSValue)
	if !ok {
		return symbols.DeclRef{}, false
	}
	sym := r.res.Table.Symbols.Get(hit.Symbol)
	if sym.Kind != symbols.SymbolVariant || sym.Decl.Variants[sym.Slot].Tuple {
		return symbols.DeclRef{}, false
	}
	return symbols.DeclRef{Decl: sym.Decl, Variant: sym.Slot}, true
}

func (r *resolver) preludeVariant(name string, sp source.Span) (symbols.DeclRef, bool) {
	hit, ok := r.sr.Lookup(name, symbols.NSValue)
	if ok {
		if sym := r.res.Table.Symbols.Get(hit.Symbol); sym.Kind == symbols.SymbolVariant {
			return symbols.DeclRef{Decl: sym.Decl, Variant: sym.Slot}, true
		}
	}
	r.unresolved(sp, "cannot find variant '%s' in this scope", name)
	return symbols.DeclRef{}, false
}
