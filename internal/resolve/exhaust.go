package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/symbols"
)

// Проверка полноты match по матрице шаблонов (usefulness, Maranget).

type ctorKind uint8

const (
	ctorWild ctorKind = iota
	ctorOr
	ctorVariant
	ctorStruct
	ctorBool
	ctorLit // int, float, string: бесконечное множество
)

type ctor struct {
	kind ctorKind
	decl *symbols.TypeDecl
	idx  int    // variant index, or 0/1 for false/true
	lit  string // literal key
}

type spat struct {
	c    ctor
	args []*spat // for ctorOr: alternatives
}

type row []*spat

var wild = &spat{}

func (c ctor) arity() int {
	switch c.kind {
	case ctorVariant:
		return c.decl.Variants[c.idx].Arity
	case ctorStruct:
		return len(c.decl.Fields)
	}
	return 0
}

// lower converts an AST pattern into the matrix form.
func (r *resolver) lower(id ast.PatID) *spat {
	p := r.b.Pats.Get(id)
	if p == nil {
		return wild
	}
	switch p.Kind {
	case ast.PatBinding:
		if ref, ok := r.res.PatDecls[id]; ok {
			return &spat{c: ctor{kind: ctorVariant, decl: ref.Decl, idx: ref.Variant}}
		}
		return wild
	case ast.PatLit:
		d, _ := r.b.Pats.Lit(id)
		switch d.Lit.Kind {
		case ast.LitBool:
			idx := 0
			if d.Lit.Bool {
				idx = 1
			}
			return &spat{c: ctor{kind: ctorBool, idx: idx}}
		case ast.LitInt:
			return &spat{c: ctor{kind: ctorLit, lit: "i" + strconv.FormatInt(d.Lit.Int, 10)}}
		case ast.LitFloat:
			return &spat{c: ctor{kind: ctorLit, lit: "f" + strconv.FormatFloat(d.Lit.Float, 'g', -1, 64)}}
		case ast.LitString:
			return &spat{c: ctor{kind: ctorLit, lit: "s" + d.Lit.Str}}
		}
		return &spat{c: ctor{kind: ctorLit, lit: "u"}}
	case ast.PatVariant:
		d, _ := r.b.Pats.Variant(id)
		ref := r.res.PatDecls[id]
		sp := &spat{c: ctor{kind: ctorVariant, decl: ref.Decl, idx: ref.Variant}}
		for _, a := range d.Args {
			sp.args = append(sp.args, r.lower(a))
		}
		return sp
	case ast.PatStruct:
		d, _ := r.b.Pats.Struct(id)
		decl := r.res.PatDecls[id].Decl
		sp := &spat{c: ctor{kind: ctorStruct, decl: decl}, args: make([]*spat, len(decl.Fields))}
		for i := range sp.args {
			sp.args[i] = wild
		}
		for _, f := range d.Fields {
			if f.Pat.IsValid() {
				sp.args[decl.FieldIndex(f.Name)] = r.lower(f.Pat)
			}
		}
		return sp
	case ast.PatOr:
		d, _ := r.b.Pats.Or(id)
		sp := &spat{c: ctor{kind: ctorOr}}
		for _, a := range d.Alts {
			sp.args = append(sp.args, r.lower(a))
		}
		return sp
	}
	return wild
}

// expand раскрывает or-шаблоны в первой колонке.
func expand(m []row) []row {
	out := make([]row, 0, len(m))
	for _, rw := range m {
		if len(rw) > 0 && rw[0].c.kind == ctorOr {
			for _, alt := range rw[0].args {
				next := append(row{alt}, rw[1:]...)
				out = append(out, expand([]row{next})...)
			}
			continue
		}
		out = append(out, rw)
	}
	return out
}

func wilds(n int) row {
	out := make(row, n)
	for i := range out {
		out[i] = wild
	}
	return out
}

func specialize(m []row, c ctor) []row {
	var out []row
	for _, rw := range m {
		head := rw[0]
		switch {
		case head.c.kind == ctorWild:
			out = append(out, append(wilds(c.arity()), rw[1:]...))
		case head.c == c:
			args := head.args
			if len(args) != c.arity() {
				args = wilds(c.arity())
			}
			out = append(out, append(append(row{}, args...), rw[1:]...))
		}
	}
	return out
}

func defaultRows(m []row) []row {
	var out []row
	for _, rw := range m {
		if rw[0].c.kind == ctorWild {
			out = append(out, rw[1:])
		}
	}
	return out
}

func headCtors(m []row) []ctor {
	var out []ctor
	seen := make(map[ctor]bool)
	for _, rw := range m {
		c := rw[0].c
		if c.kind == ctorWild || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// allCtors returns the complete constructor set of the type of c, or nil
// when the type has infinitely many values.
func allCtors(c ctor) []ctor {
	switch c.kind {
	case ctorVariant:
		out := make([]ctor, len(c.decl.Variants))
		for i := range out {
			out[i] = ctor{kind: ctorVariant, decl: c.decl, idx: i}
		}
		return out
	case ctorStruct:
		return []ctor{c}
	case ctorBool:
		return []ctor{{kind: ctorBool, idx: 0}, {kind: ctorBool, idx: 1}}
	}
	return nil
}

func complete(sigma []ctor) []ctor {
	if len(sigma) == 0 {
		return nil
	}
	all := allCtors(sigma[0])
	if all == nil {
		return nil
	}
	present := make(map[ctor]bool, len(sigma))
	for _, c := range sigma {
		present[c] = true
	}
	for _, c := range all {
		if !present[c] {
			return nil
		}
	}
	return all
}

// useful reports whether q matches some value no row of m matches.
func useful(m []row, q row) bool {
	if len(q) == 0 {
		return len(m) == 0
	}
	m = expand(m)
	head := q[0]
	if head.c.kind != ctorWild {
		args := head.args
		if len(args) != head.c.arity() {
			args = wilds(head.c.arity())
		}
		return useful(specialize(m, head.c), append(append(row{}, args...), q[1:]...))
	}
	if all := complete(headCtors(m)); all != nil {
		for _, c := range all {
			if useful(specialize(m, c), append(wilds(c.arity()), q[1:]...)) {
				return true
			}
		}
		return false
	}
	return useful(defaultRows(m), q[1:])
}

func (r *resolver) checkExhaustive(id ast.ExprID, d *ast.MatchExpr) {
	var m []row
	for _, arm := range d.Arms {
		if arm.Guard.IsValid() {
			continue
		}
		m = append(m, row{r.lower(arm.Pattern)})
	}
	if !useful(m, row{wild}) {
		return
	}
	missing := missingPatterns(m)
	sp := r.exprSpan(d.Scrutinee)
	r.errorf(diag.ResNonExhaustiveMatch, sp, "non-exhaustive patterns: %s not covered", strings.Join(missing, ", ")).
		WithNote(r.exprSpan(id), "ensure that all possible cases are being handled by adding a match arm").
		Emit()
}

// missingPatterns lists the top-level constructors that are not covered.
func missingPatterns(m []row) []string {
	sigma := headCtors(expand(m))
	var all []ctor
	if len(sigma) > 0 {
		all = allCtors(sigma[0])
	}
	var out []string
	for _, c := range all {
		if useful(m, row{&spat{c: c, args: wilds(c.arity())}}) {
			out = append(out, "'"+ctorText(c)+"'")
		}
	}
	if len(out) == 0 {
		out = append(out, "'_'")
	}
	return out
}

func ctorText(c ctor) string {
	switch c.kind {
	case ctorVariant:
		v := c.decl.Variants[c.idx]
		name := v.Name
		if !c.decl.IsPrelude() {
			name = c.decl.Name + "::" + v.Name
		}
		if !v.Tuple {
			return name
		}
		return name + "(" + strings.TrimSuffix(strings.Repeat("_, ", v.Arity), ", ") + ")"
	case ctorStruct:
		return fmt.Sprintf("%s { .. }", c.decl.Name)
	case ctorBool:
		return strconv.FormatBool(c.idx == 1)
	}
	return "_"
}
