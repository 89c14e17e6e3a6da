package resolve

import (
	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/source"
	"rustle/internal/symbols"
)

// hoistItems declares every item of a statement list before the list is walked.
func (r *resolver) hoistItems(stmts []ast.StmtID) {
	for _, id := range stmts {
		st, ok := r.b.Stmts.Item(id)
		if !ok {
			continue
		}
		item := r.b.Items.Get(st.Item)
		switch item.Kind {
		case ast.ItemFn:
			sym, ok := r.declare(item.Name, item.NameSpan, symbols.SymbolFunction, 0)
			if ok {
				sym.Item = st.Item
				r.res.Items[st.Item] = sym.Slot
			}
		case ast.ItemStruct:
			decl := r.structDecl(st.Item, item)
			if sym, ok := r.declare(item.Name, item.NameSpan, symbols.SymbolStruct, 0); ok {
				sym.Item = st.Item
				sym.Decl = decl
			}
		case ast.ItemEnum:
			decl := r.enumDecl(st.Item, item)
			if sym, ok := r.declare(item.Name, item.NameSpan, symbols.SymbolEnum, 0); ok {
				sym.Item = st.Item
				sym.Decl = decl
			}
		}
	}
}

func (r *resolver) structDecl(id ast.ItemID, item *ast.Item) *symbols.TypeDecl {
	st, _ := r.b.Items.Struct(id)
	decl := &symbols.TypeDecl{Kind: symbols.DeclStruct, Name: item.Name, Item: id, Span: item.NameSpan}
	seen := make(map[string]source.Span, len(st.Fields))
	for _, f := range st.Fields {
		if prev, dup := seen[f.Name]; dup {
			r.duplicate("field", f.Name, f.Span, prev)
			continue
		}
		seen[f.Name] = f.Span
		decl.Fields = append(decl.Fields, f.Name)
	}
	r.res.Decls[id] = decl
	return decl
}

func (r *resolver) enumDecl(id ast.ItemID, item *ast.Item) *symbols.TypeDecl {
	en, _ := r.b.Items.Enum(id)
	decl := &symbols.TypeDecl{Kind: symbols.DeclEnum, Name: item.Name, Item: id, Span: item.NameSpan}
	seen := make(map[string]source.Span, len(en.Variants))
	for _, v := range en.Variants {
		if prev, dup := seen[v.Name]; dup {
			r.duplicate("variant", v.Name, v.Span, prev)
			continue
		}
		seen[v.Name] = v.Span
		decl.Variants = append(decl.Variants, symbols.Variant{Name: v.Name, Arity: len(v.Fields), Tuple: v.Tuple})
	}
	r.res.Decls[id] = decl
	return decl
}

func (r *resolver) duplicate(what, name string, sp, prev source.Span) {
	r.errorf(diag.ResDuplicateBinding, sp, "duplicate %s '%s'", what, name).
		WithNote(prev, "first declared here").
		Emit()
}

// fnItem resolves a fn body in its own parameter scope.
func (r *resolver) fnItem(id ast.ItemID) {
	fn, ok := r.b.Items.Fn(id)
	if !ok {
		return
	}
	item := r.b.Items.Get(id)
	savedLoops := r.loops
	r.loops = 0
	scope := r.sr.Enter(symbols.ScopeFunction, FnOwner(id), item.Span)
	r.params(fn.Params, symbols.SymbolParam)
	r.expr(fn.Body)
	r.sr.Leave(scope)
	r.loops = savedLoops
}

func (r *resolver) params(params []ast.Param, kind symbols.SymbolKind) {
	for _, p := range params {
		r.declare(p.Name, p.Span, kind, 0)
	}
}
