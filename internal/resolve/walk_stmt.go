package resolve

import (
	"rustle/internal/ast"
	"rustle/internal/symbols"
)

func (r *resolver) stmt(id ast.StmtID) {
	st := r.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtLet:
		let, _ := r.b.Stmts.Let(id)
		// значение разрешается до объявления: let x = x + 1
		if let.Value.IsValid() {
			r.expr(let.Value)
		}
		var flags symbols.SymbolFlags
		if let.Mut {
			flags |= symbols.SymbolFlagMutable
		}
		if sym, ok := r.declare(let.Name, let.NameSpan, symbols.SymbolLet, flags); ok {
			r.res.Lets[id] = sym.Slot
		}
	case ast.StmtExpr:
		es, _ := r.b.Stmts.Expr(id)
		r.expr(es.Expr)
	case ast.StmtItem:
		it, _ := r.b.Stmts.Item(id)
		if r.b.Items.Get(it.Item).Kind == ast.ItemFn {
			r.fnItem(it.Item)
		}
	case ast.StmtReturn:
		j, _ := r.b.Stmts.Jump(id)
		if j.Value.IsValid() {
			r.expr(j.Value)
		}
	case ast.StmtBreak:
		j, _ := r.b.Stmts.Jump(id)
		if j.Value.IsValid() {
			r.expr(j.Value)
		}
		if r.loops == 0 {
			r.unresolved(st.Span, "'break' outside of a loop")
		}
	case ast.StmtContinue:
		if r.loops == 0 {
			r.unresolved(st.Span, "'continue' outside of a loop")
		}
	}
}
