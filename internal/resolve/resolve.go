package resolve

import (
	"fmt"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/source"
	"rustle/internal/symbols"
)

// Options configures a resolver run.
type Options struct {
	Reporter diag.Reporter
	// Builtins are the names visible in the prelude scope, ordered by slot.
	Builtins []string
	// Host marks builtin names supplied by the embedding host.
	Host map[string]bool
}

type resolver struct {
	b      *ast.Builder
	file   ast.FileID
	opts   Options
	sr     *symbols.Resolver
	res    *Result
	root   symbols.ScopeID
	loops  int // вложенность циклов в текущей функции/замыкании
	errors int
}

// Resolve walks file once and returns the bindings. Diagnostics go to
// opts.Reporter; the result is usable only when none were errors.
func Resolve(b *ast.Builder, file ast.FileID, opts Options) *Result {
	table := symbols.NewTable(symbols.Hints{})
	sr := symbols.NewResolver(table, symbols.ResolverOptions{
		Reporter: opts.Reporter,
		Prelude:  symbols.BuiltinEntries(opts.Builtins, opts.Host),
	})
	r := &resolver{
		b:    b,
		file: file,
		opts: opts,
		sr:   sr,
		res:  newResult(table, opts.Builtins),
	}
	f := b.Files.Get(file)
	if f == nil {
		return r.res
	}
	r.root = sr.Enter(symbols.ScopeRoot, RootOwner(file), f.Span)
	r.res.Root = r.root
	r.body(f.Body, f.Tail)
	r.findMain()
	sr.Leave(r.root)
	return r.res
}

// body resolves a statement list with hoisted items in the current scope.
func (r *resolver) body(stmts []ast.StmtID, tail ast.ExprID) {
	r.hoistItems(stmts)
	for _, id := range stmts {
		r.stmt(id)
	}
	if tail.IsValid() {
		r.expr(tail)
	}
}

func (r *resolver) findMain() {
	scope := r.res.Table.Scopes.Get(r.root)
	symID, ok := scope.Values["main"]
	if !ok {
		return
	}
	sym := r.res.Table.Symbols.Get(symID)
	if sym.Kind != symbols.SymbolFunction {
		return
	}
	if fn, ok := r.b.Items.Fn(sym.Item); ok && len(fn.Params) == 0 {
		r.res.Main = sym.Item
	}
}

func (r *resolver) errorf(code diag.Code, sp source.Span, format string, args ...any) *diag.ReportBuilder {
	r.errors++
	return diag.ReportError(r.opts.Reporter, code, sp, fmt.Sprintf(format, args...))
}

func (r *resolver) unresolved(sp source.Span, format string, args ...any) {
	r.errorf(diag.ResUnresolvedName, sp, format, args...).Emit()
}

// declare wraps symbols.Resolver.Declare and counts conflicts as errors.
func (r *resolver) declare(name string, sp source.Span, kind symbols.SymbolKind, flags symbols.SymbolFlags) (*symbols.Symbol, bool) {
	id, ok := r.sr.Declare(name, sp, kind, flags)
	if !ok {
		r.errors++
	}
	return r.res.Table.Symbols.Get(id), ok
}

// lookupValue resolves an identifier use and records closure captures.
func (r *resolver) lookupValue(name string, sp source.Span) (Binding, bool) {
	hit, ok := r.sr.Lookup(name, symbols.NSValue)
	if !ok {
		return Binding{}, false
	}
	sym := r.res.Table.Symbols.Get(hit.Symbol)
	switch {
	case sym.Kind == symbols.SymbolBuiltin:
		return Binding{Kind: BindBuiltin, Slot: sym.Slot, Name: name}, true
	case sym.Kind == symbols.SymbolVariant:
		return Binding{Kind: BindVariant, Slot: sym.Slot, Name: name, Decl: sym.Decl}, true
	case sym.Scope == r.root:
		return Binding{Kind: BindGlobal, Slot: sym.Slot, Name: name}, true
	}
	if hit.CrossedFn && sym.Kind != symbols.SymbolFunction {
		r.errorf(diag.ResUnresolvedName, sp, "can't capture dynamic environment in a fn item: '%s'", name).
			WithNote(sym.Span, "local declared here; use a closure instead").
			Emit()
		return Binding{}, false
	}
	b := Binding{Kind: BindLocal, Depth: hit.Depth, Slot: sym.Slot, Name: name}
	r.recordCaptures(hit, b, sp)
	return b, true
}

// recordCaptures adds b to every closure the lookup stepped out of.
func (r *resolver) recordCaptures(hit symbols.LookupResult, b Binding, sp source.Span) {
	if len(hit.Closures) == 0 {
		return
	}
	table := r.res.Table
	for _, closureScope := range hit.Closures {
		scope := table.Scopes.Get(closureScope)
		// глубина относительно области, где создаётся замыкание
		rel := b
		rel.Depth = b.Depth - r.depthTo(closureScope) - 1
		owner := scope.Owner.Expr
		dup := false
		for _, c := range r.res.Captures[owner] {
			if c.Name == b.Name && c.Binding.Depth == rel.Depth && c.Binding.Slot == rel.Slot {
				dup = true
				break
			}
		}
		if !dup {
			r.res.Captures[owner] = append(r.res.Captures[owner], Capture{Name: b.Name, Span: sp, Binding: rel})
		}
	}
}

// depthTo counts frames from the current scope up to target.
func (r *resolver) depthTo(target symbols.ScopeID) int {
	depth := 0
	table := r.res.Table
	for id := r.sr.CurrentScope(); id.IsValid() && id != target; id = table.Scopes.Get(id).Parent {
		depth++
	}
	return depth
}

// lookupType resolves a struct or enum name.
func (r *resolver) lookupType(name string) (*symbols.Symbol, bool) {
	hit, ok := r.sr.Lookup(name, symbols.NSType)
	if !ok {
		return nil, false
	}
	return r.res.Table.Symbols.Get(hit.Symbol), true
}

func (r *resolver) exprSpan(id ast.ExprID) source.Span {
	if e := r.b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

func (r *resolver) patSpan(id ast.PatID) source.Span {
	if p := r.b.Pats.Get(id); p != nil {
		return p.Span
	}
	return source.Span{}
}
