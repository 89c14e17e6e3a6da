package symbols

import (
	"fmt"

	"rustle/internal/diag"
	"rustle/internal/source"
)

// ResolverOptions configures resolver construction.
type ResolverOptions struct {
	Reporter diag.Reporter
	Prelude  []PreludeEntry
}

// Resolver drives scope management and declaration/lookup routines.
type Resolver struct {
	table    *Table
	reporter diag.Reporter
	stack    []ScopeID
	prelude  ScopeID
}

// NewResolver creates the prelude scope, fills it and makes it current.
func NewResolver(table *Table, opts ResolverOptions) *Resolver {
	r := &Resolver{
		table:    table,
		reporter: opts.Reporter,
		stack:    make([]ScopeID, 0, 8),
	}
	r.prelude = table.Scopes.New(ScopePrelude, NoScopeID, ScopeOwner{}, source.Span{})
	r.stack = append(r.stack, r.prelude)
	r.installPrelude(mergePrelude(opts.Prelude))
	return r
}

func (r *Resolver) installPrelude(entries []PreludeEntry) {
	scope := r.table.Scopes.Get(r.prelude)
	for _, e := range entries {
		id := r.table.Symbols.New(&Symbol{
			Name:  e.Name,
			Kind:  e.Kind,
			Scope: r.prelude,
			Flags: e.Flags,
			Slot:  e.Slot,
			Decl:  e.Decl,
		})
		scope.Symbols = append(scope.Symbols, id)
		scope.index(e.Kind.Namespace())[e.Name] = id
	}
}

// Table exposes the underlying table.
func (r *Resolver) Table() *Table { return r.table }

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter creates a child scope, pushes it onto the stack, and returns its ID.
// Frame scopes are indexed by owner.
func (r *Resolver) Enter(kind ScopeKind, owner ScopeOwner, span source.Span) ScopeID {
	parent := r.CurrentScope()
	scope := r.table.Scopes.New(kind, parent, owner, span)
	if kind.HasFrame() {
		r.table.frames[owner] = scope
	}
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope. A mismatch is a resolver bug.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) <= 1 {
		return
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		panic(fmt.Sprintf("scope stack mismatch: closing %d while expecting %d", top, expected))
	}
	r.stack = r.stack[:len(r.stack)-1]
}

func canShareName(existing, next SymbolKind) bool {
	switch {
	case next == SymbolLet:
		// let всегда затеняет
		return true
	case existing == SymbolLet:
		return !next.IsItem()
	case existing.IsItem() && next.IsItem():
		return false
	}
	return existing != next
}

// Declare installs a symbol into the current scope. Value symbols get the next
// frame slot. Returns false when the declaration conflicts with an existing one.
func (r *Resolver) Declare(name string, span source.Span, kind SymbolKind, flags SymbolFlags) (SymbolID, bool) {
	scopeID := r.CurrentScope()
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	ns := kind.Namespace()
	if existing, ok := scope.index(ns)[name]; ok && scope.Kind != ScopePrelude {
		if sym := r.table.Symbols.Get(existing); sym != nil && !canShareName(sym.Kind, kind) {
			r.reportDuplicateSymbol(name, kind, span, sym.Span)
			return existing, false
		}
	}
	sym := &Symbol{
		Name:  name,
		Kind:  kind,
		Scope: scopeID,
		Span:  span,
		Flags: flags,
		Slot:  -1,
	}
	if ns == NSValue {
		sym.Slot = scope.Slots
		scope.Slots++
	}
	id := r.table.Symbols.New(sym)
	scope.Symbols = append(scope.Symbols, id)
	scope.index(ns)[name] = id
	return id, true
}

// LookupResult describes where a name was found relative to the current scope.
type LookupResult struct {
	Symbol SymbolID
	// Depth counts frame scopes between the current scope and the declaring one.
	Depth int
	// CrossedFn is set when the lookup left a fn item's scope.
	CrossedFn bool
	// Closures lists the closure scopes the lookup left, innermost first.
	Closures []ScopeID
}

// Lookup searches the scope chain for name in namespace ns.
func (r *Resolver) Lookup(name string, ns Namespace) (LookupResult, bool) {
	var res LookupResult
	for id := r.CurrentScope(); id.IsValid(); {
		scope := r.table.Scopes.Get(id)
		if symID, ok := scope.index(ns)[name]; ok {
			res.Symbol = symID
			return res, true
		}
		switch scope.Kind {
		case ScopeFunction:
			res.CrossedFn = true
		case ScopeClosure:
			res.Closures = append(res.Closures, id)
		}
		if scope.Parent.IsValid() && r.table.Scopes.Get(scope.Parent).Kind.HasFrame() {
			res.Depth++
		}
		id = scope.Parent
	}
	return LookupResult{}, false
}

func (r *Resolver) reportDuplicateSymbol(name string, kind SymbolKind, span, prevSpan source.Span) {
	if r.reporter == nil {
		return
	}
	msg := fmt.Sprintf("duplicate declaration of %s '%s'", kind, name)
	builder := diag.ReportError(r.reporter, diag.ResDuplicateBinding, span, msg)
	if prevSpan != (source.Span{}) {
		builder.WithNote(prevSpan, "previous declaration here")
	}
	builder.Emit()
}
