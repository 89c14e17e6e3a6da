package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and the frame index.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	frames  map[ScopeOwner]ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		frames:  make(map[ScopeOwner]ScopeID),
	}
}

// Frame returns the scope registered for owner.
func (t *Table) Frame(owner ScopeOwner) (ScopeID, bool) {
	id, ok := t.frames[owner]
	return id, ok
}

// FrameSize returns the slot count of the scope owned by owner, or 0.
func (t *Table) FrameSize(owner ScopeOwner) int {
	id, ok := t.frames[owner]
	if !ok {
		return 0
	}
	return t.Scopes.Get(id).Slots
}

// Validate checks parent/child links and symbol back-references.
func (t *Table) Validate() error {
	for i := 1; i <= t.Scopes.Len(); i++ {
		id := ScopeID(i) //nolint:gosec // bounded by arena length
		scope := t.Scopes.Get(id)
		if scope.Parent.IsValid() && t.Scopes.Get(scope.Parent) == nil {
			return fmt.Errorf("scope %d: dangling parent %d", id, scope.Parent)
		}
		for _, child := range scope.Children {
			if c := t.Scopes.Get(child); c == nil || c.Parent != id {
				return fmt.Errorf("scope %d: child %d does not point back", id, child)
			}
		}
		for _, symID := range scope.Symbols {
			sym := t.Symbols.Get(symID)
			if sym == nil {
				return fmt.Errorf("scope %d: dangling symbol %d", id, symID)
			}
			if sym.Scope != id {
				return fmt.Errorf("symbol %q belongs to scope %d, listed in %d", sym.Name, sym.Scope, id)
			}
			if sym.Kind.Namespace() == NSValue && sym.Flags&(SymbolFlagBuiltin|SymbolFlagPrelude) == 0 && sym.Slot >= scope.Slots {
				return fmt.Errorf("symbol %q slot %d out of range %d", sym.Name, sym.Slot, scope.Slots)
			}
		}
	}
	return nil
}
