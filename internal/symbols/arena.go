package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"rustle/internal/source"
)

// ScopeID and SymbolID index the table arenas; 0 is "none".
type (
	ScopeID  uint32
	SymbolID uint32
)

const (
	NoScopeID  ScopeID  = 0
	NoSymbolID SymbolID = 0
)

func (id ScopeID) IsValid() bool  { return id != NoScopeID }
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// slab is a 1-based slice arena. Slot 0 holds the zero value so that IDs
// can start at 1.
type slab[T any] struct {
	data []T
}

func newSlab[T any](hint uint32) slab[T] {
	return slab[T]{data: make([]T, 1, hint+1)}
}

func (s *slab[T]) push(what string, v T) uint32 {
	n, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", what, err))
	}
	s.data = append(s.data, v)
	return n
}

func (s *slab[T]) at(i uint32) *T {
	if i == 0 || int(i) >= len(s.data) {
		return nil
	}
	return &s.data[i]
}

func (s *slab[T]) len() int { return len(s.data) - 1 }

// Scopes holds every scope of one resolution.
type Scopes struct{ slab slab[Scope] }

func NewScopes(hint uint32) *Scopes {
	return &Scopes{slab: newSlab[Scope](max(hint, 32))}
}

// New appends a scope and links it into parent's children.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner ScopeOwner, span source.Span) ScopeID {
	id := ScopeID(s.slab.push("scope", Scope{
		Kind:   kind,
		Parent: parent,
		Owner:  owner,
		Span:   span,
		Values: make(map[string]SymbolID),
		Types:  make(map[string]SymbolID),
	}))
	if p := s.Get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// Get returns nil for NoScopeID and unknown IDs.
func (s *Scopes) Get(id ScopeID) *Scope { return s.slab.at(uint32(id)) }

func (s *Scopes) Len() int { return s.slab.len() }

// Symbols holds every declared symbol of one resolution.
type Symbols struct{ slab slab[Symbol] }

func NewSymbols(hint uint32) *Symbols {
	return &Symbols{slab: newSlab[Symbol](max(hint, 64))}
}

// New copies *sym into the arena.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	return SymbolID(s.slab.push("symbol", *sym))
}

func (s *Symbols) Get(id SymbolID) *Symbol { return s.slab.at(uint32(id)) }

func (s *Symbols) Len() int { return s.slab.len() }
