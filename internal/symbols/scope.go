package symbols

import (
	"rustle/internal/ast"
	"rustle/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopePrelude            // built-ins and prelude enums, no runtime frame
	ScopeRoot               // program body
	ScopeFunction           // fn item parameters
	ScopeClosure            // closure parameters
	ScopeBlock              // { ... }
	ScopeLoop               // for-loop variable
	ScopeArm                // match arm pattern bindings
)

func (k ScopeKind) String() string {
	switch k {
	case ScopePrelude:
		return "prelude"
	case ScopeRoot:
		return "root"
	case ScopeFunction:
		return "function"
	case ScopeClosure:
		return "closure"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	case ScopeArm:
		return "arm"
	default:
		return "invalid"
	}
}

// HasFrame reports whether the evaluator allocates a frame for scopes of this kind.
func (k ScopeKind) HasFrame() bool {
	return k != ScopeInvalid && k != ScopePrelude
}

// ScopeOwner references an AST construct associated with the scope.
// Owners are comparable and serve as keys for frame lookups.
type ScopeOwner struct {
	File ast.FileID
	Item ast.ItemID
	Expr ast.ExprID
	Arm  int
}

// Namespace separates values (lets, params, fns) from types (structs, enums).
type Namespace uint8

const (
	NSValue Namespace = iota
	NSType
)

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Kind     ScopeKind
	Parent   ScopeID
	Owner    ScopeOwner
	Span     source.Span
	Values   map[string]SymbolID // latest visible declaration per name
	Types    map[string]SymbolID
	Symbols  []SymbolID
	Children []ScopeID
	// Slots is the number of frame slots the scope needs.
	Slots int
}

func (s *Scope) index(ns Namespace) map[string]SymbolID {
	if ns == NSType {
		return s.Types
	}
	return s.Values
}
