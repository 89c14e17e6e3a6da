package symbols

import (
	"rustle/internal/ast"
	"rustle/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolLet
	SymbolParam
	SymbolPattern
	SymbolFunction
	SymbolStruct
	SymbolEnum
	SymbolBuiltin
	SymbolVariant
)

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagMutable SymbolFlags = 1 << iota
	SymbolFlagBuiltin
	SymbolFlagPrelude
	SymbolFlagHost
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolLet:
		return "let"
	case SymbolParam:
		return "param"
	case SymbolPattern:
		return "pattern binding"
	case SymbolFunction:
		return "function"
	case SymbolStruct:
		return "struct"
	case SymbolEnum:
		return "enum"
	case SymbolBuiltin:
		return "builtin"
	case SymbolVariant:
		return "variant"
	default:
		return "invalid"
	}
}

// Namespace reports where symbols of the kind live.
func (k SymbolKind) Namespace() Namespace {
	if k == SymbolStruct || k == SymbolEnum {
		return NSType
	}
	return NSValue
}

// IsItem reports whether the kind is hoisted within its block.
func (k SymbolKind) IsItem() bool {
	return k == SymbolFunction || k == SymbolStruct || k == SymbolEnum
}

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolFlagMutable != 0 {
		labels = append(labels, "mutable")
	}
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	if f&SymbolFlagPrelude != 0 {
		labels = append(labels, "prelude")
	}
	if f&SymbolFlagHost != 0 {
		labels = append(labels, "host")
	}
	return labels
}

// Symbol describes a named entity available in a scope.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span
	Flags SymbolFlags
	// Slot is the frame slot for values; for builtins the index into the
	// builtin name list; for variants the variant index.
	Slot int
	Item ast.ItemID
	// Decl is set for structs, enums and variants.
	Decl *TypeDecl
}
