package resolve

import (
	"rustle/internal/ast"
	"rustle/internal/source"
	"rustle/internal/symbols"
)

// BindingKind says where a resolved name lives at run time.
type BindingKind uint8

const (
	BindLocal   BindingKind = iota // Depth frames up, at Slot
	BindGlobal                     // program root frame, at Slot
	BindBuiltin                    // builtin table, at Slot
	BindVariant                    // prelude enum variant Decl.Variants[Slot]
)

func (k BindingKind) String() string {
	switch k {
	case BindLocal:
		return "local"
	case BindGlobal:
		return "global"
	case BindBuiltin:
		return "builtin"
	case BindVariant:
		return "variant"
	}
	return "binding?"
}

// Binding annotates an identifier use.
type Binding struct {
	Kind  BindingKind
	Depth int
	Slot  int
	Name  string
	Decl  *symbols.TypeDecl // BindVariant
}

// Capture is an outer local referenced from a closure body.
type Capture struct {
	Name string
	Span source.Span // first use
	// Binding is relative to the scope the closure is created in.
	Binding Binding
}

// FieldKey identifies the i-th field of a struct pattern.
type FieldKey struct {
	Pat   ast.PatID
	Field int
}

// Result holds everything the evaluator needs from the resolver.
type Result struct {
	Table *symbols.Table
	// Root is the program root scope.
	Root symbols.ScopeID
	// Builtins lists builtin names by slot.
	Builtins []string

	Idents  map[ast.ExprID]Binding
	Methods map[ast.ExprID]Binding // method-call names that resolve to a value
	Lets    map[ast.StmtID]int
	Items   map[ast.ItemID]int // fn item slot in its declaring frame
	Decls   map[ast.ItemID]*symbols.TypeDecl

	PatSlots   map[ast.PatID]int
	FieldSlots map[FieldKey]int
	// ExprDecls resolves struct literals and E::V paths.
	ExprDecls map[ast.ExprID]symbols.DeclRef
	// PatDecls resolves struct and variant patterns, including bare None.
	PatDecls map[ast.PatID]symbols.DeclRef

	Captures map[ast.ExprID][]Capture

	// Main is the root-level fn main, when declared with no parameters.
	Main ast.ItemID
}

func newResult(table *symbols.Table, builtins []string) *Result {
	return &Result{
		Table:      table,
		Builtins:   builtins,
		Idents:     make(map[ast.ExprID]Binding),
		Methods:    make(map[ast.ExprID]Binding),
		Lets:       make(map[ast.StmtID]int),
		Items:      make(map[ast.ItemID]int),
		Decls:      make(map[ast.ItemID]*symbols.TypeDecl),
		PatSlots:   make(map[ast.PatID]int),
		FieldSlots: make(map[FieldKey]int),
		ExprDecls:  make(map[ast.ExprID]symbols.DeclRef),
		PatDecls:   make(map[ast.PatID]symbols.DeclRef),
		Captures:   make(map[ast.ExprID][]Capture),
	}
}

// FrameSize returns the slot count for the frame owned by owner.
func (r *Result) FrameSize(owner symbols.ScopeOwner) int {
	return r.Table.FrameSize(owner)
}

// RootOwner, FnOwner and the like build frame keys the same way the resolver does.
func RootOwner(file ast.FileID) symbols.ScopeOwner { return symbols.ScopeOwner{File: file} }

func FnOwner(item ast.ItemID) symbols.ScopeOwner { return symbols.ScopeOwner{Item: item} }

func ExprOwner(expr ast.ExprID) symbols.ScopeOwner { return symbols.ScopeOwner{Expr: expr} }

func ArmOwner(match ast.ExprID, arm int) symbols.ScopeOwner {
	return symbols.ScopeOwner{Expr: match, Arm: arm + 1}
}
