package symbols

import (
	"rustle/internal/ast"
	"rustle/internal/source"
)

// DeclKind distinguishes user-declared struct and enum shapes.
type DeclKind uint8

const (
	DeclStruct DeclKind = iota
	DeclEnum
)

// TypeDecl is the runtime identity of a struct or enum declaration.
// Values compare their declaration by pointer.
type TypeDecl struct {
	Kind     DeclKind
	Name     string
	Item     ast.ItemID // ast.NoItemID for prelude enums
	Span     source.Span
	Fields   []string // DeclStruct
	Variants []Variant
}

// Variant describes one enum variant.
type Variant struct {
	Name  string
	Arity int
	Tuple bool
}

// FieldIndex returns the index of the named field or -1.
func (d *TypeDecl) FieldIndex(name string) int {
	for i, f := range d.Fields {
		if f == name {
			return i
		}
	}
	return -1
}

// VariantIndex returns the index of the named variant or -1.
func (d *TypeDecl) VariantIndex(name string) int {
	for i, v := range d.Variants {
		if v.Name == name {
			return i
		}
	}
	return -1
}

// IsPrelude reports whether the declaration comes from the prelude.
func (d *TypeDecl) IsPrelude() bool { return !d.Item.IsValid() }

// DeclRef points at a declaration and, for enums, one of its variants.
type DeclRef struct {
	Decl    *TypeDecl
	Variant int
}
