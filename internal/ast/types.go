package ast

import (
	"rustle/internal/source"
)

// Type is a type annotation. Annotations are parsed and printed but never
// checked; values carry their own dynamic kind.
type Type struct {
	Span source.Span
	Name string // "()" for the unit type
	Args []TypeID
}

type Types struct {
	Arena *Arena[Type]
}

func NewTypes(capHint uint) *Types {
	return &Types{Arena: NewArena[Type](capHint)}
}

func (t *Types) New(sp source.Span, name string, args []TypeID) TypeID {
	return TypeID(t.Arena.Allocate(Type{Span: sp, Name: name, Args: args}))
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}
