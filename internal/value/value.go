// Package value implements runtime values of the evaluator.
package value

import (
	"fmt"

	"rustle/internal/symbols"
)

// Kind identifies the runtime type of a Value.
type Kind uint8

const (
	// KindInvalid marks a declared but uninitialised slot.
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindFloat
	KindStr
	KindStruct
	KindEnum
	KindFunc
	KindBuiltin
	KindRef
	KindVec
	KindMap
)

// String returns a human-readable name for the value kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "()"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindFunc:
		return "Fn"
	case KindBuiltin:
		return "Builtin"
	case KindRef:
		return "Ref"
	case KindVec:
		return "Vec"
	case KindMap:
		return "Map"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is a tagged runtime value. Scalars live inline; aggregates and
// callables live behind Obj.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Obj   any // *Struct, *Enum, *Func, *Builtin, *Cell, *Vec, *Map
}

// IsZero reports whether v is the uninitialised marker.
func (v Value) IsZero() bool { return v.Kind == KindInvalid }

// Unit is the single unit value.
var Unit = Value{Kind: KindUnit}

func MakeBool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func MakeInt(n int64) Value     { return Value{Kind: KindInt, Int: n} }
func MakeFloat(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func MakeStr(s string) Value    { return Value{Kind: KindStr, Str: s} }

// MakeStruct creates a struct value; fields follow decl.Fields order.
func MakeStruct(decl *symbols.TypeDecl, fields []Value) Value {
	return Value{Kind: KindStruct, Obj: &Struct{Decl: decl, Fields: fields}}
}

// MakeEnum creates an enum value of decl's variant.
func MakeEnum(decl *symbols.TypeDecl, variant int, payload []Value) Value {
	return Value{Kind: KindEnum, Obj: &Enum{Decl: decl, Variant: variant, Payload: payload}}
}

// Some, None, Ok and Err build prelude enum values.
func Some(v Value) Value { return MakeEnum(symbols.OptionDecl, symbols.VariantSome, []Value{v}) }
func None() Value        { return MakeEnum(symbols.OptionDecl, symbols.VariantNone, nil) }
func Ok(v Value) Value   { return MakeEnum(symbols.ResultDecl, symbols.VariantOk, []Value{v}) }
func Err(v Value) Value  { return MakeEnum(symbols.ResultDecl, symbols.VariantErr, []Value{v}) }

// MakeFunc wraps an evaluator callable.
func MakeFunc(f *Func) Value { return Value{Kind: KindFunc, Obj: f} }

// MakeBuiltin creates a reference to the builtin at slot.
func MakeBuiltin(name string, slot int) Value {
	return Value{Kind: KindBuiltin, Obj: &Builtin{Name: name, Slot: slot}}
}

// MakeRef allocates a fresh shared cell holding v.
func MakeRef(v Value) Value { return Value{Kind: KindRef, Obj: &Cell{V: v}} }

// MakeVec creates a vector value owning elems.
func MakeVec(elems []Value) Value { return Value{Kind: KindVec, Obj: &Vec{Elems: elems}} }

// MakeMap creates an empty map value.
func MakeMap() Value { return Value{Kind: KindMap, Obj: NewMap()} }

func (v Value) AsStruct() *Struct {
	s, _ := v.Obj.(*Struct)
	return s
}

func (v Value) AsEnum() *Enum {
	e, _ := v.Obj.(*Enum)
	return e
}

func (v Value) AsFunc() *Func {
	f, _ := v.Obj.(*Func)
	return f
}

func (v Value) AsBuiltin() *Builtin {
	b, _ := v.Obj.(*Builtin)
	return b
}

func (v Value) AsRef() *Cell {
	c, _ := v.Obj.(*Cell)
	return c
}

func (v Value) AsVec() *Vec {
	s, _ := v.Obj.(*Vec)
	return s
}

func (v Value) AsMap() *Map {
	m, _ := v.Obj.(*Map)
	return m
}

// TypeName is the user-facing type of v, as returned by type_of.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindStruct:
		return v.AsStruct().Decl.Name
	case KindEnum:
		return v.AsEnum().Decl.Name
	}
	return v.Kind.String()
}

// Struct is a struct instance.
type Struct struct {
	Decl   *symbols.TypeDecl
	Fields []Value
}

// Field returns the named field.
func (s *Struct) Field(name string) (Value, bool) {
	i := s.Decl.FieldIndex(name)
	if i < 0 {
		return Value{}, false
	}
	return s.Fields[i], true
}

// Enum is an enum instance.
type Enum struct {
	Decl    *symbols.TypeDecl
	Variant int
	Payload []Value
}

// VariantName returns the name of the instance's variant.
func (e *Enum) VariantName() string { return e.Decl.Variants[e.Variant].Name }

// Func is a user function, closure or variant constructor. Impl belongs to
// the evaluator.
type Func struct {
	Name  string
	Arity int
	Impl  any
}

// Builtin refers to a native function by its slot in the builtin table.
type Builtin struct {
	Name string
	Slot int
}

// Cell is the shared mutable storage behind Ref.
type Cell struct {
	V Value
}

// Vec is a growable vector.
type Vec struct {
	Elems []Value
}
