package ast

import (
	"rustle/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemEnum
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "fn"
	case ItemStruct:
		return "struct"
	case ItemEnum:
		return "enum"
	}
	return "item?"
}

type Item struct {
	Kind     ItemKind
	Span     source.Span
	Name     string
	NameSpan source.Span
	Payload  PayloadID
}

// Param is a function or closure parameter.
type Param struct {
	Name string
	Span source.Span
	Type TypeID
}

type FnItem struct {
	Params []Param
	Result TypeID
	Body   ExprID // ExprBlock
}

type FieldDecl struct {
	Name string
	Span source.Span
	Type TypeID
}

type StructItem struct {
	Fields []FieldDecl
}

type VariantDecl struct {
	Name   string
	Span   source.Span
	Fields []TypeID
	// Tuple is true for "V(...)" and false for a unit variant "V".
	Tuple bool
}

type EnumItem struct {
	Variants []VariantDecl
}

type Items struct {
	Arena   *Arena[Item]
	Fns     *Arena[FnItem]
	Structs *Arena[StructItem]
	Enums   *Arena[EnumItem]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena:   NewArena[Item](capHint),
		Fns:     NewArena[FnItem](capHint),
		Structs: NewArena[StructItem](capHint),
		Enums:   NewArena[EnumItem](capHint),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) new(kind ItemKind, sp source.Span, name string, nameSpan source.Span, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:     kind,
		Span:     sp,
		Name:     name,
		NameSpan: nameSpan,
		Payload:  PayloadID(payload),
	}))
}

func (i *Items) NewFn(sp source.Span, name string, nameSpan source.Span, params []Param, result TypeID, body ExprID) ItemID {
	payload := i.Fns.Allocate(FnItem{Params: params, Result: result, Body: body})
	return i.new(ItemFn, sp, name, nameSpan, payload)
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(it.Payload)), true
}

func (i *Items) NewStruct(sp source.Span, name string, nameSpan source.Span, fields []FieldDecl) ItemID {
	payload := i.Structs.Allocate(StructItem{Fields: fields})
	return i.new(ItemStruct, sp, name, nameSpan, payload)
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(it.Payload)), true
}

func (i *Items) NewEnum(sp source.Span, name string, nameSpan source.Span, variants []VariantDecl) ItemID {
	payload := i.Enums.Allocate(EnumItem{Variants: variants})
	return i.new(ItemEnum, sp, name, nameSpan, payload)
}

func (i *Items) Enum(id ItemID) (*EnumItem, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemEnum {
		return nil, false
	}
	return i.Enums.Get(uint32(it.Payload)), true
}
