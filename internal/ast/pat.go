package ast

import (
	"rustle/internal/source"
)

type PatKind uint8

const (
	PatWild PatKind = iota
	PatBinding
	PatLit
	PatVariant
	PatStruct
	PatOr
)

type Pat struct {
	Kind    PatKind
	Span    source.Span
	Payload PayloadID
}

// BindingPat is a bare identifier. The resolver decides whether it binds
// a name or names a prelude variant such as None.
type BindingPat struct {
	Name string
}

// LitPat holds an already negated literal for "-1" patterns.
type LitPat struct {
	Lit      Literal
	Negative bool
}

// VariantPat is "E::V", "E::V(p, ...)" or "Some(p)".
type VariantPat struct {
	Enum     string // пусто для Some/None/Ok/Err
	Variant  string
	NameSpan source.Span
	Args     []PatID
	// Tuple is true when a parenthesised argument list was written.
	Tuple bool
}

type FieldPat struct {
	Name string
	Span source.Span
	Pat  PatID // NoPatID for the shorthand "P { x }"
}

type StructPat struct {
	Name     string
	NameSpan source.Span
	Fields   []FieldPat
}

type OrPat struct {
	Alts []PatID
}

type Pats struct {
	Arena    *Arena[Pat]
	Bindings *Arena[BindingPat]
	Lits     *Arena[LitPat]
	Variants *Arena[VariantPat]
	Structs  *Arena[StructPat]
	Ors      *Arena[OrPat]
}

func NewPats(capHint uint) *Pats {
	return &Pats{
		Arena:    NewArena[Pat](capHint),
		Bindings: NewArena[BindingPat](capHint),
		Lits:     NewArena[LitPat](capHint),
		Variants: NewArena[VariantPat](capHint),
		Structs:  NewArena[StructPat](1 << 3),
		Ors:      NewArena[OrPat](1 << 3),
	}
}

func (p *Pats) new(kind PatKind, sp source.Span, payload uint32) PatID {
	return PatID(p.Arena.Allocate(Pat{Kind: kind, Span: sp, Payload: PayloadID(payload)}))
}

func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}

func (p *Pats) NewWild(sp source.Span) PatID {
	return p.new(PatWild, sp, 0)
}

func (p *Pats) NewBinding(sp source.Span, name string) PatID {
	return p.new(PatBinding, sp, p.Bindings.Allocate(BindingPat{Name: name}))
}

func (p *Pats) Binding(id PatID) (*BindingPat, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatBinding {
		return nil, false
	}
	return p.Bindings.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewLit(sp source.Span, data LitPat) PatID {
	return p.new(PatLit, sp, p.Lits.Allocate(data))
}

func (p *Pats) Lit(id PatID) (*LitPat, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatLit {
		return nil, false
	}
	return p.Lits.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewVariant(sp source.Span, data VariantPat) PatID {
	return p.new(PatVariant, sp, p.Variants.Allocate(data))
}

func (p *Pats) Variant(id PatID) (*VariantPat, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatVariant {
		return nil, false
	}
	return p.Variants.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewStruct(sp source.Span, data StructPat) PatID {
	return p.new(PatStruct, sp, p.Structs.Allocate(data))
}

func (p *Pats) Struct(id PatID) (*StructPat, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatStruct {
		return nil, false
	}
	return p.Structs.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewOr(sp source.Span, alts []PatID) PatID {
	return p.new(PatOr, sp, p.Ors.Allocate(OrPat{Alts: alts}))
}

func (p *Pats) Or(id PatID) (*OrPat, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatOr {
		return nil, false
	}
	return p.Ors.Get(uint32(pat.Payload)), true
}
