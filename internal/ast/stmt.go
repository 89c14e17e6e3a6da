package ast

import (
	"rustle/internal/source"
)

type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtExpr
	StmtItem
	StmtReturn
	StmtBreak
	StmtContinue
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type LetStmt struct {
	Name     string
	NameSpan source.Span
	Mut      bool
	Type     TypeID
	Value    ExprID // NoExprID for "let x;"
}

type ExprStmt struct {
	Expr ExprID
	// Semi records whether the statement ended with ';'. Block-like
	// expressions may omit it.
	Semi bool
}

type ItemStmt struct {
	Item ItemID
}

// JumpStmt is the payload of return and break.
type JumpStmt struct {
	Value ExprID
}

type Stmts struct {
	Arena *Arena[Stmt]
	Lets  *Arena[LetStmt]
	Exprs *Arena[ExprStmt]
	Items *Arena[ItemStmt]
	Jumps *Arena[JumpStmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Lets:  NewArena[LetStmt](capHint),
		Exprs: NewArena[ExprStmt](capHint),
		Items: NewArena[ItemStmt](1 << 4),
		Jumps: NewArena[JumpStmt](1 << 4),
	}
}

func (s *Stmts) new(kind StmtKind, sp source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: sp, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewLet(sp source.Span, name string, nameSpan source.Span, mut bool, typ TypeID, value ExprID) StmtID {
	payload := s.Lets.Allocate(LetStmt{Name: name, NameSpan: nameSpan, Mut: mut, Type: typ, Value: value})
	return s.new(StmtLet, sp, payload)
}

func (s *Stmts) Let(id StmtID) (*LetStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewExpr(sp source.Span, expr ExprID, semi bool) StmtID {
	payload := s.Exprs.Allocate(ExprStmt{Expr: expr, Semi: semi})
	return s.new(StmtExpr, sp, payload)
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewItem(sp source.Span, item ItemID) StmtID {
	payload := s.Items.Allocate(ItemStmt{Item: item})
	return s.new(StmtItem, sp, payload)
}

func (s *Stmts) Item(id StmtID) (*ItemStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtItem {
		return nil, false
	}
	return s.Items.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewReturn(sp source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, sp, s.Jumps.Allocate(JumpStmt{Value: value}))
}

func (s *Stmts) NewBreak(sp source.Span, value ExprID) StmtID {
	return s.new(StmtBreak, sp, s.Jumps.Allocate(JumpStmt{Value: value}))
}

// Jump returns the payload of a return or break statement.
func (s *Stmts) Jump(id StmtID) (*JumpStmt, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtReturn && st.Kind != StmtBreak) {
		return nil, false
	}
	return s.Jumps.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewContinue(sp source.Span) StmtID {
	return s.new(StmtContinue, sp, 0)
}
