package ast

import (
	"rustle/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena       *Arena[Expr]
	Literals    *Arena[Literal]
	Idents      *Arena[IdentExpr]
	Paths       *Arena[PathExpr]
	Binaries    *Arena[BinaryExpr]
	Unaries     *Arena[UnaryExpr]
	Assigns     *Arena[AssignExpr]
	Calls       *Arena[CallExpr]
	MethodCalls *Arena[MethodCallExpr]
	Fields      *Arena[FieldExpr]
	Indices     *Arena[IndexExpr]
	Structs     *Arena[StructExpr]
	Vecs        *Arena[VecExpr]
	Ranges      *Arena[RangeExpr]
	Ifs         *Arena[IfExpr]
	Matches     *Arena[MatchExpr]
	Blocks      *Arena[BlockExpr]
	Loops       *Arena[LoopExpr]
	Whiles      *Arena[WhileExpr]
	Fors        *Arena[ForExpr]
	Closures    *Arena[ClosureExpr]
	Groups      *Arena[GroupExpr]
}

// NewExprs creates the expression arena and one payload arena per kind.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Literals:    NewArena[Literal](capHint),
		Idents:      NewArena[IdentExpr](capHint),
		Paths:       NewArena[PathExpr](small),
		Binaries:    NewArena[BinaryExpr](capHint),
		Unaries:     NewArena[UnaryExpr](small),
		Assigns:     NewArena[AssignExpr](small),
		Calls:       NewArena[CallExpr](capHint),
		MethodCalls: NewArena[MethodCallExpr](small),
		Fields:      NewArena[FieldExpr](small),
		Indices:     NewArena[IndexExpr](small),
		Structs:     NewArena[StructExpr](small),
		Vecs:        NewArena[VecExpr](small),
		Ranges:      NewArena[RangeExpr](small),
		Ifs:         NewArena[IfExpr](small),
		Matches:     NewArena[MatchExpr](small),
		Blocks:      NewArena[BlockExpr](capHint),
		Loops:       NewArena[LoopExpr](small),
		Whiles:      NewArena[WhileExpr](small),
		Fors:        NewArena[ForExpr](small),
		Closures:    NewArena[ClosureExpr](small),
		Groups:      NewArena[GroupExpr](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewLiteral(span source.Span, data Literal) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(data))
}

func (e *Exprs) Literal(id ExprID) (*Literal, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIdent(span source.Span, data IdentExpr) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(data))
}

func (e *Exprs) Ident(id ExprID) (*IdentExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewPath(span source.Span, data PathExpr) ExprID {
	return e.new(ExprPath, span, e.Paths.Allocate(data))
}

func (e *Exprs) Path(id ExprID) (*PathExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprPath {
		return nil, false
	}
	return e.Paths.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, data BinaryExpr) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(data))
}

func (e *Exprs) Binary(id ExprID) (*BinaryExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, data UnaryExpr) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(data))
}

func (e *Exprs) Unary(id ExprID) (*UnaryExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewAssign(span source.Span, data AssignExpr) ExprID {
	return e.new(ExprAssign, span, e.Assigns.Allocate(data))
}

func (e *Exprs) Assign(id ExprID) (*AssignExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, data CallExpr) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(data))
}

func (e *Exprs) Call(id ExprID) (*CallExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMethodCall(span source.Span, data MethodCallExpr) ExprID {
	return e.new(ExprMethodCall, span, e.MethodCalls.Allocate(data))
}

func (e *Exprs) MethodCall(id ExprID) (*MethodCallExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMethodCall {
		return nil, false
	}
	return e.MethodCalls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewField(span source.Span, data FieldExpr) ExprID {
	return e.new(ExprField, span, e.Fields.Allocate(data))
}

func (e *Exprs) Field(id ExprID) (*FieldExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprField {
		return nil, false
	}
	return e.Fields.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIndex(span source.Span, data IndexExpr) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(data))
}

func (e *Exprs) Index(id ExprID) (*IndexExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewStruct(span source.Span, data StructExpr) ExprID {
	return e.new(ExprStruct, span, e.Structs.Allocate(data))
}

func (e *Exprs) Struct(id ExprID) (*StructExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprStruct {
		return nil, false
	}
	return e.Structs.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewVec(span source.Span, data VecExpr) ExprID {
	return e.new(ExprVec, span, e.Vecs.Allocate(data))
}

func (e *Exprs) Vec(id ExprID) (*VecExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprVec {
		return nil, false
	}
	return e.Vecs.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewRange(span source.Span, data RangeExpr) ExprID {
	return e.new(ExprRange, span, e.Ranges.Allocate(data))
}

func (e *Exprs) Range(id ExprID) (*RangeExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprRange {
		return nil, false
	}
	return e.Ranges.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIf(span source.Span, data IfExpr) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(data))
}

func (e *Exprs) If(id ExprID) (*IfExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIf {
		return nil, false
	}
	return e.Ifs.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMatch(span source.Span, data MatchExpr) ExprID {
	return e.new(ExprMatch, span, e.Matches.Allocate(data))
}

func (e *Exprs) Match(id ExprID) (*MatchExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMatch {
		return nil, false
	}
	return e.Matches.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBlock(span source.Span, data BlockExpr) ExprID {
	return e.new(ExprBlock, span, e.Blocks.Allocate(data))
}

func (e *Exprs) Block(id ExprID) (*BlockExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBlock {
		return nil, false
	}
	return e.Blocks.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewLoop(span source.Span, data LoopExpr) ExprID {
	return e.new(ExprLoop, span, e.Loops.Allocate(data))
}

func (e *Exprs) Loop(id ExprID) (*LoopExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLoop {
		return nil, false
	}
	return e.Loops.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewWhile(span source.Span, data WhileExpr) ExprID {
	return e.new(ExprWhile, span, e.Whiles.Allocate(data))
}

func (e *Exprs) While(id ExprID) (*WhileExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprWhile {
		return nil, false
	}
	return e.Whiles.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewFor(span source.Span, data ForExpr) ExprID {
	return e.new(ExprFor, span, e.Fors.Allocate(data))
}

func (e *Exprs) For(id ExprID) (*ForExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprFor {
		return nil, false
	}
	return e.Fors.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewClosure(span source.Span, data ClosureExpr) ExprID {
	return e.new(ExprClosure, span, e.Closures.Allocate(data))
}

func (e *Exprs) Closure(id ExprID) (*ClosureExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprClosure {
		return nil, false
	}
	return e.Closures.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewGroup(span source.Span, data GroupExpr) ExprID {
	return e.new(ExprGroup, span, e.Groups.Allocate(data))
}

func (e *Exprs) Group(id ExprID) (*GroupExpr, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(expr.Payload)), true
}
