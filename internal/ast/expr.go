package ast

import (
	"rustle/internal/source"
)

type ExprKind uint8

const (
	ExprLit ExprKind = iota
	ExprIdent
	ExprPath
	ExprBinary
	ExprUnary
	ExprAssign
	ExprCall
	ExprMethodCall
	ExprField
	ExprIndex
	ExprStruct
	ExprVec
	ExprRange
	ExprIf
	ExprMatch
	ExprBlock
	ExprLoop
	ExprWhile
	ExprFor
	ExprClosure
	ExprGroup
)

var exprKindNames = [...]string{
	ExprLit:        "Lit",
	ExprIdent:      "Ident",
	ExprPath:       "Path",
	ExprBinary:     "Binary",
	ExprUnary:      "Unary",
	ExprAssign:     "Assign",
	ExprCall:       "Call",
	ExprMethodCall: "MethodCall",
	ExprField:      "Field",
	ExprIndex:      "Index",
	ExprStruct:     "Struct",
	ExprVec:        "Vec",
	ExprRange:      "Range",
	ExprIf:         "If",
	ExprMatch:      "Match",
	ExprBlock:      "Block",
	ExprLoop:       "Loop",
	ExprWhile:      "While",
	ExprFor:        "For",
	ExprClosure:    "Closure",
	ExprGroup:      "Group",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr?"
}

// IsBlockLike reports whether an expression statement of this kind may
// omit the trailing semicolon.
func (k ExprKind) IsBlockLike() bool {
	switch k {
	case ExprIf, ExprMatch, ExprBlock, ExprLoop, ExprWhile, ExprFor:
		return true
	}
	return false
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitUnit
)

// Literal значения уже декодированы лексером/парсером.
type Literal struct {
	Kind  LitKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
	Raw   string // исходный текст числа, для печати
}

type IdentExpr struct {
	Name string
}

// PathExpr is "Enum::Variant".
type PathExpr struct {
	Enum        string
	EnumSpan    source.Span
	Variant     string
	VariantSpan source.Span
}

type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
)

var binaryOpText = [...]string{
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinRem: "%",
	BinEq: "==", BinNe: "!=", BinLt: "<", BinLe: "<=", BinGt: ">", BinGe: ">=",
	BinAnd: "&&", BinOr: "||",
}

func (op BinaryOp) String() string { return binaryOpText[op] }

type BinaryExpr struct {
	Op          BinaryOp
	Left, Right ExprID
}

type UnaryOp uint8

const (
	UnNeg UnaryOp = iota
	UnNot
	UnDeref
)

func (op UnaryOp) String() string {
	switch op {
	case UnNeg:
		return "-"
	case UnNot:
		return "!"
	default:
		return "*"
	}
}

type UnaryExpr struct {
	Op      UnaryOp
	Operand ExprID
}

type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignRem
)

func (op AssignOp) String() string {
	switch op {
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignRem:
		return "%="
	}
	return "="
}

// Binary returns the arithmetic operator of a compound assignment.
func (op AssignOp) Binary() (BinaryOp, bool) {
	switch op {
	case AssignAdd:
		return BinAdd, true
	case AssignSub:
		return BinSub, true
	case AssignMul:
		return BinMul, true
	case AssignDiv:
		return BinDiv, true
	case AssignRem:
		return BinRem, true
	}
	return 0, false
}

type AssignExpr struct {
	Op     AssignOp
	Target ExprID
	Value  ExprID
}

type CallExpr struct {
	Callee ExprID
	Args   []ExprID
}

type MethodCallExpr struct {
	Recv     ExprID
	Name     string
	NameSpan source.Span
	Args     []ExprID
}

type FieldExpr struct {
	Target   ExprID
	Name     string
	NameSpan source.Span
}

type IndexExpr struct {
	Target ExprID
	Index  ExprID
}

type FieldInit struct {
	Name string
	Span source.Span
	// Value is an ExprIdent for the shorthand "P { x }".
	Value     ExprID
	Shorthand bool
}

type StructExpr struct {
	Name     string
	NameSpan source.Span
	Fields   []FieldInit
}

type VecExpr struct {
	Elems []ExprID
}

type RangeExpr struct {
	Start, End ExprID
}

type IfExpr struct {
	Cond ExprID
	Then ExprID // ExprBlock
	Else ExprID // ExprBlock, ExprIf or NoExprID
}

type MatchArm struct {
	Span    source.Span
	Pattern PatID
	Guard   ExprID
	Body    ExprID
}

type MatchExpr struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

type BlockExpr struct {
	Stmts []StmtID
	Tail  ExprID
}

type LoopExpr struct {
	Body ExprID
}

type WhileExpr struct {
	Cond ExprID
	Body ExprID
}

type ForExpr struct {
	Name     string
	NameSpan source.Span
	Iter     ExprID
	Body     ExprID
}

type ClosureExpr struct {
	Params []Param
	Body   ExprID
}

type GroupExpr struct {
	Inner ExprID
}
