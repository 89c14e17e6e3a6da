package parser

import (
	"rustle/internal/ast"
	"rustle/internal/token"
)

// Таблица приоритетов, чем больше число, тем выше приоритет.
const (
	precAssignment     = 1 // = += -= *= /= %=
	precRange          = 2 // ..
	precLogicalOr      = 3 // ||
	precLogicalAnd     = 4 // &&
	precEquality       = 5 // == !=
	precComparison     = 6 // < <= > >=
	precAdditive       = 7 // + -
	precMultiplicative = 8 // * / %
)

// binaryPrec возвращает (приоритет, правоассоциативный) или -1.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign,
		token.StarAssign, token.SlashAssign, token.PercentAssign:
		return precAssignment, true
	case token.DotDot:
		return precRange, false
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	}
	return -1, false
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Plus:    ast.BinAdd,
	token.Minus:   ast.BinSub,
	token.Star:    ast.BinMul,
	token.Slash:   ast.BinDiv,
	token.Percent: ast.BinRem,
	token.EqEq:    ast.BinEq,
	token.BangEq:  ast.BinNe,
	token.Lt:      ast.BinLt,
	token.LtEq:    ast.BinLe,
	token.Gt:      ast.BinGt,
	token.GtEq:    ast.BinGe,
	token.AndAnd:  ast.BinAnd,
	token.OrOr:    ast.BinOr,
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.Assign:        ast.AssignPlain,
	token.PlusAssign:    ast.AssignAdd,
	token.MinusAssign:   ast.AssignSub,
	token.StarAssign:    ast.AssignMul,
	token.SlashAssign:   ast.AssignDiv,
	token.PercentAssign: ast.AssignRem,
}

var unaryOps = map[token.Kind]ast.UnaryOp{
	token.Minus: ast.UnNeg,
	token.Bang:  ast.UnNot,
	token.Star:  ast.UnDeref,
}
