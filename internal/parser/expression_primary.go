package parser

import (
	"errors"
	"math"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/lexer"
	"rustle/internal/token"
)

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse:
		return p.parseLiteral()

	case token.Ident:
		return p.parseIdentLed()

	case token.LParen:
		openTok, mark := p.open()
		if p.at(token.RParen) {
			closeTok, _ := p.close(token.RParen, mark)
			return p.arenas.Exprs.NewLiteral(openTok.Span.Cover(closeTok.Span), ast.Literal{Kind: ast.LitUnit}), true
		}
		inner, ok := p.withStructLit(true, p.parseExpr)
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, ok := p.close(token.RParen, mark)
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(openTok.Span.Cover(closeTok.Span), ast.GroupExpr{Inner: inner}), true

	case token.LBracket:
		openTok, mark := p.open()
		elems, ok := p.parseExprList(token.RBracket)
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, ok := p.close(token.RBracket, mark)
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewVec(openTok.Span.Cover(closeTok.Span), ast.VecExpr{Elems: elems}), true

	case token.Pipe, token.OrOr:
		return p.parseClosure()

	case token.KwIf, token.KwMatch, token.KwLoop, token.KwWhile, token.KwFor, token.LBrace:
		return p.parseBlockLikeExpr()
	}

	if tok.Kind == token.EOF && len(p.delims) > 0 {
		p.reportUnclosed()
	} else {
		p.report(diag.SynInvalidExpression, tok.Span, "expected expression, found "+describe(tok))
	}
	return ast.NoExprID, false
}

func (p *Parser) parseLiteral() (ast.ExprID, bool) {
	lit, tok, ok := p.literalToken(false)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLiteral(tok.Span, lit), true
}

// literalToken съедает литерал и декодирует значение. negated - литерал
// стоит после '-' в паттерне; тогда допустим 2^63 (Int = MinInt64).
func (p *Parser) literalToken(negated bool) (ast.Literal, token.Token, bool) {
	tok := p.advance()
	switch tok.Kind {
	case token.IntLit:
		if negated && lexer.IsMinIntMagnitude(tok.Text) {
			return ast.Literal{Kind: ast.LitInt, Int: math.MinInt64, Raw: tok.Text}, tok, true
		}
		v, err := lexer.ParseInt(tok.Text)
		if errors.Is(err, lexer.ErrIntRange) {
			p.report(diag.LexInvalidNumber, tok.Span, err.Error())
			return ast.Literal{}, tok, false
		}
		if err != nil {
			p.report(diag.SynInvalidExpression, tok.Span, err.Error())
			return ast.Literal{}, tok, false
		}
		return ast.Literal{Kind: ast.LitInt, Int: v, Raw: tok.Text}, tok, true
	case token.FloatLit:
		v, err := lexer.ParseFloat(tok.Text)
		if err != nil {
			p.report(diag.SynInvalidExpression, tok.Span, err.Error())
			return ast.Literal{}, tok, false
		}
		return ast.Literal{Kind: ast.LitFloat, Float: v, Raw: tok.Text}, tok, true
	case token.StringLit:
		return ast.Literal{Kind: ast.LitString, Str: tok.Value}, tok, true
	case token.KwTrue:
		return ast.Literal{Kind: ast.LitBool, Bool: true}, tok, true
	default:
		return ast.Literal{Kind: ast.LitBool}, tok, true
	}
}
