package parser

import (
	"rustle/internal/ast"
	"rustle/internal/token"
)

// parseBlockLikeExpr: if / match / loop / while / for / { ... }
func (p *Parser) parseBlockLikeExpr() (ast.ExprID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwIf:
		return p.parseIfExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.KwLoop:
		kw := p.advance()
		body, ok := p.parseBraced()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewLoop(kw.Span.Cover(p.exprSpan(body)), ast.LoopExpr{Body: body}), true
	case token.KwWhile:
		kw := p.advance()
		cond, ok := p.withStructLit(false, p.parseExpr)
		if !ok {
			return ast.NoExprID, false
		}
		body, ok := p.parseBraced()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewWhile(kw.Span.Cover(p.exprSpan(body)), ast.WhileExpr{Cond: cond, Body: body}), true
	case token.KwFor:
		return p.parseForExpr()
	default:
		return p.parseBlockExpr()
	}
}

// parseBraced требует '{' и разбирает блок тела конструкции.
func (p *Parser) parseBraced() (ast.ExprID, bool) {
	if !p.at(token.LBrace) {
		p.unexpected("'{'")
		return ast.NoExprID, false
	}
	return p.parseBlockExpr()
}

// parseBlockExpr: { stmt* expr? }
func (p *Parser) parseBlockExpr() (ast.ExprID, bool) {
	if !p.enter() {
		return ast.NoExprID, false
	}
	defer p.leave()

	saved := p.noStructLit
	p.noStructLit = false
	defer func() { p.noStructLit = saved }()

	openTok, mark := p.open()
	stmts, tail := p.parseBody(token.RBrace)
	if p.aborted {
		return ast.NoExprID, false
	}
	closeTok, ok := p.close(token.RBrace, mark)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewBlock(openTok.Span.Cover(closeTok.Span), ast.BlockExpr{Stmts: stmts, Tail: tail}), true
}

// if cond { } (else if ... | else { })?
func (p *Parser) parseIfExpr() (ast.ExprID, bool) {
	kw := p.advance()
	cond, ok := p.withStructLit(false, p.parseExpr)
	if !ok {
		return ast.NoExprID, false
	}
	then, ok := p.parseBraced()
	if !ok {
		return ast.NoExprID, false
	}
	data := ast.IfExpr{Cond: cond, Then: then}
	sp := kw.Span.Cover(p.exprSpan(then))
	if p.at(token.KwElse) {
		p.advance()
		var els ast.ExprID
		if p.at(token.KwIf) {
			// else if - тоже уровень вложенности
			if !p.enter() {
				return ast.NoExprID, false
			}
			els, ok = p.parseIfExpr()
			p.leave()
		} else {
			els, ok = p.parseBraced()
		}
		if !ok {
			return ast.NoExprID, false
		}
		data.Else = els
		sp = sp.Cover(p.exprSpan(els))
	}
	return p.arenas.Exprs.NewIf(sp, data), true
}

// for name in iter { }
func (p *Parser) parseForExpr() (ast.ExprID, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("loop variable after 'for'")
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwIn, "'in' after loop variable"); !ok {
		return ast.NoExprID, false
	}
	iter, ok := p.withStructLit(false, p.parseExpr)
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBraced()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewFor(kw.Span.Cover(p.exprSpan(body)), ast.ForExpr{
		Name: name.Text, NameSpan: name.Span, Iter: iter, Body: body,
	}), true
}

// match scrutinee { pat (if guard)? => expr, ... }
// После блочного тела запятая не обязательна.
func (p *Parser) parseMatchExpr() (ast.ExprID, bool) {
	kw := p.advance()
	scrut, ok := p.withStructLit(false, p.parseExpr)
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.LBrace) {
		p.unexpected("'{' after match scrutinee")
		return ast.NoExprID, false
	}
	_, mark := p.open()
	var arms []ast.MatchArm
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		arm, ok := p.parseMatchArm()
		if !ok {
			return ast.NoExprID, false
		}
		arms = append(arms, arm)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if p.at(token.RBrace) || p.arenas.Exprs.Get(arm.Body).Kind.IsBlockLike() {
			continue
		}
		p.unexpected("',' between match arms")
		return ast.NoExprID, false
	}
	closeTok, ok := p.close(token.RBrace, mark)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewMatch(kw.Span.Cover(closeTok.Span), ast.MatchExpr{Scrutinee: scrut, Arms: arms}), true
}

func (p *Parser) parseMatchArm() (ast.MatchArm, bool) {
	pat, ok := p.parsePattern()
	if !ok {
		return ast.MatchArm{}, false
	}
	arm := ast.MatchArm{Pattern: pat}
	if p.at(token.KwIf) {
		p.advance()
		if arm.Guard, ok = p.withStructLit(true, p.parseExpr); !ok {
			return ast.MatchArm{}, false
		}
	}
	if _, ok := p.expect(token.FatArrow, "'=>' after match pattern"); !ok {
		return ast.MatchArm{}, false
	}
	if arm.Body, ok = p.withStructLit(true, p.parseExpr); !ok {
		return ast.MatchArm{}, false
	}
	arm.Span = p.arenas.Pats.Get(pat).Span.Cover(p.exprSpan(arm.Body))
	return arm, true
}

// |a, b| expr  или  || expr
func (p *Parser) parseClosure() (ast.ExprID, bool) {
	first := p.advance()
	var params []ast.Param
	if first.Kind == token.Pipe {
		var ok bool
		if params, ok = p.parseParams(token.Pipe); !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.Pipe, "'|' to close closure parameters"); !ok {
			return ast.NoExprID, false
		}
	}
	body, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewClosure(first.Span.Cover(p.exprSpan(body)), ast.ClosureExpr{Params: params, Body: body}), true
}
