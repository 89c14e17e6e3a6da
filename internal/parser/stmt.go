package parser

import (
	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/token"
)

// parseBody разбирает statements до closer (RBrace или EOF). Выражение без
// ';' прямо перед closer становится хвостом блока.
func (p *Parser) parseBody(closer token.Kind) (stmts []ast.StmtID, tail ast.ExprID) {
	base := len(p.delims)
	for !p.aborted {
		tok := p.lx.Peek()
		if tok.Kind == closer || tok.Kind == token.EOF {
			break
		}
		switch tok.Kind {
		case token.Semicolon:
			p.advance()
			continue
		case token.RBrace:
			// closer == EOF: лишняя '}' на верхнем уровне
			p.report(diag.SynUnexpectedToken, tok.Span, "unexpected '}'")
			p.advance()
			continue
		}

		stmt, expr, ok := p.parseStmt(closer)
		p.delims = p.delims[:base]
		switch {
		case !ok:
			p.resyncStatement()
			if next := p.lx.Peek(); next.Span.Start == tok.Span.Start && next.Kind != token.EOF && next.Kind != closer {
				p.advance()
			}
		case expr.IsValid():
			tail = expr
		default:
			stmts = append(stmts, stmt)
		}
	}
	return stmts, tail
}

// parseStmt возвращает либо statement, либо хвостовое выражение.
func (p *Parser) parseStmt(closer token.Kind) (ast.StmtID, ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwLet:
		id, ok := p.parseLetStmt()
		return id, ast.NoExprID, ok
	case token.KwFn, token.KwStruct, token.KwEnum:
		item, ok := p.parseItem()
		if !ok {
			return ast.NoStmtID, ast.NoExprID, false
		}
		return p.arenas.Stmts.NewItem(p.arenas.Items.Get(item).Span, item), ast.NoExprID, true
	case token.KwReturn, token.KwBreak:
		kw := p.advance()
		value := ast.NoExprID
		if !p.atOr(token.Semicolon, token.RBrace, token.EOF) {
			v, ok := p.parseExpr()
			if !ok {
				return ast.NoStmtID, ast.NoExprID, false
			}
			value = v
		}
		sp := kw.Span
		if value.IsValid() {
			sp = sp.Cover(p.exprSpan(value))
		}
		p.endStmt(closer)
		if kw.Kind == token.KwReturn {
			return p.arenas.Stmts.NewReturn(sp, value), ast.NoExprID, true
		}
		return p.arenas.Stmts.NewBreak(sp, value), ast.NoExprID, true
	case token.KwContinue:
		kw := p.advance()
		p.endStmt(closer)
		return p.arenas.Stmts.NewContinue(kw.Span), ast.NoExprID, true
	}

	var (
		expr ast.ExprID
		ok   bool
	)
	blockLike := isBlockLikeStart(tok.Kind)
	if blockLike {
		// в позиции statement блочное выражение не продолжается операторами
		expr, ok = p.parseBlockLikeExpr()
	} else {
		expr, ok = p.parseExpr()
	}
	if !ok {
		return ast.NoStmtID, ast.NoExprID, false
	}
	sp := p.exprSpan(expr)
	switch {
	case p.at(token.Semicolon):
		p.advance()
		return p.arenas.Stmts.NewExpr(sp, expr, true), ast.NoExprID, true
	case p.at(closer):
		return ast.NoStmtID, expr, true
	case blockLike:
		return p.arenas.Stmts.NewExpr(sp, expr, false), ast.NoExprID, true
	default:
		p.unexpected("';' after expression")
		return p.arenas.Stmts.NewExpr(sp, expr, true), ast.NoExprID, true
	}
}

// endStmt требует ';'. Перед закрывающей скобкой блока ';' можно опустить.
func (p *Parser) endStmt(closer token.Kind) {
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	if p.at(closer) {
		return
	}
	p.unexpected("';'")
}

func isBlockLikeStart(k token.Kind) bool {
	switch k {
	case token.KwIf, token.KwMatch, token.KwLoop, token.KwWhile, token.KwFor, token.LBrace:
		return true
	}
	return false
}

// let mut? name (: Type)? (= expr)? ;
func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	letTok := p.advance()
	mut := false
	if p.at(token.KwMut) {
		p.advance()
		mut = true
	}
	name, ok := p.parseIdent("variable name after 'let'")
	if !ok {
		return ast.NoStmtID, false
	}
	typ := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		if typ, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	value := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	sp := letTok.Span.Cover(p.lastSpan)
	if _, ok := p.expect(token.Semicolon, "';' after let statement"); ok {
		sp = sp.Cover(p.lastSpan)
	}
	return p.arenas.Stmts.NewLet(sp, name.Text, name.Span, mut, typ, value), true
}
