package parser

import (
	"math"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/lexer"
	"rustle/internal/source"
	"rustle/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr — precedence climbing; minPrec - минимальный приоритет уровня.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	if !p.enter() {
		return ast.NoExprID, false
	}
	defer p.leave()

	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()
		prec, rightAssoc := binaryPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			return left, true
		}
		opTok := p.advance()

		nextMinPrec := prec + 1
		if rightAssoc {
			nextMinPrec = prec
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.exprSpan(left).Cover(p.exprSpan(right))

		switch {
		case prec == precAssignment:
			if !p.isPlace(left) {
				p.report(diag.SynInvalidExpression, p.exprSpan(left), "invalid left-hand side of assignment")
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewAssign(sp, ast.AssignExpr{Op: assignOps[opTok.Kind], Target: left, Value: right})
		case prec == precRange:
			left = p.arenas.Exprs.NewRange(sp, ast.RangeExpr{Start: left, End: right})
			if p.at(token.DotDot) {
				p.report(diag.SynInvalidExpression, p.lx.Peek().Span, "range operators cannot be chained")
				return ast.NoExprID, false
			}
		default:
			left = p.arenas.Exprs.NewBinary(sp, ast.BinaryExpr{Op: binaryOps[opTok.Kind], Left: left, Right: right})
		}
	}
}

// isPlace — можно ли присваивать в выражение: x, a.b, a[i], *r.
func (p *Parser) isPlace(id ast.ExprID) bool {
	e := p.arenas.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIdent, ast.ExprField, ast.ExprIndex:
		return true
	case ast.ExprUnary:
		un, _ := p.arenas.Exprs.Unary(id)
		return un.Op == ast.UnDeref
	case ast.ExprGroup:
		g, _ := p.arenas.Exprs.Group(id)
		return p.isPlace(g.Inner)
	}
	return false
}

// parseUnaryExpr обрабатывает префиксы - ! *
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.UnaryOp
		span source.Span
	}
	var prefixes []prefixOp
	// каждый префикс - уровень вложенности
	entered := 0
	defer func() { p.depth -= entered }()
	for {
		op, ok := unaryOps[p.lx.Peek().Kind]
		if !ok {
			break
		}
		if !p.enter() {
			return ast.NoExprID, false
		}
		entered++
		tok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: tok.Span})
	}

	var expr ast.ExprID
	if n := len(prefixes); n > 0 && prefixes[n-1].op == ast.UnNeg &&
		p.at(token.IntLit) && lexer.IsMinIntMagnitude(p.lx.Peek().Text) {
		// -9223372036854775808 складывается в один литерал
		lit := p.advance()
		if p.atOr(token.LParen, token.LBracket, token.Dot) {
			p.report(diag.LexInvalidNumber, lit.Span, lexer.ErrIntRange.Error())
			return ast.NoExprID, false
		}
		sp := prefixes[n-1].span.Cover(lit.Span)
		expr = p.arenas.Exprs.NewLiteral(sp, ast.Literal{Kind: ast.LitInt, Int: math.MinInt64, Raw: "-" + lit.Text})
		prefixes = prefixes[:n-1]
	} else {
		var ok bool
		expr, ok = p.parsePostfixExpr()
		if !ok {
			return ast.NoExprID, false
		}
	}
	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		sp := prefixes[i].span.Cover(p.exprSpan(expr))
		expr = p.arenas.Exprs.NewUnary(sp, ast.UnaryExpr{Op: prefixes[i].op, Operand: expr})
	}
	return expr, true
}

// parsePostfixExpr обрабатывает вызовы, индексацию, поля и методы.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			args, closeTok, ok := p.parseArgs()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewCall(p.exprSpan(expr).Cover(closeTok.Span), ast.CallExpr{Callee: expr, Args: args})

		case token.LBracket:
			_, mark := p.open()
			idx, ok := p.withStructLit(true, p.parseExpr)
			if !ok {
				return ast.NoExprID, false
			}
			closeTok, ok := p.close(token.RBracket, mark)
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewIndex(p.exprSpan(expr).Cover(closeTok.Span), ast.IndexExpr{Target: expr, Index: idx})

		case token.Dot:
			p.advance()
			name, ok := p.parseIdent("field or method name after '.'")
			if !ok {
				return ast.NoExprID, false
			}
			if p.at(token.LParen) {
				args, closeTok, ok := p.parseArgs()
				if !ok {
					return ast.NoExprID, false
				}
				expr = p.arenas.Exprs.NewMethodCall(p.exprSpan(expr).Cover(closeTok.Span), ast.MethodCallExpr{
					Recv: expr, Name: name.Text, NameSpan: name.Span, Args: args,
				})
				continue
			}
			expr = p.arenas.Exprs.NewField(p.exprSpan(expr).Cover(name.Span), ast.FieldExpr{
				Target: expr, Name: name.Text, NameSpan: name.Span,
			})

		default:
			return expr, true
		}
	}
}

// parseArgs разбирает "(a, b, c,)".
func (p *Parser) parseArgs() ([]ast.ExprID, token.Token, bool) {
	_, mark := p.open()
	args, ok := p.parseExprList(token.RParen)
	if !ok {
		return nil, token.Token{}, false
	}
	closeTok, ok := p.close(token.RParen, mark)
	return args, closeTok, ok
}

// parseExprList разбирает выражения через запятую до closer, не съедая его.
func (p *Parser) parseExprList(closer token.Kind) ([]ast.ExprID, bool) {
	var list []ast.ExprID
	for !p.at(closer) {
		e, ok := p.withStructLit(true, p.parseExpr)
		if !ok {
			return nil, false
		}
		list = append(list, e)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return list, true
}
