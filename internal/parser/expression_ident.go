package parser

import (
	"rustle/internal/ast"
	"rustle/internal/token"
)

// parseIdentLed: x | Enum::Variant | Name { field: expr, ... }
func (p *Parser) parseIdentLed() (ast.ExprID, bool) {
	name := p.advance()

	if p.at(token.ColonColon) {
		p.advance()
		variant, ok := p.parseIdent("variant name after '::'")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewPath(name.Span.Cover(variant.Span), ast.PathExpr{
			Enum: name.Text, EnumSpan: name.Span,
			Variant: variant.Text, VariantSpan: variant.Span,
		}), true
	}

	if p.at(token.LBrace) && !p.noStructLit {
		return p.parseStructLiteral(name)
	}

	return p.arenas.Exprs.NewIdent(name.Span, ast.IdentExpr{Name: name.Text}), true
}

func (p *Parser) parseStructLiteral(name token.Token) (ast.ExprID, bool) {
	_, mark := p.open()
	var fields []ast.FieldInit
	for !p.at(token.RBrace) {
		fname, ok := p.parseIdent("field name in struct literal")
		if !ok {
			return ast.NoExprID, false
		}
		init := ast.FieldInit{Name: fname.Text, Span: fname.Span}
		if p.at(token.Colon) {
			p.advance()
			value, ok := p.withStructLit(true, p.parseExpr)
			if !ok {
				return ast.NoExprID, false
			}
			init.Value = value
			init.Span = init.Span.Cover(p.exprSpan(value))
		} else {
			init.Shorthand = true
			init.Value = p.arenas.Exprs.NewIdent(fname.Span, ast.IdentExpr{Name: fname.Text})
		}
		fields = append(fields, init)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.close(token.RBrace, mark)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewStruct(name.Span.Cover(closeTok.Span), ast.StructExpr{
		Name: name.Text, NameSpan: name.Span, Fields: fields,
	}), true
}
