package parser

import (
	"rustle/internal/ast"
	"rustle/internal/token"
)

func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwFn:
		return p.parseFnItem()
	case token.KwStruct:
		return p.parseStructItem()
	default:
		return p.parseEnumItem()
	}
}

// fn name(params) (-> Type)? { body }
func (p *Parser) parseFnItem() (ast.ItemID, bool) {
	fnTok := p.advance()
	name, ok := p.parseIdent("function name")
	if !ok {
		return ast.NoItemID, false
	}
	if !p.at(token.LParen) {
		p.unexpected("'(' after function name")
		return ast.NoItemID, false
	}
	_, mark := p.open()
	params, ok := p.parseParams(token.RParen)
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.close(token.RParen, mark); !ok {
		return ast.NoItemID, false
	}
	result := ast.NoTypeID
	if p.at(token.Arrow) {
		p.advance()
		if result, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if !p.at(token.LBrace) {
		p.unexpected("'{' to start function body")
		return ast.NoItemID, false
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoItemID, false
	}
	sp := fnTok.Span.Cover(p.exprSpan(body))
	return p.arenas.Items.NewFn(sp, name.Text, name.Span, params, result, body), true
}

// parseParams разбирает "a, b: T," до closer, не съедая его.
func (p *Parser) parseParams(closer token.Kind) ([]ast.Param, bool) {
	var params []ast.Param
	for !p.at(closer) {
		name, ok := p.parseIdent("parameter name")
		if !ok {
			return nil, false
		}
		param := ast.Param{Name: name.Text, Span: name.Span}
		if p.at(token.Colon) {
			p.advance()
			if param.Type, ok = p.parseType(); !ok {
				return nil, false
			}
		}
		params = append(params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return params, true
}

// struct Name { field: Type, ... }
func (p *Parser) parseStructItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("struct name")
	if !ok {
		return ast.NoItemID, false
	}
	if !p.at(token.LBrace) {
		p.unexpected("'{' after struct name")
		return ast.NoItemID, false
	}
	_, mark := p.open()
	var fields []ast.FieldDecl
	for !p.at(token.RBrace) {
		fname, ok := p.parseIdent("field name")
		if !ok {
			return ast.NoItemID, false
		}
		if _, ok := p.expect(token.Colon, "':' after field name"); !ok {
			return ast.NoItemID, false
		}
		typ, ok := p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
		fields = append(fields, ast.FieldDecl{Name: fname.Text, Span: fname.Span, Type: typ})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.close(token.RBrace, mark)
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewStruct(kw.Span.Cover(closeTok.Span), name.Text, name.Span, fields), true
}

// enum Name { V, W(T, U), ... }
func (p *Parser) parseEnumItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("enum name")
	if !ok {
		return ast.NoItemID, false
	}
	if !p.at(token.LBrace) {
		p.unexpected("'{' after enum name")
		return ast.NoItemID, false
	}
	_, mark := p.open()
	var variants []ast.VariantDecl
	for !p.at(token.RBrace) {
		vname, ok := p.parseIdent("variant name")
		if !ok {
			return ast.NoItemID, false
		}
		v := ast.VariantDecl{Name: vname.Text, Span: vname.Span}
		if p.at(token.LParen) {
			_, pmark := p.open()
			v.Tuple = true
			for !p.at(token.RParen) {
				typ, ok := p.parseType()
				if !ok {
					return ast.NoItemID, false
				}
				v.Fields = append(v.Fields, typ)
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			if _, ok := p.close(token.RParen, pmark); !ok {
				return ast.NoItemID, false
			}
			v.Span = v.Span.Cover(p.lastSpan)
		}
		variants = append(variants, v)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.close(token.RBrace, mark)
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewEnum(kw.Span.Cover(closeTok.Span), name.Text, name.Span, variants), true
}
