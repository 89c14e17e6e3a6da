package parser

import (
	"rustle/internal/ast"
	"rustle/internal/token"
)

// pattern := alt ("|" alt)*
func (p *Parser) parsePattern() (ast.PatID, bool) {
	if !p.enter() {
		return ast.NoPatID, false
	}
	defer p.leave()

	first, ok := p.parseAltPattern()
	if !ok {
		return ast.NoPatID, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}
	alts := []ast.PatID{first}
	for p.at(token.Pipe) {
		p.advance()
		alt, ok := p.parseAltPattern()
		if !ok {
			return ast.NoPatID, false
		}
		alts = append(alts, alt)
	}
	sp := p.arenas.Pats.Get(first).Span.Cover(p.arenas.Pats.Get(alts[len(alts)-1]).Span)
	return p.arenas.Pats.NewOr(sp, alts), true
}

func (p *Parser) parseAltPattern() (ast.PatID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return p.arenas.Pats.NewWild(tok.Span), true

	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse:
		lit, _, ok := p.literalToken(false)
		if !ok {
			return ast.NoPatID, false
		}
		return p.arenas.Pats.NewLit(tok.Span, ast.LitPat{Lit: lit}), true

	case token.Minus:
		minus := p.advance()
		if !p.atOr(token.IntLit, token.FloatLit) {
			p.unexpected("number after '-' in pattern")
			return ast.NoPatID, false
		}
		lit, numTok, ok := p.literalToken(true)
		if !ok {
			return ast.NoPatID, false
		}
		// -MinInt64 == MinInt64
		lit.Int = -lit.Int
		lit.Float = -lit.Float
		return p.arenas.Pats.NewLit(minus.Span.Cover(numTok.Span), ast.LitPat{Lit: lit, Negative: true}), true

	case token.Ident:
		return p.parseIdentPattern()
	}
	p.unexpected("pattern")
	return ast.NoPatID, false
}

// x | Some(p) | E::V | E::V(p, q) | P { x, y: p }
func (p *Parser) parseIdentPattern() (ast.PatID, bool) {
	name := p.advance()

	switch p.lx.Peek().Kind {
	case token.ColonColon:
		p.advance()
		variant, ok := p.parseIdent("variant name after '::'")
		if !ok {
			return ast.NoPatID, false
		}
		data := ast.VariantPat{Enum: name.Text, Variant: variant.Text, NameSpan: name.Span.Cover(variant.Span)}
		sp := data.NameSpan
		if p.at(token.LParen) {
			if data.Args, ok = p.parseSubPatterns(); !ok {
				return ast.NoPatID, false
			}
			data.Tuple = true
			sp = sp.Cover(p.lastSpan)
		}
		return p.arenas.Pats.NewVariant(sp, data), true

	case token.LParen:
		args, ok := p.parseSubPatterns()
		if !ok {
			return ast.NoPatID, false
		}
		return p.arenas.Pats.NewVariant(name.Span.Cover(p.lastSpan), ast.VariantPat{
			Variant: name.Text, NameSpan: name.Span, Args: args, Tuple: true,
		}), true

	case token.LBrace:
		return p.parseStructPattern(name)
	}
	return p.arenas.Pats.NewBinding(name.Span, name.Text), true
}

func (p *Parser) parseSubPatterns() ([]ast.PatID, bool) {
	_, mark := p.open()
	var args []ast.PatID
	for !p.at(token.RParen) {
		sub, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		args = append(args, sub)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.close(token.RParen, mark); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseStructPattern(name token.Token) (ast.PatID, bool) {
	_, mark := p.open()
	var fields []ast.FieldPat
	for !p.at(token.RBrace) {
		fname, ok := p.parseIdent("field name in struct pattern")
		if !ok {
			return ast.NoPatID, false
		}
		fp := ast.FieldPat{Name: fname.Text, Span: fname.Span}
		if p.at(token.Colon) {
			p.advance()
			if fp.Pat, ok = p.parsePattern(); !ok {
				return ast.NoPatID, false
			}
			fp.Span = fp.Span.Cover(p.arenas.Pats.Get(fp.Pat).Span)
		}
		fields = append(fields, fp)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.close(token.RBrace, mark)
	if !ok {
		return ast.NoPatID, false
	}
	return p.arenas.Pats.NewStruct(name.Span.Cover(closeTok.Span), ast.StructPat{
		Name: name.Text, NameSpan: name.Span, Fields: fields,
	}), true
}
