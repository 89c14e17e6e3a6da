package parser

import (
	"rustle/internal/ast"
	"rustle/internal/token"
)

// Type := ident ("<" Type,* ">")? | "(" ")"
func (p *Parser) parseType() (ast.TypeID, bool) {
	if !p.enter() {
		return ast.NoTypeID, false
	}
	defer p.leave()

	if p.at(token.LParen) {
		openTok, mark := p.open()
		closeTok, ok := p.close(token.RParen, mark)
		if !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.New(openTok.Span.Cover(closeTok.Span), "()", nil), true
	}
	name, ok := p.parseIdent("type name")
	if !ok {
		return ast.NoTypeID, false
	}
	sp := name.Span
	var args []ast.TypeID
	if p.at(token.Lt) {
		p.advance()
		for !p.at(token.Gt) {
			arg, ok := p.parseType()
			if !ok {
				return ast.NoTypeID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		gt, ok := p.expect(token.Gt, "'>' to close type arguments")
		if !ok {
			return ast.NoTypeID, false
		}
		sp = sp.Cover(gt.Span)
	}
	return p.arenas.Types.New(sp, name.Text, args), true
}
