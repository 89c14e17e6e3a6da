package parser

import (
	"fmt"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/source"
	"rustle/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (tok,false).
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.unexpected(what)
	return p.lx.Peek(), false
}

// unexpected reports the current token as not being what.
func (p *Parser) unexpected(what string) {
	tok := p.lx.Peek()
	if tok.Kind == token.EOF && len(p.delims) > 0 {
		p.reportUnclosed()
		return
	}
	p.report(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("expected %s, found %s", what, describe(tok)))
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.silenced || p.aborted {
		return
	}
	p.errors++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	case token.IntLit, token.FloatLit, token.StringLit:
		return fmt.Sprintf("literal %s", tok.Text)
	}
	return fmt.Sprintf("'%s'", tok.Text)
}

// ===== Разделители =====

// open съедает открывающий разделитель, кладёт его на стек и возвращает
// метку для close.
func (p *Parser) open() (token.Token, int) {
	mark := len(p.delims)
	tok := p.advance()
	p.delims = append(p.delims, tok)
	return tok, mark
}

// close ожидает закрывающий разделитель и снимает со стека всё выше mark.
// На EOF сообщение одно на весь файл и указывает на самый внешний разделитель.
func (p *Parser) close(k token.Kind, mark int) (token.Token, bool) {
	if p.at(k) {
		p.delims = p.delims[:mark]
		return p.advance(), true
	}
	if p.at(token.EOF) {
		p.reportUnclosed()
	} else {
		p.unexpected(fmt.Sprintf("'%s'", k))
	}
	p.delims = p.delims[:mark]
	return p.lx.Peek(), false
}

func (p *Parser) reportUnclosed() {
	if p.silenced || len(p.delims) == 0 {
		return
	}
	outer := p.delims[0]
	p.report(diag.SynUnclosedDelimiter, outer.Span, fmt.Sprintf("unclosed delimiter '%s'", outer.Text))
	p.silenced = true
}

// ===== Глубина рекурсии =====

func (p *Parser) enter() bool {
	if p.aborted {
		return false
	}
	p.depth++
	if p.depth > p.opts.MaxNesting {
		p.report(diag.SynNestingTooDeep, p.lx.Peek().Span,
			fmt.Sprintf("nesting exceeds the limit of %d", p.opts.MaxNesting))
		p.aborted = true
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// withStructLit runs fn with struct literals allowed or forbidden and
// restores the previous mode.
func (p *Parser) withStructLit(allowed bool, fn func() (ast.ExprID, bool)) (ast.ExprID, bool) {
	saved := p.noStructLit
	p.noStructLit = !allowed
	defer func() { p.noStructLit = saved }()
	return fn()
}

// ===== Восстановление =====

// resyncStatement пропускает токены до границы statement: ';' (съедается),
// '}' текущего уровня или ключевое слово начала statement/item.
func (p *Parser) resyncStatement() {
	depth := 0
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		default:
			if depth == 0 && isStmtStarter(tok.Kind) {
				return
			}
		}
		p.advance()
	}
}

func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwLet, token.KwFn, token.KwStruct, token.KwEnum,
		token.KwReturn, token.KwBreak, token.KwContinue,
		token.KwIf, token.KwWhile, token.KwLoop, token.KwFor, token.KwMatch:
		return true
	}
	return false
}

// parseIdent ожидает идентификатор.
func (p *Parser) parseIdent(what string) (token.Token, bool) {
	return p.expect(token.Ident, what)
}
