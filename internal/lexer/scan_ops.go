package lexer

import (
	"fmt"

	"rustle/internal/diag"
	"rustle/internal/token"
)

type twoByteOp struct {
	a, b byte
	kind token.Kind
}

// Жадность: двухсимвольные операторы проверяются раньше односимвольных.
var twoByteOps = [...]twoByteOp{
	{'.', '.', token.DotDot},
	{':', ':', token.ColonColon},
	{'-', '>', token.Arrow},
	{'=', '>', token.FatArrow},
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
	{'+', '=', token.PlusAssign},
	{'-', '=', token.MinusAssign},
	{'*', '=', token.StarAssign},
	{'/', '=', token.SlashAssign},
	{'%', '=', token.PercentAssign},
}

var oneByteOps = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	for _, op := range twoByteOps {
		if lx.try2(op.a, op.b) {
			return emit(op.kind)
		}
	}

	ch := lx.cursor.Bump()
	if k := oneByteOps[ch]; k != token.Invalid {
		return emit(k)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnexpectedChar, sp, fmt.Sprintf("unexpected character %q", rune(ch)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
