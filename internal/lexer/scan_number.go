package lexer

import (
	"fmt"

	"rustle/internal/diag"
	"rustle/internal/token"
)

// scanNumber понимает 123, 1_000, 0x_ff, 0o17, 0b1010, 1.5, 2e10, 1.5e-3.
// Дробная часть требует цифру после точки, поэтому "1..2" и "1.abs()"
// лексятся как число и оператор. Любая ошибка превращает литерал
// целиком в один Invalid токен с одной диагностикой InvalidNumber.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	bad := ""
	fail := func(msg string) {
		if bad == "" {
			bad = msg
		}
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && radixOf(b1) != 0 {
		radix := radixOf(b1)
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for isIdentContinueByte(lx.cursor.Peek()) {
			c := lx.cursor.Bump()
			switch {
			case c == '_':
			case digitValid(c, radix):
				digits++
			case (c == 'e' || c == 'E') && radix != 16:
				fail("radix literal cannot have an exponent")
			default:
				fail(fmt.Sprintf("invalid digit %q for base %d literal", rune(c), radix))
			}
		}
		if digits == 0 {
			fail("missing digits after radix prefix")
		}
		if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			fail("radix literal cannot have a fractional part")
		}
	} else {
		lx.eatDecDigits()
		if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
			kind = token.FloatLit
			lx.cursor.Bump()
			lx.eatDecDigits()
		}
		if c := lx.cursor.Peek(); c == 'e' || c == 'E' {
			kind = token.FloatLit
			lx.cursor.Bump()
			if c := lx.cursor.Peek(); c == '+' || c == '-' {
				lx.cursor.Bump()
			}
			if !isDec(lx.cursor.Peek()) {
				fail("malformed exponent in number literal")
			}
			lx.eatDecDigits()
		}
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
			fail("invalid suffix on number literal")
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if bad == "" {
		var err error
		if kind == token.IntLit {
			_, err = ParseInt(text)
		} else {
			_, err = ParseFloat(text)
		}
		// -9223372036854775808: 2^63 проходит, если перед ним минус.
		if err != nil && !(lx.prev == token.Minus && IsMinIntMagnitude(text)) {
			fail(err.Error())
		}
	}
	if bad != "" {
		lx.report(diag.LexInvalidNumber, sp, bad)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (lx *Lexer) eatDecDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func radixOf(b byte) int {
	switch b {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

func digitValid(c byte, radix int) bool {
	switch radix {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return isHex(c)
	}
	return isDec(c)
}
