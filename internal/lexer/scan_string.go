package lexer

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"rustle/internal/diag"
	"rustle/internal/token"
)

// scanString сканирует "..." с экранированием \n \t \r \0 \\ \" \' \u{X..}.
// Ошибки привязаны к открывающей кавычке; InvalidEscape называет саму
// последовательность. Value получает декодированный текст в форме NFC.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // "
	open := lx.cursor.SpanFrom(start)

	var sb strings.Builder
	bad := false
	for {
		if lx.cursor.EOF() {
			lx.report(diag.LexUnterminatedString, open, "unterminated string literal")
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			break
		}
		if b != '\\' {
			_, sz := lx.peekRune()
			sb.Write(lx.file.Content[lx.cursor.Off : lx.cursor.Off+uint32(sz)])
			lx.bumpRune()
			continue
		}

		escStart := lx.cursor.Off
		lx.cursor.Bump() // \
		if lx.cursor.EOF() {
			continue
		}
		switch c := lx.cursor.Peek(); c {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case '\\', '"', '\'':
			sb.WriteByte(c)
		case 'u':
			lx.cursor.Bump()
			r, ok := lx.scanUnicodeEscape()
			if !ok {
				esc := string(lx.file.Content[escStart:lx.cursor.Off])
				lx.report(diag.LexInvalidEscape, open, fmt.Sprintf("invalid escape sequence '%s' in string literal", esc))
				bad = true
				continue
			}
			sb.WriteRune(r)
			continue
		default:
			lx.bumpRune()
			esc := string(lx.file.Content[escStart:lx.cursor.Off])
			lx.report(diag.LexInvalidEscape, open, fmt.Sprintf("invalid escape sequence '%s' in string literal", esc))
			bad = true
			continue
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp), Value: norm.NFC.String(sb.String())}
	if bad {
		tok.Kind = token.Invalid
	}
	return tok
}

// scanUnicodeEscape разбирает "{XXXX}" после \u (1–6 hex цифр).
func (lx *Lexer) scanUnicodeEscape() (rune, bool) {
	if !lx.cursor.Eat('{') {
		return 0, false
	}
	var v rune
	n := 0
	for isHex(lx.cursor.Peek()) {
		v = v*16 + rune(hexVal(lx.cursor.Bump()))
		n++
		if n > 6 {
			return 0, false
		}
	}
	if !lx.cursor.Eat('}') || n == 0 {
		return 0, false
	}
	if v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
		return 0, false
	}
	return v, true
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
