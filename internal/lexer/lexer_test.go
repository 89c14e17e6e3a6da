package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/diag"
	"rustle/internal/lexer"
	"rustle/internal/source"
	"rustle/internal/token"
)

// lexAll прогоняет весь файл и возвращает токены без EOF и диагностики.
func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.rsl", []byte(src)))
	bag := diag.NewBag(0)
	var toks []token.Token
	for tok := range lexer.Tokens(f, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}) {
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestLongestMatchOperators(t *testing.T) {
	toks, bag := lexAll(t, "== = .. . += + :: : => -> && || | != ! <= < >= > -= *= /= %=")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.EqEq, token.Assign, token.DotDot, token.Dot, token.PlusAssign, token.Plus,
		token.ColonColon, token.Colon, token.FatArrow, token.Arrow, token.AndAnd, token.OrOr,
		token.Pipe, token.BangEq, token.Bang, token.LtEq, token.Lt, token.GtEq, token.Gt,
		token.MinusAssign, token.StarAssign, token.SlashAssign, token.PercentAssign,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	toks, _ := lexAll(t, "fn fnord let mut _ _x матрица struct enum true false")
	want := []token.Kind{
		token.KwFn, token.Ident, token.KwLet, token.KwMut, token.Underscore, token.Ident,
		token.Ident, token.KwStruct, token.KwEnum, token.KwTrue, token.KwFalse,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if toks[6].Text != "матрица" {
		t.Errorf("unicode ident text = %q", toks[6].Text)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"1_000_000", token.IntLit},
		{"0xff", token.IntLit},
		{"0o17", token.IntLit},
		{"0b1010_1010", token.IntLit},
		{"1.5", token.FloatLit},
		{"2e10", token.FloatLit},
		{"1.5e-3", token.FloatLit},
		{"9223372036854775807", token.IntLit},
	}
	for _, tt := range tests {
		toks, bag := lexAll(t, tt.src)
		if bag.Len() != 0 || len(toks) != 1 || toks[0].Kind != tt.kind {
			t.Errorf("%q: got %v, diags %v", tt.src, kinds(toks), bag.Items())
		}
	}
}

func TestRangeAfterInt(t *testing.T) {
	toks, _ := lexAll(t, "0..10 1.abs()")
	want := []token.Kind{
		token.IntLit, token.DotDot, token.IntLit,
		token.IntLit, token.Dot, token.Ident, token.LParen, token.RParen,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidNumbers(t *testing.T) {
	for _, src := range []string{
		"9223372036854775808",
		"0b102",
		"0o8",
		"0x",
		"1e",
		"1e+",
		"0x1.5",
		"0b1e3",
		"12abc",
	} {
		toks, bag := lexAll(t, src)
		if diff := cmp.Diff([]diag.Code{diag.LexInvalidNumber}, codes(bag)); diff != "" {
			t.Errorf("%q: codes mismatch (-want +got):\n%s", src, diff)
		}
		if len(toks) != 1 || toks[0].Kind != token.Invalid {
			t.Errorf("%q: want single Invalid token, got %v", src, kinds(toks))
		}
	}
}

func TestMinIntMagnitudeAfterMinus(t *testing.T) {
	for _, src := range []string{"-9223372036854775808", "- 0x8000_0000_0000_0000", "-/* c */9_223_372_036_854_775_808"} {
		toks, bag := lexAll(t, src)
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics: %v", src, bag.Items())
		}
		if diff := cmp.Diff([]token.Kind{token.Minus, token.IntLit}, kinds(toks)); diff != "" {
			t.Errorf("%q: kinds mismatch (-want +got):\n%s", src, diff)
		}
	}
	for _, src := range []string{"-9223372036854775809", "+9223372036854775808", "- -18446744073709551616"} {
		_, bag := lexAll(t, src)
		if diff := cmp.Diff([]diag.Code{diag.LexInvalidNumber}, codes(bag)); diff != "" {
			t.Errorf("%q: codes mismatch (-want +got):\n%s", src, diff)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks, bag := lexAll(t, `"a\n\t\r\\\"\'\u{1F600}\0"`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := "a\n\t\r\\\"'\U0001F600\x00"
	if toks[0].Value != want {
		t.Errorf("Value = %q, want %q", toks[0].Value, want)
	}
}

func TestStringNFC(t *testing.T) {
	// "e" + combining acute accent
	toks, _ := lexAll(t, "\"e\u0301\"")
	if toks[0].Value != "\u00e9" {
		t.Errorf("Value = %q, want NFC form", toks[0].Value)
	}
}

func TestStringErrorsAnchorAtQuote(t *testing.T) {
	_, bag := lexAll(t, `let s = "ab\q";`)
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexInvalidEscape {
		t.Fatalf("got %v", items)
	}
	if items[0].Primary.Start != 8 || items[0].Primary.End != 9 {
		t.Errorf("span = %v, want opening quote", items[0].Primary)
	}
	if want := `invalid escape sequence '\q' in string literal`; items[0].Message != want {
		t.Errorf("message = %q", items[0].Message)
	}

	_, bag = lexAll(t, `x "abc`)
	items = bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexUnterminatedString || items[0].Primary.Start != 2 {
		t.Fatalf("got %v", items)
	}
}

func TestComments(t *testing.T) {
	toks, bag := lexAll(t, "a // line\n/* outer /* inner */ still */ b")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) != 2 || toks[1].Text != "b" {
		t.Errorf("got %v", toks)
	}

	_, bag = lexAll(t, "a /* /* */")
	if diff := cmp.Diff([]diag.Code{diag.LexUnterminatedComment}, codes(bag)); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestUnexpectedCharContinues(t *testing.T) {
	toks, bag := lexAll(t, "a @ b # c")
	if diff := cmp.Diff([]diag.Code{diag.LexUnexpectedChar, diag.LexUnexpectedChar}, codes(bag)); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
	want := []token.Kind{token.Ident, token.Invalid, token.Ident, token.Invalid, token.Ident}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestEOFForever(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("t", []byte("x"))), lexer.Options{})
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("first token %v", tok.Kind)
	}
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}

func TestTokensRestartable(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t", []byte("let x = 1 + 2;")))
	seq := lexer.Tokens(f, lexer.Options{})
	var first, second []token.Token
	for tok := range seq {
		first = append(first, tok)
	}
	for tok := range seq {
		second = append(second, tok)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
	if first[len(first)-1].Kind != token.EOF {
		t.Errorf("sequence must end with EOF")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("t", []byte("a b"))), lexer.Options{})
	p := lx.Peek()
	if p2 := lx.Peek(); p2 != p {
		t.Fatalf("double Peek advanced the lexer")
	}
	if n := lx.Next(); n != p {
		t.Fatalf("Next after Peek = %v, want %v", n, p)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("got %q", n.Text)
	}
}
