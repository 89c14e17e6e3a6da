package format_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/format"
	"rustle/internal/lexer"
	"rustle/internal/parser"
	"rustle/internal/source"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("fmt.rsl", []byte(src)))
	bag := diag.NewBag(0)
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs, lexer.New(sf, lexer.Options{}), b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse %q: %s", src, diag.FormatShort(bag.Items(), fs))
	}
	return b, res.File
}

func TestFormatCanonicalLayout(t *testing.T) {
	src := `struct P{x:Int,y:Int}
fn area(p:P)->Int{let w=p.x;   w*p.y}
let p=P{x:2,y:3};match area(p){6=>"six",n if n>6=>{"big"} _=>"small"}`
	want := `struct P {
    x: Int,
    y: Int,
}

fn area(p: P) -> Int {
    let w = p.x;
    w * p.y
}

let p = P { x: 2, y: 3 };
match area(p) {
    6 => "six",
    n if n > 6 => {
        "big"
    },
    _ => "small",
}
`
	b, fid := parse(t, src)
	got, err := format.FormatFile(b, fid, format.Options{})
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTabs(t *testing.T) {
	b, fid := parse(t, "fn f() { 1 }")
	got, err := format.FormatFile(b, fid, format.Options{UseTabs: true})
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	if want := "fn f() {\n\t1\n}\n"; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmptyBlocks(t *testing.T) {
	b, fid := parse(t, "loop {} enum E {}")
	got, _ := format.FormatFile(b, fid, format.Options{})
	if want := "loop {}\n\nenum E {}\n"; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"plain":     `"plain"`,
		"a\"b\\c":   `"a\"b\\c"`,
		"tab\tnl\n": `"tab\tnl\n"`,
		"\x01":      `"\u{1}"`,
		"\x00":      `"\0"`,
		"héllo":     `"héllo"`,
	}
	for in, want := range tests {
		if got := format.Quote(in); got != want {
			t.Errorf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLiteralTextWithoutRaw(t *testing.T) {
	if got := format.LiteralText(ast.Literal{Kind: ast.LitFloat, Float: 2}); got != "2.0" {
		t.Errorf("float = %s", got)
	}
	if got := format.LiteralText(ast.Literal{Kind: ast.LitInt, Int: -7}); got != "-7" {
		t.Errorf("int = %s", got)
	}
	if got := format.LiteralText(ast.Literal{Kind: ast.LitUnit}); got != "()" {
		t.Errorf("unit = %s", got)
	}
}
