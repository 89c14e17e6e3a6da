package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/lexer"
	"rustle/internal/parser"
	"rustle/internal/source"
)

type parsed struct {
	b    *ast.Builder
	file ast.FileID
	bag  *diag.Bag
	src  *source.File
}

func parseWith(t *testing.T, src string, opts parser.Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.rsl", []byte(src)))
	bag := diag.NewBag(0)
	opts.Reporter = diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(sf, lexer.Options{})
	res := parser.ParseFile(fs, lx, b, opts)
	return parsed{b: b, file: res.File, bag: bag, src: sf}
}

func parseSrc(t *testing.T, src string) parsed {
	t.Helper()
	return parseWith(t, src, parser.Options{})
}

// mustParse падает, если есть диагностики.
func mustParse(t *testing.T, src string) parsed {
	t.Helper()
	p := parseSrc(t, src)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(p.bag))
	}
	return p
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func (p parsed) root() *ast.File { return p.b.Files.Get(p.file) }

// tailExpr returns the trailing expression of the program.
func (p parsed) tail(t *testing.T) ast.ExprID {
	t.Helper()
	tail := p.root().Tail
	if !tail.IsValid() {
		t.Fatalf("program has no trailing expression")
	}
	return tail
}
