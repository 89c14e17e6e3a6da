package fuzztests

import (
	"context"
	"testing"
	"time"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/driver"
	"rustle/internal/lexer"
	"rustle/internal/parser"
	"rustle/internal/source"
	"rustle/internal/testkit"
	"rustle/internal/token"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// Longer means a likely infinite loop in error recovery.
const parseTimeout = 5 * time.Second

func FuzzLexerTokens(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.rsl", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for {
			tok := lx.Next()
			if tok.Span.Start < prevEnd {
				t.Fatalf("token %q starts at %d before previous end %d", tok.Text, tok.Span.Start, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
		}
	})
}

func FuzzParserNoHang(f *testing.F) {
	addSeeds(f)
	f.Add([]byte("fn f() { { { { } } } }"))
	f.Add([]byte("match x { 1 => , }"))
	f.Add([]byte("let x = 1\nlet y = 2"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.rsl", input))
			bag := diag.NewBag(128)
			reporter := diag.BagReporter{Bag: bag}
			lx := lexer.New(file, lexer.Options{Reporter: reporter})
			b := ast.NewBuilder(ast.Hints{})
			res := parser.ParseFile(fs, lx, b, parser.Options{Reporter: reporter})
			if bag.HasErrors() {
				return
			}
			if err := testkit.CheckSpanInvariants(b, res.File, file); err != nil {
				t.Errorf("span invariants: %v", err)
			}
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser did not finish within %v on %q", parseTimeout, input)
		}
	})
}

func FuzzRunTerminates(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		res := driver.Run(ctx, string(input), driver.Options{MaxCallDepth: 64})
		if !res.OK() && len(res.Diagnostics) == 0 {
			t.Fatalf("stage %v failed without diagnostics", res.Stage)
		}
	})
}
