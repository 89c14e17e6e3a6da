package driver

import (
	"fmt"

	"rustle/internal/ast"
	"rustle/internal/builtin"
	"rustle/internal/diag"
	"rustle/internal/lexer"
	"rustle/internal/parser"
	"rustle/internal/resolve"
	"rustle/internal/source"
	"rustle/internal/trace"
)

// unit is one file carried through parse and resolve.
type unit struct {
	fs       *source.FileSet
	file     *source.File
	builder  *ast.Builder
	astFile  ast.FileID
	table    *builtin.Table
	resolved *resolve.Result
	bag      *diag.Bag
}

// compile parses and resolves file. Resolution is skipped once parsing
// reported an error.
func compile(fs *source.FileSet, file *source.File, opts Options, tr trace.Tracer, parent uint64) *unit {
	u := &unit{
		fs:    fs,
		file:  file,
		table: builtin.NewTable(opts.Builtins),
		bag:   diag.NewBag(opts.MaxDiagnostics),
	}
	parseOnly(u, opts, tr, parent)
	if u.bag.HasErrors() {
		return u
	}

	span := trace.Begin(tr, trace.ScopePass, "resolve", parent)
	idx := opts.Timer.Begin("resolve")
	u.resolved = resolve.Resolve(u.builder, u.astFile, resolve.Options{
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: u.bag}),
		Builtins: u.table.Names(),
		Host:     u.table.Host(),
	})
	note := fmt.Sprintf("diags=%d", u.bag.Len())
	opts.Timer.End(idx, note)
	span.End(note)
	return u
}

// parseOnly lexes and parses u.file. Lexer and parser report into the same
// bag; the lexer runs lazily under the parser.
func parseOnly(u *unit, opts Options, tr trace.Tracer, parent uint64) {
	rep := diag.BagReporter{Bag: u.bag}
	span := trace.Begin(tr, trace.ScopePass, "parse", parent)
	idx := opts.Timer.Begin("parse")
	u.builder = ast.NewBuilder(ast.Hints{})
	lx := lexer.New(u.file, lexer.Options{Reporter: rep})
	pr := parser.ParseFile(u.fs, lx, u.builder, parser.Options{Reporter: rep, MaxNesting: opts.MaxNesting})
	u.astFile = pr.File
	note := fmt.Sprintf("diags=%d", u.bag.Len())
	opts.Timer.End(idx, note)
	span.End(note)
}

// outcome returns the failing stage and its diagnostics. A run without
// errors reports StageDone together with any warnings.
func outcome(bag *diag.Bag) (diag.Stage, []diag.Diagnostic) {
	if !bag.HasErrors() {
		return diag.StageDone, bag.Clone()
	}
	stage := bag.FirstStage()
	var out []diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code.Stage() == stage {
			out = append(out, d)
		}
	}
	return stage, out
}
