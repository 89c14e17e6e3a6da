package parser

import (
	"slices"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/lexer"
	"rustle/internal/source"
	"rustle/internal/token"
)

// DefaultMaxNesting bounds parser recursion when Options.MaxNesting is zero.
const DefaultMaxNesting = 256

type Options struct {
	Reporter   diag.Reporter
	MaxNesting int
}

type Result struct {
	File   ast.FileID
	Bag    *diag.Bag // non-nil when Reporter is a diag.BagReporter
	Errors int
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	fs       *source.FileSet
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена

	depth       int
	noStructLit bool          // запрет struct-литералов в условиях
	delims      []token.Token // открытые ( [ {
	silenced    bool          // после EOF внутри разделителей диагностики не нужны
	aborted     bool          // NestingTooDeep
	errors      int
}

// ParseFile — входная точка для разбора одного файла.
func ParseFile(fs *source.FileSet, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	if opts.MaxNesting <= 0 {
		opts.MaxNesting = DefaultMaxNesting
	}
	start := lx.Peek().Span
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		fs:       fs,
		opts:     opts,
		lastSpan: source.Span{File: start.File},
	}
	p.file = arenas.NewFile(start)

	stmts, tail := p.parseBody(token.EOF)
	f := arenas.Files.Get(p.file)
	f.Body = stmts
	f.Tail = tail
	f.Span = start.Cover(p.lx.Peek().Span)

	res := Result{File: p.file, Errors: p.errors}
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		res.Bag = br.Bag
	}
	return res
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}
