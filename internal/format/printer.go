package format

import (
	"errors"

	"rustle/internal/ast"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	b *ast.Builder
	w *Writer
}

// FormatFile prints the file fid in canonical form.
func FormatFile(b *ast.Builder, fid ast.FileID, opt Options) ([]byte, error) {
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}
	p := printer{b: b, w: NewWriter(opt)}
	p.printBody(file.Body, file.Tail)
	return p.w.Bytes(), nil
}

// FormatExpr prints a single expression; used by the REPL and tests.
func FormatExpr(b *ast.Builder, id ast.ExprID) string {
	p := printer{b: b, w: NewWriter(Options{})}
	p.expr(id)
	return string(p.w.Bytes())
}

func (p *printer) printBody(stmts []ast.StmtID, tail ast.ExprID) {
	prevItem := false
	for i, id := range stmts {
		isItem := p.b.Stmts.Get(id).Kind == ast.StmtItem
		if i > 0 && (isItem || prevItem) {
			p.w.BlankLine()
		}
		p.stmt(id)
		p.w.Newline()
		prevItem = isItem
	}
	if tail.IsValid() {
		if prevItem {
			p.w.BlankLine()
		}
		p.expr(tail)
		p.w.Newline()
	}
}

func (p *printer) stmt(id ast.StmtID) {
	st := p.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtLet:
		let, _ := p.b.Stmts.Let(id)
		p.w.WriteString("let ")
		if let.Mut {
			p.w.WriteString("mut ")
		}
		p.w.WriteString(let.Name)
		if let.Type.IsValid() {
			p.w.WriteString(": ")
			p.typ(let.Type)
		}
		if let.Value.IsValid() {
			p.w.WriteString(" = ")
			p.expr(let.Value)
		}
		p.w.WriteString(";")
	case ast.StmtExpr:
		es, _ := p.b.Stmts.Expr(id)
		p.expr(es.Expr)
		if es.Semi {
			p.w.WriteString(";")
		}
	case ast.StmtItem:
		it, _ := p.b.Stmts.Item(id)
		p.item(it.Item)
	case ast.StmtReturn, ast.StmtBreak:
		j, _ := p.b.Stmts.Jump(id)
		if st.Kind == ast.StmtReturn {
			p.w.WriteString("return")
		} else {
			p.w.WriteString("break")
		}
		if j.Value.IsValid() {
			p.w.WriteString(" ")
			p.expr(j.Value)
		}
		p.w.WriteString(";")
	case ast.StmtContinue:
		p.w.WriteString("continue;")
	}
}

// block печатает { ... } с отступом; пустой блок — "{}".
func (p *printer) block(id ast.ExprID) {
	blk, ok := p.b.Exprs.Block(id)
	if !ok {
		p.expr(id)
		return
	}
	if len(blk.Stmts) == 0 && !blk.Tail.IsValid() {
		p.w.WriteString("{}")
		return
	}
	p.w.WriteString("{")
	p.w.Newline()
	p.w.Indent()
	p.printBody(blk.Stmts, blk.Tail)
	p.w.Dedent()
	p.w.WriteString("}")
}
