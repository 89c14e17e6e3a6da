package format

import (
	"strconv"
	"strings"

	"rustle/internal/ast"
)

func (p *printer) expr(id ast.ExprID) {
	e := p.b.Exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprLit:
		lit, _ := p.b.Exprs.Literal(id)
		p.w.WriteString(LiteralText(*lit))
	case ast.ExprIdent:
		d, _ := p.b.Exprs.Ident(id)
		p.w.WriteString(d.Name)
	case ast.ExprPath:
		d, _ := p.b.Exprs.Path(id)
		p.w.WriteString(d.Enum + "::" + d.Variant)
	case ast.ExprBinary:
		d, _ := p.b.Exprs.Binary(id)
		p.expr(d.Left)
		p.w.WriteString(" " + d.Op.String() + " ")
		p.expr(d.Right)
	case ast.ExprUnary:
		d, _ := p.b.Exprs.Unary(id)
		p.w.WriteString(d.Op.String())
		p.expr(d.Operand)
	case ast.ExprAssign:
		d, _ := p.b.Exprs.Assign(id)
		p.expr(d.Target)
		p.w.WriteString(" " + d.Op.String() + " ")
		p.expr(d.Value)
	case ast.ExprCall:
		d, _ := p.b.Exprs.Call(id)
		p.expr(d.Callee)
		p.args(d.Args)
	case ast.ExprMethodCall:
		d, _ := p.b.Exprs.MethodCall(id)
		p.expr(d.Recv)
		p.w.WriteString("." + d.Name)
		p.args(d.Args)
	case ast.ExprField:
		d, _ := p.b.Exprs.Field(id)
		p.expr(d.Target)
		p.w.WriteString("." + d.Name)
	case ast.ExprIndex:
		d, _ := p.b.Exprs.Index(id)
		p.expr(d.Target)
		p.w.WriteString("[")
		p.expr(d.Index)
		p.w.WriteString("]")
	case ast.ExprStruct:
		d, _ := p.b.Exprs.Struct(id)
		p.w.WriteString(d.Name + " {")
		for i, f := range d.Fields {
			if i > 0 {
				p.w.WriteString(",")
			}
			p.w.WriteString(" " + f.Name)
			if !f.Shorthand {
				p.w.WriteString(": ")
				p.expr(f.Value)
			}
		}
		if len(d.Fields) > 0 {
			p.w.WriteString(" ")
		}
		p.w.WriteString("}")
	case ast.ExprVec:
		d, _ := p.b.Exprs.Vec(id)
		p.w.WriteString("[")
		p.list(d.Elems)
		p.w.WriteString("]")
	case ast.ExprRange:
		d, _ := p.b.Exprs.Range(id)
		p.expr(d.Start)
		p.w.WriteString("..")
		p.expr(d.End)
	case ast.ExprIf:
		p.ifExpr(id)
	case ast.ExprMatch:
		p.matchExpr(id)
	case ast.ExprBlock:
		p.block(id)
	case ast.ExprLoop:
		d, _ := p.b.Exprs.Loop(id)
		p.w.WriteString("loop ")
		p.block(d.Body)
	case ast.ExprWhile:
		d, _ := p.b.Exprs.While(id)
		p.w.WriteString("while ")
		p.expr(d.Cond)
		p.w.WriteString(" ")
		p.block(d.Body)
	case ast.ExprFor:
		d, _ := p.b.Exprs.For(id)
		p.w.WriteString("for " + d.Name + " in ")
		p.expr(d.Iter)
		p.w.WriteString(" ")
		p.block(d.Body)
	case ast.ExprClosure:
		d, _ := p.b.Exprs.Closure(id)
		if len(d.Params) == 0 {
			p.w.WriteString("|| ")
		} else {
			p.w.WriteString("|")
			p.params(d.Params)
			p.w.WriteString("| ")
		}
		p.expr(d.Body)
	case ast.ExprGroup:
		d, _ := p.b.Exprs.Group(id)
		p.w.WriteString("(")
		p.expr(d.Inner)
		p.w.WriteString(")")
	}
}

func (p *printer) args(args []ast.ExprID) {
	p.w.WriteString("(")
	p.list(args)
	p.w.WriteString(")")
}

func (p *printer) list(ids []ast.ExprID) {
	for i, a := range ids {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.expr(a)
	}
}

func (p *printer) ifExpr(id ast.ExprID) {
	d, _ := p.b.Exprs.If(id)
	p.w.WriteString("if ")
	p.expr(d.Cond)
	p.w.WriteString(" ")
	p.block(d.Then)
	if !d.Else.IsValid() {
		return
	}
	p.w.WriteString(" else ")
	if p.b.Exprs.Get(d.Else).Kind == ast.ExprIf {
		p.ifExpr(d.Else)
		return
	}
	p.block(d.Else)
}

func (p *printer) matchExpr(id ast.ExprID) {
	d, _ := p.b.Exprs.Match(id)
	p.w.WriteString("match ")
	p.expr(d.Scrutinee)
	if len(d.Arms) == 0 {
		p.w.WriteString(" {}")
		return
	}
	p.w.WriteString(" {")
	p.w.Newline()
	p.w.Indent()
	for _, arm := range d.Arms {
		p.pat(arm.Pattern)
		if arm.Guard.IsValid() {
			p.w.WriteString(" if ")
			p.expr(arm.Guard)
		}
		p.w.WriteString(" => ")
		p.expr(arm.Body)
		p.w.WriteString(",")
		p.w.Newline()
	}
	p.w.Dedent()
	p.w.WriteString("}")
}

// LiteralText renders a literal as source text.
func LiteralText(lit ast.Literal) string {
	switch lit.Kind {
	case ast.LitInt:
		if lit.Raw != "" {
			return lit.Raw
		}
		return strconv.FormatInt(lit.Int, 10)
	case ast.LitFloat:
		if lit.Raw != "" {
			return lit.Raw
		}
		s := strconv.FormatFloat(lit.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case ast.LitString:
		return Quote(lit.Str)
	case ast.LitBool:
		if lit.Bool {
			return "true"
		}
		return "false"
	}
	return "()"
}

// Quote renders s as a string literal using only escapes the lexer accepts.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(`\u{` + strconv.FormatInt(int64(r), 16) + `}`)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
