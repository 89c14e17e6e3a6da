package format

import (
	"rustle/internal/ast"
)

func (p *printer) pat(id ast.PatID) {
	pt := p.b.Pats.Get(id)
	switch pt.Kind {
	case ast.PatWild:
		p.w.WriteString("_")
	case ast.PatBinding:
		d, _ := p.b.Pats.Binding(id)
		p.w.WriteString(d.Name)
	case ast.PatLit:
		d, _ := p.b.Pats.Lit(id)
		if d.Negative {
			p.w.WriteString("-")
			if d.Lit.Raw != "" {
				p.w.WriteString(d.Lit.Raw)
				return
			}
			lit := d.Lit
			lit.Int, lit.Float = -lit.Int, -lit.Float
			p.w.WriteString(LiteralText(lit))
			return
		}
		p.w.WriteString(LiteralText(d.Lit))
	case ast.PatVariant:
		d, _ := p.b.Pats.Variant(id)
		if d.Enum != "" {
			p.w.WriteString(d.Enum + "::")
		}
		p.w.WriteString(d.Variant)
		if d.Tuple {
			p.w.WriteString("(")
			for i, a := range d.Args {
				if i > 0 {
					p.w.WriteString(", ")
				}
				p.pat(a)
			}
			p.w.WriteString(")")
		}
	case ast.PatStruct:
		d, _ := p.b.Pats.Struct(id)
		p.w.WriteString(d.Name + " {")
		for i, f := range d.Fields {
			if i > 0 {
				p.w.WriteString(",")
			}
			p.w.WriteString(" " + f.Name)
			if f.Pat.IsValid() {
				p.w.WriteString(": ")
				p.pat(f.Pat)
			}
		}
		if len(d.Fields) > 0 {
			p.w.WriteString(" ")
		}
		p.w.WriteString("}")
	case ast.PatOr:
		d, _ := p.b.Pats.Or(id)
		for i, a := range d.Alts {
			if i > 0 {
				p.w.WriteString(" | ")
			}
			p.pat(a)
		}
	}
}
