package format

import (
	"rustle/internal/ast"
)

func (p *printer) item(id ast.ItemID) {
	it := p.b.Items.Get(id)
	switch it.Kind {
	case ast.ItemFn:
		fn, _ := p.b.Items.Fn(id)
		p.w.WriteString("fn ")
		p.w.WriteString(it.Name)
		p.w.WriteString("(")
		p.params(fn.Params)
		p.w.WriteString(")")
		if fn.Result.IsValid() {
			p.w.WriteString(" -> ")
			p.typ(fn.Result)
		}
		p.w.WriteString(" ")
		p.block(fn.Body)

	case ast.ItemStruct:
		st, _ := p.b.Items.Struct(id)
		p.w.WriteString("struct " + it.Name + " ")
		if len(st.Fields) == 0 {
			p.w.WriteString("{}")
			return
		}
		p.w.WriteString("{")
		p.w.Newline()
		p.w.Indent()
		for _, f := range st.Fields {
			p.w.WriteString(f.Name + ": ")
			p.typ(f.Type)
			p.w.WriteString(",")
			p.w.Newline()
		}
		p.w.Dedent()
		p.w.WriteString("}")

	case ast.ItemEnum:
		en, _ := p.b.Items.Enum(id)
		p.w.WriteString("enum " + it.Name + " ")
		if len(en.Variants) == 0 {
			p.w.WriteString("{}")
			return
		}
		p.w.WriteString("{")
		p.w.Newline()
		p.w.Indent()
		for _, v := range en.Variants {
			p.w.WriteString(v.Name)
			if v.Tuple {
				p.w.WriteString("(")
				for i, t := range v.Fields {
					if i > 0 {
						p.w.WriteString(", ")
					}
					p.typ(t)
				}
				p.w.WriteString(")")
			}
			p.w.WriteString(",")
			p.w.Newline()
		}
		p.w.Dedent()
		p.w.WriteString("}")
	}
}

func (p *printer) params(params []ast.Param) {
	for i, prm := range params {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.w.WriteString(prm.Name)
		if prm.Type.IsValid() {
			p.w.WriteString(": ")
			p.typ(prm.Type)
		}
	}
}

func (p *printer) typ(id ast.TypeID) {
	t := p.b.Types.Get(id)
	p.w.WriteString(t.Name)
	if len(t.Args) == 0 {
		return
	}
	p.w.WriteString("<")
	for i, a := range t.Args {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.typ(a)
	}
	p.w.WriteString(">")
}
