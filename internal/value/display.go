package value

import (
	"math"
	"strconv"
	"strings"
)

// Display renders v the way print and the REPL show it: strings bare at the
// top level, quoted inside containers.
func Display(v Value) string {
	p := printer{seen: make(map[*Cell]bool)}
	p.value(v, true)
	return p.sb.String()
}

// Debug renders v with strings quoted.
func Debug(v Value) string {
	p := printer{seen: make(map[*Cell]bool)}
	p.value(v, false)
	return p.sb.String()
}

// Qualified is Debug with enum values written as Enum::Variant.
func Qualified(v Value) string {
	p := printer{seen: make(map[*Cell]bool), qualified: true}
	p.value(v, false)
	return p.sb.String()
}

// FormatFloat prints floats with at least one fractional digit.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

type printer struct {
	sb   strings.Builder
	seen map[*Cell]bool // защита от циклов через Ref

	qualified bool
}

func (p *printer) value(v Value, top bool) {
	switch v.Kind {
	case KindInvalid:
		p.sb.WriteString("<uninit>")
	case KindUnit:
		p.sb.WriteString("()")
	case KindBool:
		p.sb.WriteString(strconv.FormatBool(v.Bool))
	case KindInt:
		p.sb.WriteString(strconv.FormatInt(v.Int, 10))
	case KindFloat:
		p.sb.WriteString(FormatFloat(v.Float))
	case KindStr:
		if top {
			p.sb.WriteString(v.Str)
		} else {
			p.sb.WriteString(strconv.Quote(v.Str))
		}
	case KindStruct:
		s := v.AsStruct()
		p.sb.WriteString(s.Decl.Name)
		if len(s.Fields) == 0 {
			return
		}
		p.sb.WriteString(" { ")
		for i, f := range s.Fields {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(s.Decl.Fields[i])
			p.sb.WriteString(": ")
			p.value(f, false)
		}
		p.sb.WriteString(" }")
	case KindEnum:
		e := v.AsEnum()
		if p.qualified {
			p.sb.WriteString(e.Decl.Name + "::")
		}
		p.sb.WriteString(e.VariantName())
		if e.Decl.Variants[e.Variant].Tuple {
			p.list("(", e.Payload, ")")
		}
	case KindFunc:
		p.sb.WriteString("<fn " + v.AsFunc().Name + ">")
	case KindBuiltin:
		p.sb.WriteString("<builtin " + v.AsBuiltin().Name + ">")
	case KindRef:
		c := v.AsRef()
		if p.seen[c] {
			p.sb.WriteString("Ref(...)")
			return
		}
		p.seen[c] = true
		p.sb.WriteString("Ref(")
		p.value(c.V, false)
		p.sb.WriteString(")")
		delete(p.seen, c)
	case KindVec:
		p.list("[", v.AsVec().Elems, "]")
	case KindMap:
		m := v.AsMap()
		p.sb.WriteString("{")
		for i := range m.Len() {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			k, val := m.Entry(i)
			p.value(k, false)
			p.sb.WriteString(": ")
			p.value(val, false)
		}
		p.sb.WriteString("}")
	}
}

func (p *printer) list(open string, vals []Value, closer string) {
	p.sb.WriteString(open)
	for i, v := range vals {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.value(v, false)
	}
	p.sb.WriteString(closer)
}

// String implements fmt.Stringer with the Debug form.
func (v Value) String() string { return Debug(v) }
