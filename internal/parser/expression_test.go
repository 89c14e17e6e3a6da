package parser_test

import (
	"testing"

	"rustle/internal/ast"
	"rustle/internal/format"
)

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
		top  ast.ExprKind
	}{
		{"1 + 2 * 3", "1 + 2 * 3", ast.ExprBinary},
		{"a = b = 3", "a = b = 3", ast.ExprAssign},
		{"a || b && c", "a || b && c", ast.ExprBinary},
		{"-x.y(1)[2]", "-x.y(1)[2]", ast.ExprUnary},
		{"0..n + 1", "0..n + 1", ast.ExprRange},
		{"x += 1", "x += 1", ast.ExprAssign},
	}
	for _, tt := range tests {
		p := mustParse(t, tt.src)
		tail := p.tail(t)
		if got := p.b.Exprs.Get(tail).Kind; got != tt.top {
			t.Errorf("%q: top kind = %v, want %v", tt.src, got, tt.top)
		}
		if got := format.FormatExpr(p.b, tail); got != tt.want {
			t.Errorf("%q: printed %q", tt.src, got)
		}
	}
}

func TestBinaryShape(t *testing.T) {
	p := mustParse(t, "1 - 2 - 3")
	root, ok := p.b.Exprs.Binary(p.tail(t))
	if !ok {
		t.Fatalf("not a binary")
	}
	// левоассоциативно: (1 - 2) - 3
	if _, ok := p.b.Exprs.Binary(root.Left); !ok {
		t.Errorf("left operand should be the nested subtraction")
	}
	if lit, ok := p.b.Exprs.Literal(root.Right); !ok || lit.Int != 3 {
		t.Errorf("right operand = %v", lit)
	}

	p = mustParse(t, "a = b = c")
	asg, _ := p.b.Exprs.Assign(p.tail(t))
	if _, ok := p.b.Exprs.Assign(asg.Value); !ok {
		t.Errorf("assignment must be right-associative")
	}
}

func TestStructLiteralNotInCondition(t *testing.T) {
	p := mustParse(t, "if x { 1 } else { 2 }")
	iff, ok := p.b.Exprs.If(p.tail(t))
	if !ok {
		t.Fatalf("not an if")
	}
	if p.b.Exprs.Get(iff.Cond).Kind != ast.ExprIdent {
		t.Errorf("condition parsed as %v", p.b.Exprs.Get(iff.Cond).Kind)
	}

	p = mustParse(t, "if (P { x: 1 }).x == 1 { 1 } else { 0 }")
	if p.b.Exprs.Structs.Len() != 1 {
		t.Errorf("parenthesised struct literal should be allowed")
	}
}

func TestPostfixAndLiterals(t *testing.T) {
	p := mustParse(t, `v.push("a\n").len()`)
	mc, ok := p.b.Exprs.MethodCall(p.tail(t))
	if !ok || mc.Name != "len" {
		t.Fatalf("outer = %v", mc)
	}
	inner, ok := p.b.Exprs.MethodCall(mc.Recv)
	if !ok || inner.Name != "push" || len(inner.Args) != 1 {
		t.Fatalf("inner = %v", inner)
	}
	lit, _ := p.b.Exprs.Literal(inner.Args[0])
	if lit.Str != "a\n" {
		t.Errorf("string literal = %q", lit.Str)
	}
}

func TestClosures(t *testing.T) {
	p := mustParse(t, "let f = |a, b: Int| a + b; let g = || 1; f(1, 2)")
	if p.b.Exprs.Closures.Len() != 2 {
		t.Fatalf("closures = %d", p.b.Exprs.Closures.Len())
	}
	c := p.b.Exprs.Closures.Slice()[0]
	if len(c.Params) != 2 || c.Params[1].Name != "b" || !c.Params[1].Type.IsValid() {
		t.Errorf("params = %+v", c.Params)
	}
}

func TestUnitAndGroups(t *testing.T) {
	p := mustParse(t, "(())")
	g, ok := p.b.Exprs.Group(p.tail(t))
	if !ok {
		t.Fatalf("expected group")
	}
	if lit, ok := p.b.Exprs.Literal(g.Inner); !ok || lit.Kind != ast.LitUnit {
		t.Errorf("inner = %v", lit)
	}
}
