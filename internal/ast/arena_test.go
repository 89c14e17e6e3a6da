package ast_test

import (
	"testing"

	"rustle/internal/ast"
	"rustle/internal/source"
)

func TestArenaOneBased(t *testing.T) {
	a := ast.NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena must return nil")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 || a.Len() != 1 {
		t.Fatalf("Allocate returned %d", id)
	}
}

func TestTypedAccessorsCheckKind(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{Start: 0, End: 1}
	lit := b.Exprs.NewLiteral(sp, ast.Literal{Kind: ast.LitInt, Int: 1, Raw: "1"})
	id := b.Exprs.NewIdent(sp, ast.IdentExpr{Name: "x"})

	if _, ok := b.Exprs.Ident(lit); ok {
		t.Errorf("Ident accessor accepted a literal")
	}
	if d, ok := b.Exprs.Ident(id); !ok || d.Name != "x" {
		t.Errorf("Ident accessor = %v, %v", d, ok)
	}
	bin := b.Exprs.NewBinary(sp, ast.BinaryExpr{Op: ast.BinAdd, Left: lit, Right: id})
	if d, ok := b.Exprs.Binary(bin); !ok || d.Left != lit || d.Right != id {
		t.Errorf("Binary accessor = %v, %v", d, ok)
	}
	if _, ok := b.Exprs.Binary(ast.NoExprID); ok {
		t.Errorf("zero id must not resolve")
	}
}

func TestBlockLikeKinds(t *testing.T) {
	for _, k := range []ast.ExprKind{ast.ExprIf, ast.ExprMatch, ast.ExprBlock, ast.ExprLoop, ast.ExprWhile, ast.ExprFor} {
		if !k.IsBlockLike() {
			t.Errorf("%v should be block-like", k)
		}
	}
	if ast.ExprCall.IsBlockLike() {
		t.Errorf("call is not block-like")
	}
}
