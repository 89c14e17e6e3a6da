package symbols

import (
	"testing"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/source"
)

func TestPreludeInstalled(t *testing.T) {
	table := NewTable(Hints{})
	res := NewResolver(table, ResolverOptions{Prelude: BuiltinEntries([]string{"print", "len"}, nil)})

	for _, name := range []string{"Some", "None", "Ok", "Err", "print", "len"} {
		if _, ok := res.Lookup(name, NSValue); !ok {
			t.Errorf("%s not visible", name)
		}
	}
	hit, ok := res.Lookup("Option", NSType)
	if !ok || table.Symbols.Get(hit.Symbol).Decl != OptionDecl {
		t.Fatalf("Option not resolved to prelude decl")
	}
	lenSym, _ := res.Lookup("len", NSValue)
	if got := table.Symbols.Get(lenSym.Symbol).Slot; got != 1 {
		t.Errorf("len slot = %d, want 1", got)
	}
}

func TestResolverLifecycle(t *testing.T) {
	table := NewTable(Hints{})
	res := NewResolver(table, ResolverOptions{})
	file := source.FileID(1)
	root := res.Enter(ScopeRoot, ScopeOwner{File: ast.FileID(1)}, source.Span{File: file})
	fn := res.Enter(ScopeFunction, ScopeOwner{Item: ast.ItemID(3)}, source.Span{File: file})

	if _, ok := res.Declare("a", source.Span{File: file, Start: 1, End: 2}, SymbolParam, 0); !ok {
		t.Fatalf("declare returned false")
	}
	blk := res.Enter(ScopeBlock, ScopeOwner{Expr: ast.ExprID(9)}, source.Span{File: file})
	hit, ok := res.Lookup("a", NSValue)
	if !ok || hit.Depth != 1 {
		t.Fatalf("lookup = %+v, %v", hit, ok)
	}
	if hit.CrossedFn {
		t.Errorf("param lookup inside its own function must not cross the fn scope")
	}
	res.Leave(blk)
	res.Leave(fn)

	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := table.FrameSize(ScopeOwner{Item: ast.ItemID(3)}); got != 1 {
		t.Errorf("frame size = %d", got)
	}
	res.Leave(root)
}

func TestDeclareConflicts(t *testing.T) {
	bag := diag.NewBag(0)
	table := NewTable(Hints{})
	res := NewResolver(table, ResolverOptions{Reporter: diag.BagReporter{Bag: bag}})
	res.Enter(ScopeRoot, ScopeOwner{File: ast.FileID(1)}, source.Span{})

	steps := []struct {
		name string
		kind SymbolKind
		ok   bool
	}{
		{"x", SymbolLet, true},
		{"x", SymbolLet, true}, // shadowing
		{"f", SymbolFunction, true},
		{"f", SymbolFunction, false}, // duplicate item
		{"P", SymbolStruct, true},
		{"P", SymbolFunction, true}, // разные пространства имён
		{"P", SymbolEnum, false},
	}
	for i, st := range steps {
		if _, ok := res.Declare(st.name, source.Span{}, st.kind, 0); ok != st.ok {
			t.Errorf("step %d (%s %s): ok=%v, want %v", i, st.kind, st.name, ok, st.ok)
		}
	}
	if bag.Len() != 2 {
		t.Errorf("diagnostics = %d, want 2", bag.Len())
	}
	scope := table.Scopes.Get(res.CurrentScope())
	if scope.Slots != 4 {
		t.Errorf("slots = %d, want 4 (two lets and two fns)", scope.Slots)
	}
}
