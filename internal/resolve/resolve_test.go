package resolve_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/lexer"
	"rustle/internal/parser"
	"rustle/internal/resolve"
	"rustle/internal/source"
)

type resolved struct {
	b    *ast.Builder
	file ast.FileID
	res  *resolve.Result
	bag  *diag.Bag
}

func resolveSrc(t *testing.T, src string) resolved {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("res.rsl", []byte(src)))
	bag := diag.NewBag(0)
	b := ast.NewBuilder(ast.Hints{})
	pr := parser.ParseFile(fs, lexer.New(sf, lexer.Options{}), b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse %q: %s", src, diag.FormatShort(bag.Items(), fs))
	}
	res := resolve.Resolve(b, pr.File, resolve.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Builtins: []string{"print", "len"},
	})
	return resolved{b: b, file: pr.File, res: res, bag: bag}
}

func mustResolve(t *testing.T, src string) resolved {
	t.Helper()
	r := resolveSrc(t, src)
	if r.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, messages(r.bag))
	}
	return r
}

func messages(bag *diag.Bag) string {
	var sb strings.Builder
	for _, d := range bag.Items() {
		sb.WriteString(d.Code.ID() + " " + d.Message + "; ")
	}
	return sb.String()
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// identBindings returns bindings of every identifier named name, in source order.
func (r resolved) identBindings(name string) []resolve.Binding {
	var out []resolve.Binding
	for i := uint32(1); i <= r.b.Exprs.Arena.Len(); i++ {
		id := ast.ExprID(i)
		d, ok := r.b.Exprs.Ident(id)
		if !ok || d.Name != name {
			continue
		}
		out = append(out, r.res.Idents[id])
	}
	return out
}

func (r resolved) firstOf(kind ast.ExprKind) ast.ExprID {
	for i := uint32(1); i <= r.b.Exprs.Arena.Len(); i++ {
		if r.b.Exprs.Get(ast.ExprID(i)).Kind == kind {
			return ast.ExprID(i)
		}
	}
	return ast.NoExprID
}

func TestGlobalsAndLocals(t *testing.T) {
	r := mustResolve(t, "let a = 1; let b = a; { let c = a + b; c }")
	want := []resolve.Binding{
		{Kind: resolve.BindGlobal, Slot: 0, Name: "a"},
		{Kind: resolve.BindGlobal, Slot: 0, Name: "a"},
	}
	if diff := cmp.Diff(want, r.identBindings("a")); diff != "" {
		t.Errorf("a bindings (-want +got):\n%s", diff)
	}
	c := r.identBindings("c")
	if diff := cmp.Diff([]resolve.Binding{{Kind: resolve.BindLocal, Depth: 0, Slot: 0, Name: "c"}}, c); diff != "" {
		t.Errorf("c bindings (-want +got):\n%s", diff)
	}
	blk := r.firstOf(ast.ExprBlock)
	if got := r.res.FrameSize(resolve.ExprOwner(blk)); got != 1 {
		t.Errorf("block frame size = %d", got)
	}
	if got := r.res.FrameSize(resolve.RootOwner(r.file)); got != 2 {
		t.Errorf("root frame size = %d", got)
	}
}

func TestShadowingUsesFreshSlot(t *testing.T) {
	r := mustResolve(t, "let x = 1; let x = x + 1; x")
	got := r.identBindings("x")
	if len(got) != 2 || got[0].Slot != 0 || got[1].Slot != 1 {
		t.Fatalf("x bindings = %+v", got)
	}
}

func TestLetIsNotHoisted(t *testing.T) {
	r := resolveSrc(t, "y; let y = 1;")
	if diff := cmp.Diff([]diag.Code{diag.ResUnresolvedName}, codes(r.bag)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
}

func TestItemsAreHoisted(t *testing.T) {
	r := mustResolve(t, "f(); fn f() { g() } fn g() { 1 }")
	for _, b := range r.identBindings("g") {
		if b.Kind != resolve.BindGlobal {
			t.Errorf("g = %+v", b)
		}
	}
}

func TestNestedItemsResolveThroughFrames(t *testing.T) {
	r := mustResolve(t, "fn outer() { fn helper() { 1 } fn inner() { helper() } inner() }")
	// inner params frame -> inner body block -> ... helper сидит в теле outer
	got := r.identBindings("helper")
	if len(got) != 1 || got[0].Kind != resolve.BindLocal || got[0].Depth != 2 {
		t.Fatalf("helper = %+v", got)
	}
}

func TestFnItemCannotCaptureLocals(t *testing.T) {
	r := resolveSrc(t, "fn outer() { let a = 1; fn inner() { a } inner() }")
	if diff := cmp.Diff([]diag.Code{diag.ResUnresolvedName}, codes(r.bag)); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	if msg := r.bag.Items()[0].Message; !strings.Contains(msg, "fn item") {
		t.Errorf("message = %q", msg)
	}
}

func TestClosureCaptures(t *testing.T) {
	r := mustResolve(t, "fn outer() { let a = 1; let b = 2; let f = |x| a + x; f }")
	closure := r.firstOf(ast.ExprClosure)
	got := r.res.Captures[closure]
	if len(got) != 1 {
		t.Fatalf("captures = %+v", got)
	}
	want := resolve.Binding{Kind: resolve.BindLocal, Depth: 0, Slot: 0, Name: "a"}
	if diff := cmp.Diff(want, got[0].Binding); diff != "" {
		t.Errorf("capture (-want +got):\n%s", diff)
	}
}

func TestNestedClosureCaptures(t *testing.T) {
	r := mustResolve(t, "fn outer() { let a = 1; || || a }")
	var closures []ast.ExprID
	for i := uint32(1); i <= r.b.Exprs.Arena.Len(); i++ {
		if r.b.Exprs.Get(ast.ExprID(i)).Kind == ast.ExprClosure {
			closures = append(closures, ast.ExprID(i))
		}
	}
	if len(closures) != 2 {
		t.Fatalf("closures = %d", len(closures))
	}
	// внутреннее замыкание аллоцируется первым
	inner, outer := closures[0], closures[1]
	if c := r.res.Captures[outer]; len(c) != 1 || c[0].Binding.Depth != 0 {
		t.Errorf("outer captures = %+v", c)
	}
	if c := r.res.Captures[inner]; len(c) != 1 || c[0].Binding.Depth != 1 {
		t.Errorf("inner captures = %+v", c)
	}
	if got := r.identBindings("a"); got[len(got)-1].Depth != 2 {
		t.Errorf("use of a = %+v", got)
	}
}

func TestGlobalsAreNotCaptured(t *testing.T) {
	r := mustResolve(t, "let r = 0; let inc = || r + 1; inc()")
	closure := r.firstOf(ast.ExprClosure)
	if c, ok := r.res.Captures[closure]; !ok || len(c) != 0 {
		t.Errorf("captures = %+v, present=%v", c, ok)
	}
}

func TestDuplicateBindings(t *testing.T) {
	srcs := []string{
		"fn f(a, a) { 1 }",
		"struct P { x: Int, x: Int }",
		"enum E { A, A }",
		"let f = |a, a| 1;",
		"struct P { x: Int } P { x: 1, x: 2 }",
		"enum E { V(Int, Int) } match E::V(1, 2) { E::V(x, x) => 1 }",
		"fn g() { 1 } fn g() { 2 }",
		"struct S { a: Int } enum S { A }",
	}
	for _, src := range srcs {
		r := resolveSrc(t, src)
		if diff := cmp.Diff([]diag.Code{diag.ResDuplicateBinding}, codes(r.bag)); diff != "" {
			t.Errorf("%q: codes (-want +got):\n%s\n%s", src, diff, messages(r.bag))
		}
	}
}

func TestUnknownNames(t *testing.T) {
	srcs := []string{
		"Q { x: 1 }",
		"struct P { x: Int } P { y: 1 }",
		"Nope::A",
		"enum E { A } E::B",
		"match 1 { Q { x } => 1, _ => 0 }",
		"match 1 { Thing(x) => 1, _ => 0 }",
		"enum E { A(Int) } match E::A(1) { E::A => 1, _ => 0 }",
		"match Some(1) { Some(x) | None => 1 }",
		"break;",
		"loop { let f = || { continue; }; }",
	}
	for _, src := range srcs {
		r := resolveSrc(t, src)
		if diff := cmp.Diff([]diag.Code{diag.ResUnresolvedName}, codes(r.bag)); diff != "" {
			t.Errorf("%q: codes (-want +got):\n%s\n%s", src, diff, messages(r.bag))
		}
	}
}

func TestPreludeAndBuiltins(t *testing.T) {
	r := mustResolve(t, "let a = Some(1); let b = None; print(len([1]));")
	some := r.identBindings("Some")
	if len(some) != 1 || some[0].Kind != resolve.BindVariant || some[0].Decl.Name != "Option" {
		t.Errorf("Some = %+v", some)
	}
	if got := r.identBindings("len"); len(got) != 1 || got[0].Kind != resolve.BindBuiltin || got[0].Slot != 1 {
		t.Errorf("len = %+v", got)
	}
}

func TestBareNonePatternIsVariant(t *testing.T) {
	r := mustResolve(t, "match Some(1) { None => 0, Some(n) => n }")
	var nonePat, nPat ast.PatID
	for i := uint32(1); i <= r.b.Pats.Arena.Len(); i++ {
		id := ast.PatID(i)
		if d, ok := r.b.Pats.Binding(id); ok {
			switch d.Name {
			case "None":
				nonePat = id
			case "n":
				nPat = id
			}
		}
	}
	if _, ok := r.res.PatDecls[nonePat]; !ok {
		t.Errorf("None pattern not resolved to a variant")
	}
	if _, ok := r.res.PatSlots[nPat]; !ok {
		t.Errorf("n pattern has no slot")
	}
}

func TestOrPatternSharesSlot(t *testing.T) {
	r := mustResolve(t, "enum E { A(Int), B(Int) } match E::A(1) { E::A(v) | E::B(v) => v }")
	var slots []int
	for i := uint32(1); i <= r.b.Pats.Arena.Len(); i++ {
		if slot, ok := r.res.PatSlots[ast.PatID(i)]; ok {
			slots = append(slots, slot)
		}
	}
	if diff := cmp.Diff([]int{0, 0}, slots); diff != "" {
		t.Errorf("slots (-want +got):\n%s", diff)
	}
}

func TestMainDetection(t *testing.T) {
	r := mustResolve(t, "fn main() { 1 }")
	if !r.res.Main.IsValid() {
		t.Errorf("main not detected")
	}
	r = mustResolve(t, "fn main(x) { x }")
	if r.res.Main.IsValid() {
		t.Errorf("main with params must not be auto-called")
	}
}
