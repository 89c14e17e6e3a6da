package value_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/symbols"
	"rustle/internal/value"
)

var pointDecl = &symbols.TypeDecl{Kind: symbols.DeclStruct, Name: "Point", Item: 1, Fields: []string{"x", "y"}}

func point(x, y int64) value.Value {
	return value.MakeStruct(pointDecl, []value.Value{value.MakeInt(x), value.MakeInt(y)})
}

func TestDisplay(t *testing.T) {
	m := value.MakeMap()
	_, _, _ = m.AsMap().Insert(value.MakeStr("b"), value.MakeInt(2))
	_, _, _ = m.AsMap().Insert(value.MakeStr("a"), value.MakeInt(1))

	tests := []struct {
		v    value.Value
		want string
	}{
		{value.Unit, "()"},
		{value.MakeInt(-3), "-3"},
		{value.MakeFloat(1), "1.0"},
		{value.MakeFloat(0.25), "0.25"},
		{value.MakeFloat(math.Inf(-1)), "-inf"},
		{value.MakeStr("hi"), "hi"},
		{value.MakeVec([]value.Value{value.MakeStr("hi"), value.MakeBool(true)}), `["hi", true]`},
		{point(1, 2), "Point { x: 1, y: 2 }"},
		{value.Some(value.MakeInt(1)), "Some(1)"},
		{value.None(), "None"},
		{value.Err(value.MakeStr("bad")), `Err("bad")`},
		{value.MakeRef(value.MakeInt(2)), "Ref(2)"},
		{m, `{"b": 2, "a": 1}`},
	}
	for _, tt := range tests {
		if got := value.Display(tt.v); got != tt.want {
			t.Errorf("Display = %q, want %q", got, tt.want)
		}
	}
}

func TestQualified(t *testing.T) {
	tests := []struct {
		v    value.Value
		want string
	}{
		{value.Some(value.MakeStr("x")), `Option::Some("x")`},
		{value.MakeVec([]value.Value{value.None(), value.Err(value.MakeInt(1))}), "[Option::None, Result::Err(1)]"},
		{point(1, 2), "Point { x: 1, y: 2 }"},
		{value.MakeInt(5), "5"},
	}
	for _, tt := range tests {
		if got := value.Qualified(tt.v); got != tt.want {
			t.Errorf("Qualified = %q, want %q", got, tt.want)
		}
	}
}

func TestDisplayRefCycle(t *testing.T) {
	r := value.MakeRef(value.Unit)
	r.AsRef().V = value.MakeVec([]value.Value{r})
	if got := value.Display(r); got != "Ref([Ref(...)])" {
		t.Errorf("got %q", got)
	}
}

func TestEqual(t *testing.T) {
	r := value.MakeRef(value.MakeInt(1))
	tests := []struct {
		a, b value.Value
		want bool
	}{
		{value.MakeInt(1), value.MakeInt(1), true},
		{value.MakeInt(1), value.MakeFloat(1), false},
		{value.MakeFloat(math.NaN()), value.MakeFloat(math.NaN()), false},
		{point(1, 2), point(1, 2), true},
		{point(1, 2), point(2, 1), false},
		{value.Some(value.MakeInt(1)), value.Some(value.MakeInt(1)), true},
		{value.Some(value.MakeInt(1)), value.None(), false},
		{value.Ok(value.MakeInt(1)), value.Some(value.MakeInt(1)), false},
		{r, r, true},
		{r, value.MakeRef(value.MakeInt(1)), false},
		{value.Unit, value.Unit, true},
	}
	for i, tt := range tests {
		if got := value.Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("case %d: Equal(%v, %v) = %v", i, tt.a, tt.b, got)
		}
	}
}

func TestCompare(t *testing.T) {
	if !value.Comparable(value.MakeInt(1), value.MakeInt(2)) || value.Comparable(value.MakeInt(1), value.MakeFloat(2)) {
		t.Fatalf("comparability")
	}
	if value.Compare(value.MakeStr("a"), value.MakeStr("b")) != value.Less {
		t.Errorf("string order")
	}
	if value.Compare(value.MakeFloat(math.NaN()), value.MakeFloat(1)) != value.Unordered {
		t.Errorf("NaN must be unordered")
	}
	a := value.MakeVec([]value.Value{value.MakeInt(1), value.MakeInt(2)})
	b := value.MakeVec([]value.Value{value.MakeInt(1)})
	if value.Compare(a, b) != value.Greater {
		t.Errorf("vector order")
	}
}

func TestCopyIsDeepExceptRefs(t *testing.T) {
	cell := value.MakeRef(value.MakeInt(0))
	orig := value.MakeVec([]value.Value{point(1, 2), cell})
	dup := value.Copy(orig)

	dup.AsVec().Elems[0].AsStruct().Fields[0] = value.MakeInt(99)
	dup.AsVec().Elems[1].AsRef().V = value.MakeInt(7)

	if got := value.Display(orig); got != "[Point { x: 1, y: 2 }, Ref(7)]" {
		t.Errorf("original = %s", got)
	}
}

func TestMapOrderAndRemove(t *testing.T) {
	m := value.NewMap()
	for _, k := range []string{"c", "a", "b"} {
		if _, _, err := m.Insert(value.MakeStr(k), value.MakeStr(k+k)); err != nil {
			t.Fatal(err)
		}
	}
	if prev, ok, _ := m.Remove(value.MakeStr("a")); !ok || prev.Str != "aa" {
		t.Fatalf("remove = %v %v", prev, ok)
	}
	var keys []string
	for _, k := range m.Keys() {
		keys = append(keys, k.Str)
	}
	if diff := cmp.Diff([]string{"c", "b"}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if v, ok, _ := m.Get(value.MakeStr("b")); !ok || v.Str != "bb" {
		t.Errorf("get after remove = %v %v", v, ok)
	}
	if _, _, err := m.Insert(value.MakeFloat(1), value.Unit); err == nil {
		t.Errorf("float keys must be rejected")
	}
}

func TestCheckedArithmetic(t *testing.T) {
	if _, ok := value.AddInt64Checked(math.MaxInt64, 1); ok {
		t.Errorf("add overflow not detected")
	}
	if _, ok := value.MulInt64Checked(math.MinInt64, -1); ok {
		t.Errorf("mul overflow not detected")
	}
	if _, ok := value.DivInt64Checked(math.MinInt64, -1); ok {
		t.Errorf("div overflow not detected")
	}
	if _, ok := value.NegInt64Checked(math.MinInt64); ok {
		t.Errorf("neg overflow not detected")
	}
	if got, ok := value.RemInt64Checked(-7, 3); !ok || got != -1 {
		t.Errorf("rem = %d", got)
	}
}
