package builtin_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/builtin"
	"rustle/internal/diag"
	"rustle/internal/value"
)

func call(t *testing.T, tab *builtin.Table, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	slot, ok := tab.Lookup(name)
	if !ok {
		t.Fatalf("no builtin %q", name)
	}
	d := tab.Def(slot)
	if !d.Accepts(len(args)) {
		t.Fatalf("%s does not accept %d args", name, len(args))
	}
	return d.Fn(&builtin.Call{Name: name}, args)
}

func codeOf(err error) diag.Code {
	var be *builtin.Error
	if errors.As(err, &be) {
		return be.Code
	}
	return diag.RunHostError
}

func TestTableOrderAndHostOverride(t *testing.T) {
	host := map[string]builtin.Func{
		"zeta": func(*builtin.Call, []value.Value) (value.Value, error) { return value.Unit, nil },
		"len": func(*builtin.Call, []value.Value) (value.Value, error) {
			return value.MakeInt(42), nil
		},
		"alpha": func(*builtin.Call, []value.Value) (value.Value, error) { return value.Unit, nil },
	}
	tab := builtin.NewTable(host)
	names := tab.Names()
	std := builtin.Standard()
	if diff := cmp.Diff([]string{"alpha", "zeta"}, names[len(std):]); diff != "" {
		t.Errorf("host names (-want +got):\n%s", diff)
	}
	slot, _ := tab.Lookup("len")
	if names[slot] != "len" || slot != 5 {
		t.Errorf("len moved to slot %d", slot)
	}
	got, err := call(t, tab, "len")
	if err != nil || got.Int != 42 {
		t.Errorf("host override not used: %v %v", got, err)
	}
	if diff := cmp.Diff(map[string]bool{"alpha": true, "len": true, "zeta": true}, tab.Host()); diff != "" {
		t.Errorf("host set (-want +got):\n%s", diff)
	}
}

func TestPrint(t *testing.T) {
	var sb strings.Builder
	tab := builtin.NewTable(nil)
	slot, _ := tab.Lookup("println")
	args := []value.Value{value.MakeStr("x ="), value.MakeInt(1), value.MakeVec([]value.Value{value.MakeStr("a")})}
	if _, err := tab.Def(slot).Fn(&builtin.Call{Name: "println", Out: &sb}, args); err != nil {
		t.Fatal(err)
	}
	if got := sb.String(); got != "x = 1 [\"a\"]\n" {
		t.Errorf("output = %q", got)
	}
}

func TestVecMutationIsInPlace(t *testing.T) {
	tab := builtin.NewTable(nil)
	v := value.MakeVec(nil)
	if _, err := call(t, tab, "push", v, value.MakeInt(1)); err != nil {
		t.Fatal(err)
	}
	if _, err := call(t, tab, "push", v, value.MakeInt(2)); err != nil {
		t.Fatal(err)
	}
	n, _ := call(t, tab, "len", v)
	if n.Int != 2 {
		t.Fatalf("len = %d", n.Int)
	}
	last, _ := call(t, tab, "pop", v)
	if value.Display(last) != "Some(2)" {
		t.Errorf("pop = %s", value.Display(last))
	}
	empty := value.MakeVec(nil)
	if got, _ := call(t, tab, "pop", empty); value.Display(got) != "None" {
		t.Errorf("pop on empty = %s", value.Display(got))
	}
}

func TestMapBuiltins(t *testing.T) {
	tab := builtin.NewTable(nil)
	m, _ := call(t, tab, "Map")
	prev, _ := call(t, tab, "insert", m, value.MakeStr("a"), value.MakeInt(1))
	if value.Display(prev) != "None" {
		t.Errorf("first insert = %s", value.Display(prev))
	}
	prev, _ = call(t, tab, "insert", m, value.MakeStr("a"), value.MakeInt(2))
	if value.Display(prev) != "Some(1)" {
		t.Errorf("second insert = %s", value.Display(prev))
	}
	got, _ := call(t, tab, "get", m, value.MakeStr("a"))
	if value.Display(got) != "Some(2)" {
		t.Errorf("get = %s", value.Display(got))
	}
	has, _ := call(t, tab, "contains_key", m, value.MakeStr("b"))
	if has.Bool {
		t.Errorf("contains_key(b) = true")
	}
	_, err := call(t, tab, "insert", m, value.MakeFloat(1), value.Unit)
	if codeOf(err) != diag.RunTypeMismatch {
		t.Errorf("float key error = %v", err)
	}
}

func TestConversionsAndFailures(t *testing.T) {
	tab := builtin.NewTable(nil)
	tests := []struct {
		name string
		args []value.Value
		want string
		code diag.Code
	}{
		{name: "int", args: []value.Value{value.MakeStr("12")}, want: "12"},
		{name: "int", args: []value.Value{value.MakeFloat(-2.7)}, want: "-2"},
		{name: "int", args: []value.Value{value.MakeFloat(1e30)}, code: diag.RunIntegerOverflow},
		{name: "int", args: []value.Value{value.MakeStr("x")}, code: diag.RunTypeMismatch},
		{name: "float", args: []value.Value{value.MakeInt(3)}, want: "3.0"},
		{name: "str", args: []value.Value{value.Some(value.MakeStr("s"))}, want: `Some("s")`},
		{name: "abs", args: []value.Value{value.MakeInt(-5)}, want: "5"},
		{name: "abs", args: []value.Value{value.MakeInt(-1 << 63)}, code: diag.RunIntegerOverflow},
		{name: "min", args: []value.Value{value.MakeInt(3), value.MakeInt(1)}, want: "1"},
		{name: "max", args: []value.Value{value.MakeStr("a"), value.MakeStr("b")}, want: "b"},
		{name: "max", args: []value.Value{value.MakeInt(1), value.MakeStr("b")}, code: diag.RunTypeMismatch},
		{name: "type_of", args: []value.Value{value.None()}, want: "Option"},
		{name: "assert", args: []value.Value{value.MakeBool(false), value.MakeStr("boom")}, code: diag.RunAssertionFailed},
		{name: "assert_eq", args: []value.Value{value.MakeInt(1), value.MakeInt(2)}, code: diag.RunAssertionFailed},
		{name: "panic", args: nil, code: diag.RunPanic},
		{name: "len", args: []value.Value{value.MakeInt(1)}, code: diag.RunTypeMismatch},
	}
	for _, tt := range tests {
		got, err := call(t, tab, tt.name, tt.args...)
		if tt.code != 0 {
			if err == nil || codeOf(err) != tt.code {
				t.Errorf("%s%v: err = %v, want code %v", tt.name, tt.args, err, tt.code)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s%v: %v", tt.name, tt.args, err)
			continue
		}
		if value.Display(got) != tt.want {
			t.Errorf("%s%v = %s, want %s", tt.name, tt.args, value.Display(got), tt.want)
		}
	}
}

func TestArityText(t *testing.T) {
	d := builtin.Def{Min: 1, Max: 2}
	if d.ArityText() != "1 to 2" || d.Accepts(3) || !d.Accepts(1) {
		t.Errorf("arity of assert-like builtin")
	}
	v := builtin.Def{Min: 0, Max: -1}
	if !v.Accepts(10) || v.ArityText() != "at least 0" {
		t.Errorf("variadic arity")
	}
}
