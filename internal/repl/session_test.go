package repl_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/diag"
	"rustle/internal/driver"
	"rustle/internal/repl"
)

func TestSessionAccumulates(t *testing.T) {
	s := repl.NewSession(driver.Options{})
	ctx := context.Background()

	type step struct {
		input  string
		ok     bool
		output string
		value  string
	}
	steps := []step{
		{`let x = 2;`, true, "", ""},
		{`println("hi"); x + 1`, true, "hi\n", "3"},
		{`x * 10`, true, "", "20"},
		{`fn sq(n) { n * n }`, true, "", ""},
		{`print(sq(x))`, true, "4", ""},
		{`y`, false, "", ""},
		{`sq(5)`, true, "", "25"},
	}
	for _, st := range steps {
		reply := s.Eval(ctx, st.input)
		if reply.OK() != st.ok {
			t.Fatalf("%q: ok = %v, diagnostics %v", st.input, reply.OK(), reply.Result.Diagnostics)
		}
		if reply.Output != st.output || reply.Value != st.value {
			t.Errorf("%q: got output %q value %q, want %q %q", st.input, reply.Output, reply.Value, st.output, st.value)
		}
	}

	want := "let x = 2;\nprintln(\"hi\"); x + 1;\nx * 10;\nfn sq(n) { n * n }\nprint(sq(x));\nsq(5);"
	if diff := cmp.Diff(want, s.Source()); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != 6 {
		t.Errorf("Len = %d, want 6", s.Len())
	}
}

func TestSessionRejectsFailingInput(t *testing.T) {
	s := repl.NewSession(driver.Options{})
	reply := s.Eval(context.Background(), `missing + 1`)
	if reply.OK() {
		t.Fatal("expected failure")
	}
	if len(reply.Result.Diagnostics) == 0 || reply.Result.Diagnostics[0].Code != diag.ResUnresolvedName {
		t.Fatalf("unexpected diagnostics %v", reply.Result.Diagnostics)
	}
	if reply.Result.File.Path != repl.SessionName {
		t.Errorf("file name = %q", reply.Result.File.Path)
	}

	reply = s.Eval(context.Background(), `1 / 0`)
	if reply.OK() || reply.Result.Fault == nil {
		t.Fatal("expected a runtime fault")
	}
	if s.Len() != 0 {
		t.Errorf("failed inputs were kept: %q", s.Source())
	}
}

func TestSessionReset(t *testing.T) {
	s := repl.NewSession(driver.Options{})
	ctx := context.Background()
	s.Eval(ctx, `print("a"); let v = 1;`)
	s.Reset()
	if s.Len() != 0 || s.Source() != "" {
		t.Fatalf("reset left %q", s.Source())
	}
	reply := s.Eval(ctx, `print("a")`)
	if reply.Output != "a" {
		t.Errorf("output after reset = %q, want %q", reply.Output, "a")
	}
}

func TestIncomplete(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{`fn f() {`, true},
		{"let v = [1,\n2", true},
		{`"abc`, true},
		{`/* note`, true},
		{`let x = 1;`, false},
		{`fn f() { 1 }`, false},
		{`)`, false},
	}
	for _, c := range cases {
		if got := repl.Incomplete(c.src); got != c.want {
			t.Errorf("Incomplete(%q) = %v, want %v", c.src, got, c.want)
		}
	}
}
