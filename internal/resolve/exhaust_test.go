package resolve_test

import (
	"strings"
	"testing"

	"rustle/internal/diag"
)

func TestExhaustiveness(t *testing.T) {
	tests := []struct {
		src     string
		missing []string // nil means exhaustive
	}{
		{"match Some(1) { None => 0 }", []string{"'Some(_)'"}},
		{"match Some(1) { None => 0, Some(_) => 1 }", nil},
		{"match Some(true) { Some(true) => 1, None => 0 }", []string{"'Some(_)'"}},
		{"match Some(true) { Some(true) | Some(false) => 1, None => 0 }", nil},
		{"match true { true => 1, false => 0 }", nil},
		{"match true { true => 1 }", []string{"'false'"}},
		{"match 1 { 1 => 0, 2 => 1 }", []string{"'_'"}},
		{"match 1 { 1 => 0, n => n }", nil},
		{"match 1 { n if n > 0 => 1 }", []string{"'_'"}},
		{"enum E { A, B(Int), C } match E::A { E::A => 1, E::C => 2 }", []string{"'E::B(_)'"}},
		{"enum E { A, B(Int) } match E::A { E::A => 1, E::B(_) => 2 }", nil},
		{"struct P { x: Int, y: Bool } match (P { x: 1, y: true }) { P { y: true, x } => x, P { y: false, x: _ } => 0 }", nil},
		{"struct P { y: Bool } match (P { y: true }) { P { y: true } => 1 }", []string{"'P { .. }'"}},
		{"match Ok(1) { Ok(n) => n, Err(_) => 0 }", nil},
		{"match Ok(1) { Ok(n) => n }", []string{"'Err(_)'"}},
	}
	for _, tt := range tests {
		r := resolveSrc(t, tt.src)
		if tt.missing == nil {
			if r.bag.Len() != 0 {
				t.Errorf("%q: unexpected %s", tt.src, messages(r.bag))
			}
			continue
		}
		items := r.bag.Items()
		if len(items) != 1 || items[0].Code != diag.ResNonExhaustiveMatch {
			t.Errorf("%q: want one NonExhaustiveMatch, got %s", tt.src, messages(r.bag))
			continue
		}
		for _, m := range tt.missing {
			if !strings.Contains(items[0].Message, m) {
				t.Errorf("%q: message %q does not mention %s", tt.src, items[0].Message, m)
			}
		}
	}
}

func TestNonExhaustiveSpanIsScrutinee(t *testing.T) {
	src := "match Some(1) { None => 0 }"
	r := resolveSrc(t, src)
	d := r.bag.Items()[0]
	if got := src[d.Primary.Start:d.Primary.End]; got != "Some(1)" {
		t.Errorf("primary span covers %q", got)
	}
}
