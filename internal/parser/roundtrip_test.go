package parser_test

import (
	"testing"

	"rustle/internal/format"
	"rustle/internal/testkit"
)

var roundTripSources = []string{
	"1 + 2 * (3 - 4) / 5 % 6",
	"let x = -!*r; x",
	`fn add(a, b) { a + b } add(2, 3)`,
	`struct P { x: Int, y: Int } let p = P { x: 1, y: 2 }; p.x = p.y; P { x: 3, y }`,
	`enum E { A, B(Int, Str) } match E::B(1, "q\"\n") { E::A => 0, E::B(n, _) if n > 0 => n, _ => -1 }`,
	`let r = Ref(0); let inc = || *r += 1; inc(); inc(); *r`,
	`let mut v = [1, 2, 3]; for x in v { if x == 2 { continue; } else if x > 2 { break; } } v[0] = 10;`,
	`fn f(n: Int) -> Int { let mut acc = 1; while n > 1 { acc *= n; n -= 1; } return acc; }`,
	`let t = loop { break 5; }; let u = { let a = 1; a }; match t { 1 | 2 => (), -5 => u, P { x: 0, y } => y, _ => 0 }`,
	`let f = |a: Int, b| |c| a + b + c; f(1, 2)(3)`,
	`fn main() -> Option<Int> { Some(1) }`,
	"let big = 0xff_ff + 0o17 + 0b1010 + 1_000; let fl = 1.5e-3 + 2.0; fl + 1.0",
}

// print(parse(src)) → parse → print must be a fixpoint and the trees equal.
func TestRoundTrip(t *testing.T) {
	for _, src := range roundTripSources {
		first := mustParse(t, src)
		out1, err := format.FormatFile(first.b, first.file, format.Options{})
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		second := mustParse(t, string(out1))
		if diff := testkit.TreeDiff(first.b, second.b); diff != "" {
			t.Errorf("tree changed after round trip for %q (-first +second):\n%s\nprinted:\n%s", src, diff, out1)
		}
		out2, err := format.FormatFile(second.b, second.file, format.Options{})
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		if string(out1) != string(out2) {
			t.Errorf("printer is not idempotent:\n%s\n---\n%s", out1, out2)
		}
	}
}
