package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

// languageSeeds cover every construct at least once.
var languageSeeds = []string{
	``,
	`1 + 2 * 3`,
	`let x = 5; let x = x * 2; x`,
	`fn fib(n) { if n < 2 { n } else { fib(n - 1) + fib(n - 2) } } fib(10)`,
	`let mut i = 0; while i < 10 { i += 1; if i == 5 { continue; } } i`,
	`let v = loop { break 7; }; v`,
	`for x in 0..3 { print(x); } for c in "ab" { println(c); }`,
	`struct P { x: i64, y: i64 } let p = P { x: 1, y: 2 }; let q = P { x: 9, ..p }; q.y`,
	`enum Shape { Circle(r), Empty } match Shape::Circle(2) { Shape::Circle(r) if r > 1 => r, _ => 0 }`,
	`match Some(3) { Some(1) | Some(2) => 0, Some(n) => n, None => -1 }`,
	`let r = Ref(1); let f = |d| { *r = *r + d; }; f(2); *r`,
	`let m = Map(); insert(m, "k", 1); get(m, "k")`,
	`let v = [1, 2]; push(v, 3); v[2]`,
	`fn main() { println("hi"); 0 }`,
	`"unterminated`,
	`/* open comment`,
	`fn f( { [ (`,
	`let = ;`,
	`1 / 0`,
	`fn r(n) { r(n + 1) } r(0)`,
}

func addSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
