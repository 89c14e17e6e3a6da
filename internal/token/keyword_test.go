package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	for lexeme, want := range keywords {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v; want %v", lexeme, got, ok, want)
		}
		if got.String() != lexeme {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), lexeme)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{
		"Fn", "LET", "Match", // регистр важен
		"int", "Some", "None", "Ref", "impl", "self",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}
