package lexer

import (
	"testing"

	"rustle/internal/source"
)

func TestCursorMarkSpan(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("c", []byte("abc")))
	c := NewCursor(f)
	m := c.Mark()
	if !c.Eat('a') || c.Eat('x') {
		t.Fatalf("Eat misbehaves")
	}
	c.Bump()
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Errorf("span = %v", sp)
	}
	if b0, b1, ok := c.Peek2(); ok || b0 != 0 || b1 != 0 {
		t.Errorf("Peek2 at last byte should fail")
	}
	c.Bump()
	if !c.EOF() || c.Bump() != 0 || c.Peek() != 0 {
		t.Errorf("EOF handling broken")
	}
	c.Reset(m)
	if c.Peek() != 'a' {
		t.Errorf("Reset did not rewind")
	}
}
