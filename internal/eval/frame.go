package eval

import (
	"rustle/internal/source"
	"rustle/internal/value"
)

// frame holds the slots of one scope. Closures and fn items keep a pointer
// to the frame they were created in.
type frame struct {
	slots  []value.Value
	parent *frame
}

func newFrame(size int, parent *frame) *frame {
	return &frame{slots: make([]value.Value, size), parent: parent}
}

func (f *frame) up(depth int) *frame {
	for ; depth > 0 && f != nil; depth-- {
		f = f.parent
	}
	return f
}

// activation is one entry of the call stack.
type activation struct {
	name string
	call source.Span
}
