package ast

import (
	"rustle/internal/source"
)

// File is a parsed program: a block body without braces.
type File struct {
	Span source.Span
	Body []StmtID
	Tail ExprID // trailing expression, NoExprID when absent
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: sp}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
