package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rustle/internal/ast"
	"rustle/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every top-level statement span is non-empty and inside file.Span
// 3) every expression and pattern span is non-empty and inside the content
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	for _, id := range f.Body {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil stmt for id=%d", id)
		}
		if st.Span.End <= st.Span.Start {
			return fmt.Errorf("empty stmt span: %v", st.Span)
		}
		if !f.Span.Contains(st.Span) {
			return fmt.Errorf("stmt span %v is outside file span %v", st.Span, f.Span)
		}
	}

	for i, e := range b.Exprs.Arena.Slice() {
		if err := checkNodeSpan(e.Span, sf.ID, lenContent); err != nil {
			return fmt.Errorf("expr #%d (%s): %w", i+1, e.Kind, err)
		}
	}
	for i, p := range b.Pats.Arena.Slice() {
		if err := checkNodeSpan(p.Span, sf.ID, lenContent); err != nil {
			return fmt.Errorf("pattern #%d: %w", i+1, err)
		}
	}
	return nil
}

func checkNodeSpan(sp source.Span, file source.FileID, limit uint32) error {
	switch {
	case sp.File != file:
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, file)
	case sp.End <= sp.Start:
		return fmt.Errorf("empty span %v", sp)
	case sp.End > limit:
		return fmt.Errorf("span %v beyond content (%d)", sp, limit)
	}
	return nil
}
