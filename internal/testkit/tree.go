package testkit

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"rustle/internal/ast"
	"rustle/internal/source"
)

// TreeDiff compares two builders node by node, ignoring spans. The parser
// allocates nodes in a fixed order, so structurally identical programs
// produce identical arenas. An empty result means the trees match.
func TreeDiff(a, b *ast.Builder) string {
	return cmp.Diff(a, b,
		cmp.Exporter(func(reflect.Type) bool { return true }),
		cmpopts.IgnoreTypes(source.Span{}),
	)
}
