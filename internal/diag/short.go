package diag

import (
	"fmt"
	"strings"

	"rustle/internal/source"
)

// FormatShort renders one line per diagnostic:
// "<ID> <line>:<col> <message>". Used by tests and golden output.
func FormatShort(diags []Diagnostic, fs *source.FileSet) string {
	if len(diags) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteByte('\n')
		}
		line, col := uint32(0), uint32(0)
		if fs != nil {
			start, _ := fs.Resolve(d.Primary)
			line, col = start.Line, start.Col
		}
		fmt.Fprintf(&sb, "%s %d:%d %s", d.Code.ID(), line, col, d.Message)
	}
	return sb.String()
}
