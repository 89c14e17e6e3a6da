package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"rustle/internal/diag"
	"rustle/internal/source"
)

// PlainString renders d as "<severity>: <message> at line <L>, column <C>".
func PlainString(d diag.Diagnostic, fs *source.FileSet) string {
	line, col := uint32(1), uint32(1)
	if fs != nil {
		start, _ := fs.Resolve(d.Primary)
		line, col = start.Line, start.Col
	}
	return fmt.Sprintf("%s: %s at line %d, column %d", d.Severity, d.Message, line, col)
}

// Plain writes one PlainString line per diagnostic.
func Plain(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet) error {
	var sb strings.Builder
	for _, d := range diags {
		sb.WriteString(PlainString(d, fs))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
