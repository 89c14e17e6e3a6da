package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rustle/internal/diag"
	"rustle/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: ERROR RUN4002 DivisionByZero: <message>
//	   2 | 1 / 0
//	     | ^^^^^
//
// затем Notes, если включены.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %s %s: %s\n",
			location(fs, d.Primary, opts),
			p.severity(d.Severity).Sprint(strings.ToUpper(d.Severity.String())),
			p.code.Sprintf("%s %s", d.Code.ID(), d.Code.Name()),
			d.Message)
		snippet(&sb, fs, d.Primary, p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&sb, "  %s %s: %s\n", p.gutter.Sprint("="), p.note.Sprint("note"), n.Msg)
			if f := fs.Get(n.Span.File); f != nil && n.Span != (source.Span{}) {
				fmt.Fprintf(&sb, "    at %s\n", location(fs, n.Span, opts))
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func location(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f.Path, opts.PathMode, opts.BaseDir), start.Line, start.Col)
}

// snippet prints the first line of sp with a caret underline. Columns are
// measured in display cells so wide runes stay aligned.
func snippet(sb *strings.Builder, fs *source.FileSet, sp source.Span, p palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	text := f.Line(start.Line)
	runes := []rune(text)
	from := min(int(start.Col)-1, len(runes))
	to := len(runes)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(runes))
	}

	var pad strings.Builder
	for _, r := range runes[:from] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := max(runewidth.StringWidth(string(runes[from:to])), 1)

	num := fmt.Sprintf("%d", start.Line)
	blank := strings.Repeat(" ", len(num))
	fmt.Fprintf(sb, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), text)
	fmt.Fprintf(sb, " %s %s %s%s\n", blank, p.gutter.Sprint("|"), pad.String(), p.caret.Sprint(strings.Repeat("^", width)))
}
