package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/diag"
	"rustle/internal/diagfmt"
	"rustle/internal/source"
)

func fileWith(path, content string) (*source.FileSet, source.FileID) {
	fs := source.NewFileSet()
	return fs, fs.AddVirtual(path, []byte(content))
}

func TestPlainShape(t *testing.T) {
	fs, id := fileWith("main.rsl", "let a = 1;\nlet b = a / 0;")
	d := diag.NewError(diag.RunDivisionByZero, source.Span{File: id, Start: 19, End: 24}, "attempt to divide by zero")
	var buf bytes.Buffer
	if err := diagfmt.Plain(&buf, []diag.Diagnostic{d}, fs); err != nil {
		t.Fatal(err)
	}
	if want := "error: attempt to divide by zero at line 2, column 9\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestPrettyAlignsCaretAfterWideRunes(t *testing.T) {
	fs, id := fileWith("main.rsl", "let s = \"日本\"; x")
	d := diag.NewError(diag.ResUnresolvedName, source.Span{File: id, Start: 18, End: 19}, "cannot find value 'x' in this scope")
	var buf bytes.Buffer
	if err := diagfmt.Pretty(&buf, []diag.Diagnostic{d}, fs, diagfmt.PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "main.rsl:1:15: ERROR RES3001 UnresolvedName: cannot find value 'x' in this scope\n" +
		" 1 | let s = \"日本\"; x\n" +
		"   | " + strings.Repeat(" ", 16) + "^\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("pretty (-want +got):\n%s", diff)
	}
}

func TestPrettyNotesAndPathModes(t *testing.T) {
	fs, id := fileWith("/home/user/project/src/test.rsl", "f()\n")
	d := diag.NewError(diag.RunPanic, source.Span{File: id, Start: 0, End: 3}, "explicit panic").
		WithNote(source.Span{File: id, Start: 0, End: 3}, "in call to 'f'")

	tests := []struct {
		mode diagfmt.PathMode
		want string
	}{
		{diagfmt.PathModeAbsolute, "/home/user/project/src/test.rsl:1:1"},
		{diagfmt.PathModeBasename, "test.rsl:1:1"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		opts := diagfmt.PrettyOpts{PathMode: tt.mode, ShowNotes: true}
		if err := diagfmt.Pretty(&buf, []diag.Diagnostic{d}, fs, opts); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if !strings.HasPrefix(out, tt.want) {
			t.Errorf("mode %d: output starts %q", tt.mode, out)
		}
		if !strings.Contains(out, "= note: in call to 'f'") {
			t.Errorf("note missing:\n%s", out)
		}
	}

	var buf bytes.Buffer
	opts := diagfmt.PrettyOpts{PathMode: diagfmt.PathModeRelative, BaseDir: "/home/user/project"}
	if err := diagfmt.Pretty(&buf, []diag.Diagnostic{d}, fs, opts); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "src/test.rsl:1:1") {
		t.Errorf("relative: %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	fs, id := fileWith("main.rsl", "1 / 0")
	d := diag.NewError(diag.RunDivisionByZero, source.Span{File: id, Start: 0, End: 5}, "attempt to divide by zero")
	var buf bytes.Buffer
	opts := diagfmt.JSONOpts{IncludePositions: true}
	if err := diagfmt.JSON(&buf, []diag.Diagnostic{d, d}, fs, diagfmt.JSONOpts{IncludePositions: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var got diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := diagfmt.BuildDiagnosticsOutput([]diag.Diagnostic{d}, fs, opts)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json (-want +got):\n%s", diff)
	}
	if got.Count != 1 || got.Diagnostics[0].Kind != "RuntimeError::DivisionByZero" || got.Diagnostics[0].Location.EndCol != 6 {
		t.Errorf("got %+v", got)
	}
}

func TestParsePathMode(t *testing.T) {
	if m, ok := diagfmt.ParsePathMode("basename"); !ok || m != diagfmt.PathModeBasename {
		t.Errorf("basename -> %d %v", m, ok)
	}
	if _, ok := diagfmt.ParsePathMode("weird"); ok {
		t.Error("accepted unknown mode")
	}
}
