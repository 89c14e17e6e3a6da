package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/project"
)

func write(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, root, `[package]
name = "demo"
[run]
main = "src/main.rsl"
max_call_depth = 2048
[diagnostics]
max = 100
color = "never"
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	m, err := project.Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("manifest not found")
	}
	want := project.RunConfig{Main: "src/main.rsl", MaxCallDepth: 2048}
	if diff := cmp.Diff(want, m.Run); diff != "" {
		t.Errorf("run (-want +got):\n%s", diff)
	}
	if m.Diagnostics.Color != project.ColorNever || m.Diagnostics.Max != 100 {
		t.Errorf("diagnostics = %+v", m.Diagnostics)
	}
	if got, want := m.MainPath(), filepath.Join(m.Root, "src", "main.rsl"); got != want {
		t.Errorf("MainPath = %q, want %q", got, want)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	m, err := project.Discover(t.TempDir())
	if err != nil || m != nil {
		t.Fatalf("got %v, %v", m, err)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, content, wantErr string
	}{
		{"no package", "[run]\nmax_nesting = 3\n", "missing [package]"},
		{"no name", "[package]\n", "missing [package].name"},
		{"unknown key", "[package]\nname = \"x\"\nedition = 2021\n", "unknown keys: package.edition"},
		{"bad color", "[package]\nname = \"x\"\n[diagnostics]\ncolor = \"pink\"\n", "color must be"},
		{"negative depth", "[package]\nname = \"x\"\n[run]\nmax_call_depth = -1\n", "max_call_depth"},
		{"bad main", "[package]\nname = \"x\"\n[run]\nmain = \"main.rs\"\n", ".rsl"},
		{"syntax", "[package\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := write(t, t.TempDir(), tt.content)
			_, err := project.Load(p)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
	_, err := project.Load(write(t, t.TempDir(), "[run]\n"))
	if !errors.Is(err, project.ErrPackageSectionMissing) {
		t.Errorf("err = %v", err)
	}
}
