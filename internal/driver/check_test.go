package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/diag"
	"rustle/internal/driver"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

type recorder struct {
	mu     sync.Mutex
	events map[string][]driver.CheckStatus
}

func (r *recorder) OnEvent(ev driver.CheckEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = make(map[string][]driver.CheckStatus)
	}
	r.events[filepath.Base(ev.File)] = append(r.events[filepath.Base(ev.File)], ev.Status)
}

type diagView struct {
	Code    diag.Code
	Message string
	Start   uint32
}

func views(ds []diag.Diagnostic) []diagView {
	out := make([]diagView, 0, len(ds))
	for _, d := range ds {
		out = append(out, diagView{d.Code, d.Message, d.Primary.Start})
	}
	return out
}

func TestCheckFilesWithCache(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a_ok.rsl":         "fn main() { 1 }",
		"b_unresolved.rsl": "let x = y;",
		"sub/c_lex.rsl":    "let s = 1 $ 2;",
		"notes.txt":        "ignored",
	})
	paths, err := driver.ListFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %v", paths)
	}
	cache, err := driver.NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	opts := driver.CheckFilesOptions{Jobs: 2, Cache: cache, Progress: rec}
	first, err := driver.CheckFiles(context.Background(), paths, opts)
	if err != nil {
		t.Fatal(err)
	}
	wantStages := []diag.Stage{diag.StageDone, diag.StageResolve, diag.StageLex}
	for i, res := range first {
		if res.Stage != wantStages[i] || res.Cached {
			t.Errorf("%s: stage %s cached %v", res.Path, res.Stage, res.Cached)
		}
	}
	if got := rec.events["b_unresolved.rsl"]; !cmp.Equal(got, []driver.CheckStatus{driver.StatusQueued, driver.StatusWorking, driver.StatusError}) {
		t.Errorf("events = %v", got)
	}

	again, err := driver.CheckFiles(context.Background(), paths, driver.CheckFilesOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	for i, res := range again {
		if !res.Cached || res.Stage != first[i].Stage {
			t.Errorf("%s: cached %v stage %s", res.Path, res.Cached, res.Stage)
		}
		if diff := cmp.Diff(views(first[i].Diagnostics), views(res.Diagnostics)); diff != "" {
			t.Errorf("%s diagnostics (-fresh +cached):\n%s", res.Path, diff)
		}
	}

	// other options, other key
	third, err := driver.CheckFiles(context.Background(), paths[:1], driver.CheckFilesOptions{
		Options: driver.Options{MaxNesting: 10},
		Cache:   cache,
	})
	if err != nil || third[0].Cached {
		t.Fatalf("err %v, cached %v", err, third[0].Cached)
	}
}

func TestCheckFilesMissingFile(t *testing.T) {
	res, err := driver.CheckFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.rsl")}, driver.CheckFilesOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res[0].Err == nil || !errors.Is(res[0].Err, os.ErrNotExist) {
		t.Fatalf("err = %v", res[0].Err)
	}
}

func TestCacheDropAll(t *testing.T) {
	cache, err := driver.NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := writeFiles(t, map[string]string{"a.rsl": "1"})
	p := filepath.Join(dir, "a.rsl")
	opts := driver.CheckFilesOptions{Cache: cache}
	if _, err := driver.CheckFiles(context.Background(), []string{p}, opts); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	res, _ := driver.CheckFiles(context.Background(), []string{p}, opts)
	if res[0].Cached {
		t.Error("entry survived DropAll")
	}
}

func TestFormatPaths(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.rsl": "fn f() { 1 }",
		"b.rsl": "fn g( {",
	})
	ctx := context.Background()
	res, err := driver.FormatPaths(ctx, []string{dir}, driver.FormatOptions{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 || !res[0].Changed || !errors.Is(res[1].Err, driver.ErrSyntax) {
		t.Fatalf("check results = %+v", res)
	}
	if len(res[1].Diagnostics) == 0 {
		t.Error("syntax error without diagnostics")
	}

	if _, err := driver.FormatPaths(ctx, []string{filepath.Join(dir, "a.rsl")}, driver.FormatOptions{}); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "a.rsl"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "fn f() {\n    1\n}\n"; string(got) != want {
		t.Errorf("rewritten = %q, want %q", got, want)
	}
	res, _ = driver.FormatPaths(ctx, []string{filepath.Join(dir, "a.rsl")}, driver.FormatOptions{Check: true})
	if res[0].Changed {
		t.Error("formatting is not idempotent")
	}
}
