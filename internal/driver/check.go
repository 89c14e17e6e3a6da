package driver

import (
	"context"
	"fmt"

	"rustle/internal/diag"
	"rustle/internal/source"
	"rustle/internal/trace"
)

// CheckResult holds the diagnostics of one file checked without running it.
type CheckResult struct {
	Path        string
	FileSet     *source.FileSet
	File        *source.File
	Diagnostics []diag.Diagnostic
	Stage       diag.Stage
	// Cached is set when the diagnostics came from a Cache.
	Cached bool
	// Err is a load failure in CheckFiles; Diagnostics are empty then.
	Err error
}

// OK reports whether the file parsed and resolved cleanly.
func (r *CheckResult) OK() bool { return r.Stage == diag.StageDone }

// Check parses and resolves the file at path.
func Check(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	return checkPath(ctx, path, opts, nil)
}

// CheckSource checks in-memory source.
func CheckSource(ctx context.Context, src string, opts Options) *CheckResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(opts.fileName(), []byte(src)))
	return checkFile(ctx, fs, file, opts, nil)
}

func checkPath(ctx context.Context, path string, opts Options, cache *Cache) (*CheckResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return checkFile(ctx, fs, fs.Get(id), opts, cache), nil
}

func checkFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, cache *Cache) *CheckResult {
	res := &CheckResult{Path: file.Path, FileSet: fs, File: file}
	tr := opts.tracer(ctx)
	key := cache.Key(file.Content, opts)
	if entry, ok := cache.Get(key); ok {
		res.Stage, res.Diagnostics = entry.restore(file.ID)
		res.Cached = true
		trace.Point(tr, trace.ScopeFile, "cache-hit", file.Path, trace.CurrentSpan(ctx).SpanID)
		return res
	}

	root := trace.Begin(tr, trace.ScopeFile, "check:"+file.Path, trace.CurrentSpan(ctx).SpanID)
	u := compile(fs, file, opts, tr, root.ID())
	res.Stage, res.Diagnostics = outcome(u.bag)
	root.End(res.Stage.String())

	// ошибка записи кэша не должна ломать проверку
	_ = cache.Put(key, newCacheEntry(res.Stage, res.Diagnostics))
	return res
}
