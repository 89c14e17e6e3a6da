package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rustle/internal/trace"
)

// SourceExt is the extension of rustle source files.
const SourceExt = ".rsl"

// CheckFilesOptions configure CheckFiles.
type CheckFilesOptions struct {
	Options
	// Jobs limits parallelism; <= 0 means GOMAXPROCS.
	Jobs     int
	Cache    *Cache
	Progress ProgressSink
}

// ListFiles returns every *.rsl file under dir, sorted.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckFiles checks paths in parallel. Each file runs its own pipeline;
// results are in input order. A file that fails to load gets a result with
// Err set. The returned error is non-nil only when ctx is cancelled.
func CheckFiles(ctx context.Context, paths []string, opts CheckFilesOptions) ([]*CheckResult, error) {
	results := make([]*CheckResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	for _, p := range paths {
		emit(opts.Progress, CheckEvent{File: p, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tr := opts.tracer(ctx)
	batch := trace.Begin(tr, trace.ScopeDriver, "check-files", trace.CurrentSpan(ctx).SpanID)
	batch.WithExtra("files", strconv.Itoa(len(paths)))
	defer batch.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: batch.ID()})

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(opts.Progress, CheckEvent{File: path, Status: StatusWorking})

			res, err := checkPath(gctx, path, opts.Options, opts.Cache)
			if err != nil {
				results[i] = &CheckResult{Path: path, Err: err}
				emit(opts.Progress, CheckEvent{File: path, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return nil
			}
			results[i] = res

			status := StatusDone
			switch {
			case res.Cached:
				status = StatusCached
			case !res.OK():
				status = StatusError
			}
			emit(opts.Progress, CheckEvent{
				File:        path,
				Status:      status,
				Diagnostics: len(res.Diagnostics),
				Elapsed:     time.Since(start),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
