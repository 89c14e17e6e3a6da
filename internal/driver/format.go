package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"rustle/internal/diag"
	"rustle/internal/format"
	"rustle/internal/source"
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check          bool
	MaxDiagnostics int
	Options        format.Options
	Stdout         bool
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	// Diagnostics are set when the file does not parse.
	Diagnostics []diag.Diagnostic
	FileSet     *source.FileSet
}

// ErrSyntax is wrapped by FormatResult.Err for files with parse errors.
var ErrSyntax = errors.New("syntax errors present")

// FormatPaths formats provided files or directories (recursively collecting .rsl files).
// When opts.Check is true, files are not modified; Changed indicates whether formatting
// would update the file contents. When opts.Stdout is true, formatted content is returned
// in the results without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := formatSingleFile(path, opts)
		if result.Err != nil || opts.Check || opts.Stdout {
			results = append(results, result)
			continue
		}

		if result.Changed {
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(path); statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, result.Formatted, mode.Perm()); err != nil {
				result.Err = err
			}
		}
		results = append(results, result)
	}

	return results, nil
}

// FormatSource returns the canonical form of src.
func FormatSource(src string, opts FormatOptions) ([]byte, *ParseResult, error) {
	pr := ParseSource(src, Options{MaxDiagnostics: opts.MaxDiagnostics})
	if pr.Bag.HasErrors() {
		return nil, pr, ErrSyntax
	}
	out, err := format.FormatFile(pr.Builder, pr.FileID, opts.Options)
	return out, pr, err
}

func formatSingleFile(path string, opts FormatOptions) FormatResult {
	result := FormatResult{Path: path}
	pr, err := Parse(path, Options{MaxDiagnostics: opts.MaxDiagnostics})
	if err != nil {
		result.Err = err
		return result
	}
	result.FileSet = pr.FileSet
	if pr.Bag.HasErrors() {
		result.Diagnostics = pr.Bag.Clone()
		result.Err = fmt.Errorf("format %s: %w", path, ErrSyntax)
		return result
	}

	formatted, err := format.FormatFile(pr.Builder, pr.FileID, opts.Options)
	if err != nil {
		result.Err = err
		return result
	}
	result.Formatted = formatted
	result.Changed = !bytes.Equal(pr.File.Content, formatted)
	return result
}

func collectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if !d.IsDir() && filepath.Ext(path) == SourceExt {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if filepath.Ext(p) == SourceExt {
			addFile(p)
		}
	}

	sort.Strings(files)
	return files, nil
}
