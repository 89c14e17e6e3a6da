package driver

import (
	"context"
	"fmt"

	"rustle/internal/ast"
	"rustle/internal/diag"
	"rustle/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse parses the file at path without resolving it.
func Parse(path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseFile(fs, fs.Get(fileID), opts), nil
}

// ParseSource parses in-memory source.
func ParseSource(src string, opts Options) *ParseResult {
	fs := source.NewFileSet()
	return parseFile(fs, fs.Get(fs.AddVirtual(opts.fileName(), []byte(src))), opts)
}

func parseFile(fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	u := &unit{fs: fs, file: file, bag: diag.NewBag(opts.MaxDiagnostics)}
	parseOnly(u, opts, opts.tracer(context.Background()), 0)
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: u.builder,
		FileID:  u.astFile,
		Bag:     u.bag,
	}
}
