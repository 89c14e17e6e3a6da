package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Color modes accepted in [diagnostics].color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Manifest is a parsed rustle.toml.
type Manifest struct {
	// Path of the manifest file; Root is its directory.
	Path string `toml:"-"`
	Root string `toml:"-"`

	Package     PackageConfig     `toml:"package"`
	Run         RunConfig         `toml:"run"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	// Main is relative to the manifest directory.
	Main         string `toml:"main"`
	MaxCallDepth int    `toml:"max_call_depth"`
	MaxNesting   int    `toml:"max_nesting"`
}

type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// Load parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	m.Path = abs
	m.Root = filepath.Dir(abs)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// Discover finds and loads the manifest above startDir. A missing manifest
// is not an error: it returns nil, nil.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, err
	}
	return Load(path)
}

// Validate checks field values.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Package.Name) == "" {
		return ErrPackageNameMissing
	}
	if m.Run.MaxCallDepth < 0 {
		return fmt.Errorf("[run].max_call_depth must not be negative, got %d", m.Run.MaxCallDepth)
	}
	if m.Run.MaxNesting < 0 {
		return fmt.Errorf("[run].max_nesting must not be negative, got %d", m.Run.MaxNesting)
	}
	if m.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must not be negative, got %d", m.Diagnostics.Max)
	}
	switch m.Diagnostics.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("[diagnostics].color must be auto, always or never, got %q", m.Diagnostics.Color)
	}
	if m.Run.Main != "" && filepath.Ext(m.Run.Main) != ".rsl" {
		return fmt.Errorf("[run].main must be a .rsl file, got %q", m.Run.Main)
	}
	return nil
}

// MainPath returns the absolute entry file, or "" when [run].main is unset.
func (m *Manifest) MainPath() string {
	if m == nil || m.Run.Main == "" {
		return ""
	}
	if filepath.IsAbs(m.Run.Main) {
		return m.Run.Main
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Run.Main))
}
