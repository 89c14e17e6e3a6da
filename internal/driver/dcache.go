package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rustle/internal/diag"
	"rustle/internal/source"
)

// Current schema version - increment when cacheEntry format changes
const cacheSchemaVersion uint16 = 1

// Digest identifies a cache entry.
type Digest [sha256.Size]byte

// Cache хранит результаты check на диске, по одному файлу на Digest.
// Thread-safe for concurrent access. A nil *Cache is a valid, always-empty
// cache.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cacheEntry struct {
	Schema      uint16             `msgpack:"schema"`
	Stage       uint8              `msgpack:"stage"`
	Diagnostics []cachedDiagnostic `msgpack:"diagnostics"`
}

type cachedDiagnostic struct {
	Severity uint8        `msgpack:"sev"`
	Code     uint16       `msgpack:"code"`
	Message  string       `msgpack:"msg"`
	Start    uint32       `msgpack:"start"`
	End      uint32       `msgpack:"end"`
	Notes    []cachedNote `msgpack:"notes,omitempty"`
}

type cachedNote struct {
	Start uint32 `msgpack:"start"`
	End   uint32 `msgpack:"end"`
	Msg   string `msgpack:"msg"`
}

// OpenCache returns the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewCache(filepath.Join(base, app))
}

// NewCache returns a cache rooted at dir, creating it if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Key digests the source together with every option that changes check
// results.
func (c *Cache) Key(content []byte, opts Options) Digest {
	if c == nil {
		return Digest{}
	}
	h := sha256.New()
	fmt.Fprintf(h, "rustle-check/%d\x00%d\x00%d\x00", cacheSchemaVersion, opts.MaxDiagnostics, opts.MaxNesting)
	host := make([]string, 0, len(opts.Builtins))
	for name := range opts.Builtins {
		host = append(host, name)
	}
	slices.Sort(host)
	for _, name := range host {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	h.Write(content)
	var d Digest
	h.Sum(d[:0])
	return d
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, как у git objects
	return filepath.Join(c.dir, "checks", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes an entry.
func (c *Cache) Put(key Digest, entry *cacheEntry) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an entry. Missing, unreadable and stale entries are misses.
func (c *Cache) Get(key Digest) (*cacheEntry, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := msgpack.Unmarshal(data, &entry); err != nil || entry.Schema != cacheSchemaVersion {
		return nil, false
	}
	return &entry, true
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func newCacheEntry(stage diag.Stage, diags []diag.Diagnostic) *cacheEntry {
	entry := &cacheEntry{
		Schema:      cacheSchemaVersion,
		Stage:       uint8(stage),
		Diagnostics: make([]cachedDiagnostic, len(diags)),
	}
	for i, d := range diags {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		entry.Diagnostics[i] = cd
	}
	return entry
}

// restore rebuilds diagnostics with spans in file.
func (e *cacheEntry) restore(file source.FileID) (diag.Stage, []diag.Diagnostic) {
	var out []diag.Diagnostic
	for _, cd := range e.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: file, Start: n.Start, End: n.End}, n.Msg)
		}
		out = append(out, d)
	}
	return diag.Stage(e.Stage), out
}
