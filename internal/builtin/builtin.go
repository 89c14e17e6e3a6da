// Package builtin holds the native functions visible to every program and
// the table that merges them with host-supplied functions.
package builtin

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"rustle/internal/diag"
	"rustle/internal/value"
)

// Func is a native function. Arguments are passed without copying, so
// push and insert mutate their receiver in place.
type Func func(c *Call, args []value.Value) (value.Value, error)

// Call carries per-call context into a builtin.
type Call struct {
	Name string
	// Out receives print output. Never nil when called by the evaluator.
	Out io.Writer
}

// Def describes one builtin slot.
type Def struct {
	Name string
	Min  int
	Max  int // -1: variadic
	Fn   Func
	Host bool
}

// Accepts reports whether n arguments fit the declared arity.
func (d *Def) Accepts(n int) bool {
	return n >= d.Min && (d.Max < 0 || n <= d.Max)
}

// ArityText renders the expected argument count for diagnostics.
func (d *Def) ArityText() string {
	switch {
	case d.Max < 0:
		return fmt.Sprintf("at least %d", d.Min)
	case d.Min == d.Max:
		return fmt.Sprintf("%d", d.Min)
	}
	return fmt.Sprintf("%d to %d", d.Min, d.Max)
}

// Error is a builtin failure with a runtime diagnostic code. Any other
// error returned by a builtin is reported as RunHostError.
type Error struct {
	Code diag.Code
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Errorf builds an *Error.
func Errorf(code diag.Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func typeMismatch(name, want string, got value.Value) *Error {
	return Errorf(diag.RunTypeMismatch, "%s: expected %s, found %s", name, want, got.TypeName())
}

// Table maps builtin names to slots. Slot order is the standard library
// order followed by host names sorted alphabetically.
type Table struct {
	defs  []Def
	index map[string]int
}

// NewTable merges host functions into the standard library. A host entry
// with a standard name replaces the standard implementation in place.
func NewTable(host map[string]Func) *Table {
	std := Standard()
	t := &Table{
		defs:  make([]Def, 0, len(std)+len(host)),
		index: make(map[string]int, len(std)+len(host)),
	}
	for _, d := range std {
		t.add(d)
	}
	for _, name := range slices.Sorted(maps.Keys(host)) {
		fn := host[name]
		if fn == nil {
			continue
		}
		d := Def{Name: name, Min: 0, Max: -1, Fn: fn, Host: true}
		if slot, ok := t.index[name]; ok {
			t.defs[slot] = d
			continue
		}
		t.add(d)
	}
	return t
}

func (t *Table) add(d Def) {
	t.index[d.Name] = len(t.defs)
	t.defs = append(t.defs, d)
}

// Names returns builtin names ordered by slot.
func (t *Table) Names() []string {
	names := make([]string, len(t.defs))
	for i := range t.defs {
		names[i] = t.defs[i].Name
	}
	return names
}

// Host returns the set of host-supplied names.
func (t *Table) Host() map[string]bool {
	host := make(map[string]bool)
	for _, d := range t.defs {
		if d.Host {
			host[d.Name] = true
		}
	}
	return host
}

// Def returns the builtin at slot, or nil.
func (t *Table) Def(slot int) *Def {
	if slot < 0 || slot >= len(t.defs) {
		return nil
	}
	return &t.defs[slot]
}

// Lookup returns the slot of name.
func (t *Table) Lookup(name string) (int, bool) {
	slot, ok := t.index[name]
	return slot, ok
}

// Len returns the number of slots.
func (t *Table) Len() int { return len(t.defs) }
