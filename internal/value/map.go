package value

import "fmt"

type mapKey struct {
	kind Kind
	b    bool
	i    int64
	s    string
}

// Map is an insertion-ordered map with Int, Str or Bool keys.
type Map struct {
	keys  []Value
	vals  []Value
	index map[mapKey]int
}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{index: make(map[mapKey]int)}
}

// KeyError reports a value that cannot be used as a map key.
type KeyError struct{ Kind Kind }

func (e *KeyError) Error() string {
	return fmt.Sprintf("map keys must be Int, Str or Bool, found %s", e.Kind)
}

func keyOf(k Value) (mapKey, error) {
	switch k.Kind {
	case KindInt:
		return mapKey{kind: KindInt, i: k.Int}, nil
	case KindStr:
		return mapKey{kind: KindStr, s: k.Str}, nil
	case KindBool:
		return mapKey{kind: KindBool, b: k.Bool}, nil
	}
	return mapKey{}, &KeyError{Kind: k.Kind}
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Get looks up k.
func (m *Map) Get(k Value) (Value, bool, error) {
	key, err := keyOf(k)
	if err != nil {
		return Value{}, false, err
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false, nil
	}
	return m.vals[i], true, nil
}

// Insert sets k to v and returns the previous value, if any. A new key goes last.
func (m *Map) Insert(k, v Value) (Value, bool, error) {
	key, err := keyOf(k)
	if err != nil {
		return Value{}, false, err
	}
	if i, ok := m.index[key]; ok {
		prev := m.vals[i]
		m.vals[i] = v
		return prev, true, nil
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
	return Value{}, false, nil
}

// Remove deletes k and returns its value, if present.
func (m *Map) Remove(k Value) (Value, bool, error) {
	key, err := keyOf(k)
	if err != nil {
		return Value{}, false, err
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false, nil
	}
	prev := m.vals[i]
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.keys); j++ {
		kk, _ := keyOf(m.keys[j])
		m.index[kk] = j
	}
	return prev, true, nil
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []Value {
	return append([]Value(nil), m.keys...)
}

// Entry returns the i-th entry in insertion order.
func (m *Map) Entry(i int) (Value, Value) { return m.keys[i], m.vals[i] }
