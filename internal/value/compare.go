package value

import "strings"

// Equal implements ==. Values of different kinds are never equal.
// Refs and callables compare by identity.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindUnit:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindInt:
		return a.Int == b.Int
	case KindFloat:
		return a.Float == b.Float
	case KindStr:
		return a.Str == b.Str
	case KindStruct:
		x, y := a.AsStruct(), b.AsStruct()
		return x.Decl == y.Decl && equalSlices(x.Fields, y.Fields)
	case KindEnum:
		x, y := a.AsEnum(), b.AsEnum()
		return x.Decl == y.Decl && x.Variant == y.Variant && equalSlices(x.Payload, y.Payload)
	case KindVec:
		return equalSlices(a.AsVec().Elems, b.AsVec().Elems)
	case KindMap:
		x, y := a.AsMap(), b.AsMap()
		if x.Len() != y.Len() {
			return false
		}
		for i := range x.Len() {
			k, v := x.Entry(i)
			w, ok, _ := y.Get(k)
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	case KindRef:
		return a.AsRef() == b.AsRef()
	case KindFunc:
		return a.AsFunc() == b.AsFunc()
	case KindBuiltin:
		return a.AsBuiltin().Slot == b.AsBuiltin().Slot
	}
	return false
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Ordering is the result of Compare.
type Ordering int8

const (
	Less      Ordering = -1
	Same      Ordering = 0
	Greater   Ordering = 1
	Unordered Ordering = 2 // NaN involved
)

// Comparable reports whether < and friends are defined between a and b.
func Comparable(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInt, KindFloat, KindStr, KindBool, KindUnit:
		return true
	case KindVec:
		x, y := a.AsVec().Elems, b.AsVec().Elems
		for i := 0; i < len(x) && i < len(y); i++ {
			if !Comparable(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders two comparable values. Vectors compare lexicographically.
func Compare(a, b Value) Ordering {
	switch a.Kind {
	case KindInt:
		switch {
		case a.Int < b.Int:
			return Less
		case a.Int > b.Int:
			return Greater
		}
		return Same
	case KindFloat:
		switch {
		case a.Float < b.Float:
			return Less
		case a.Float > b.Float:
			return Greater
		case a.Float == b.Float:
			return Same
		}
		return Unordered
	case KindStr:
		return Ordering(strings.Compare(a.Str, b.Str))
	case KindBool:
		switch {
		case a.Bool == b.Bool:
			return Same
		case b.Bool:
			return Less
		}
		return Greater
	case KindVec:
		x, y := a.AsVec().Elems, b.AsVec().Elems
		for i := 0; i < len(x) && i < len(y); i++ {
			if o := Compare(x[i], y[i]); o != Same {
				return o
			}
		}
		return Compare(MakeInt(int64(len(x))), MakeInt(int64(len(y))))
	}
	return Same
}
