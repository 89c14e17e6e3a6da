package builtin

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"rustle/internal/diag"
	"rustle/internal/value"
)

// Standard returns the standard builtins in slot order.
func Standard() []Def {
	return []Def{
		{Name: "print", Min: 0, Max: -1, Fn: builtinPrint},
		{Name: "println", Min: 0, Max: -1, Fn: builtinPrintln},
		{Name: "assert", Min: 1, Max: 2, Fn: builtinAssert},
		{Name: "assert_eq", Min: 2, Max: 3, Fn: builtinAssertEq},
		{Name: "panic", Min: 0, Max: 1, Fn: builtinPanic},
		{Name: "len", Min: 1, Max: 1, Fn: builtinLen},
		{Name: "push", Min: 2, Max: 2, Fn: builtinPush},
		{Name: "pop", Min: 1, Max: 1, Fn: builtinPop},
		{Name: "Ref", Min: 1, Max: 1, Fn: builtinRef},
		{Name: "str", Min: 1, Max: 1, Fn: builtinStr},
		{Name: "int", Min: 1, Max: 1, Fn: builtinInt},
		{Name: "float", Min: 1, Max: 1, Fn: builtinFloat},
		{Name: "abs", Min: 1, Max: 1, Fn: builtinAbs},
		{Name: "min", Min: 2, Max: 2, Fn: builtinMin},
		{Name: "max", Min: 2, Max: 2, Fn: builtinMax},
		{Name: "Map", Min: 0, Max: 0, Fn: builtinMap},
		{Name: "insert", Min: 3, Max: 3, Fn: builtinInsert},
		{Name: "get", Min: 2, Max: 2, Fn: builtinGet},
		{Name: "remove", Min: 2, Max: 2, Fn: builtinRemove},
		{Name: "contains_key", Min: 2, Max: 2, Fn: builtinContainsKey},
		{Name: "keys", Min: 1, Max: 1, Fn: builtinKeys},
		{Name: "type_of", Min: 1, Max: 1, Fn: builtinTypeOf},
	}
}

func out(c *Call) io.Writer {
	if c == nil || c.Out == nil {
		return io.Discard
	}
	return c.Out
}

func joinDisplay(args []value.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.Display(a)
	}
	return strings.Join(parts, " ")
}

func builtinPrint(c *Call, args []value.Value) (value.Value, error) {
	if _, err := io.WriteString(out(c), joinDisplay(args)); err != nil {
		return value.Value{}, fmt.Errorf("print: %w", err)
	}
	return value.Unit, nil
}

func builtinPrintln(c *Call, args []value.Value) (value.Value, error) {
	if _, err := io.WriteString(out(c), joinDisplay(args)+"\n"); err != nil {
		return value.Value{}, fmt.Errorf("println: %w", err)
	}
	return value.Unit, nil
}

func builtinAssert(c *Call, args []value.Value) (value.Value, error) {
	if args[0].Kind != value.KindBool {
		return value.Value{}, typeMismatch(c.Name, "Bool", args[0])
	}
	if args[0].Bool {
		return value.Unit, nil
	}
	if len(args) == 2 {
		return value.Value{}, Errorf(diag.RunAssertionFailed, "assertion failed: %s", value.Display(args[1]))
	}
	return value.Value{}, Errorf(diag.RunAssertionFailed, "assertion failed")
}

func builtinAssertEq(_ *Call, args []value.Value) (value.Value, error) {
	if value.Equal(args[0], args[1]) {
		return value.Unit, nil
	}
	msg := fmt.Sprintf("assertion failed: left == right (left: %s, right: %s)", value.Debug(args[0]), value.Debug(args[1]))
	if len(args) == 3 {
		msg += ": " + value.Display(args[2])
	}
	return value.Value{}, Errorf(diag.RunAssertionFailed, "%s", msg)
}

func builtinPanic(_ *Call, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Value{}, Errorf(diag.RunPanic, "explicit panic")
	}
	return value.Value{}, Errorf(diag.RunPanic, "%s", value.Display(args[0]))
}

func builtinLen(c *Call, args []value.Value) (value.Value, error) {
	var n int
	switch a := args[0]; a.Kind {
	case value.KindStr:
		n = len(a.Str)
	case value.KindVec:
		n = len(a.AsVec().Elems)
	case value.KindMap:
		n = a.AsMap().Len()
	default:
		return value.Value{}, typeMismatch(c.Name, "Str, Vec or Map", a)
	}
	n64, err := safecast.Conv[int64](n)
	if err != nil {
		return value.Value{}, Errorf(diag.RunIntegerOverflow, "%s: %v", c.Name, err)
	}
	return value.MakeInt(n64), nil
}

func builtinPush(c *Call, args []value.Value) (value.Value, error) {
	if args[0].Kind != value.KindVec {
		return value.Value{}, typeMismatch(c.Name, "Vec", args[0])
	}
	v := args[0].AsVec()
	v.Elems = append(v.Elems, value.Copy(args[1]))
	return value.Unit, nil
}

func builtinPop(c *Call, args []value.Value) (value.Value, error) {
	if args[0].Kind != value.KindVec {
		return value.Value{}, typeMismatch(c.Name, "Vec", args[0])
	}
	v := args[0].AsVec()
	if len(v.Elems) == 0 {
		return value.None(), nil
	}
	last := v.Elems[len(v.Elems)-1]
	v.Elems = v.Elems[:len(v.Elems)-1]
	return value.Some(last), nil
}

func builtinRef(_ *Call, args []value.Value) (value.Value, error) {
	return value.MakeRef(value.Copy(args[0])), nil
}

func builtinStr(_ *Call, args []value.Value) (value.Value, error) {
	return value.MakeStr(value.Display(args[0])), nil
}

func builtinInt(c *Call, args []value.Value) (value.Value, error) {
	switch a := args[0]; a.Kind {
	case value.KindInt:
		return a, nil
	case value.KindBool:
		if a.Bool {
			return value.MakeInt(1), nil
		}
		return value.MakeInt(0), nil
	case value.KindFloat:
		// 2^63 не представимо в int64
		if math.IsNaN(a.Float) || a.Float >= 0x1p63 || a.Float < -0x1p63 {
			return value.Value{}, Errorf(diag.RunIntegerOverflow, "%s: %s does not fit in Int", c.Name, value.FormatFloat(a.Float))
		}
		return value.MakeInt(int64(a.Float)), nil
	case value.KindStr:
		n, err := strconv.ParseInt(a.Str, 10, 64)
		if err != nil {
			return value.Value{}, Errorf(diag.RunTypeMismatch, "%s: cannot parse %q as Int", c.Name, a.Str)
		}
		return value.MakeInt(n), nil
	default:
		return value.Value{}, typeMismatch(c.Name, "Int, Float, Bool or Str", a)
	}
}

func builtinFloat(c *Call, args []value.Value) (value.Value, error) {
	switch a := args[0]; a.Kind {
	case value.KindFloat:
		return a, nil
	case value.KindInt:
		return value.MakeFloat(float64(a.Int)), nil
	case value.KindStr:
		f, err := strconv.ParseFloat(a.Str, 64)
		if err != nil {
			return value.Value{}, Errorf(diag.RunTypeMismatch, "%s: cannot parse %q as Float", c.Name, a.Str)
		}
		return value.MakeFloat(f), nil
	default:
		return value.Value{}, typeMismatch(c.Name, "Int, Float or Str", a)
	}
}

func builtinAbs(c *Call, args []value.Value) (value.Value, error) {
	switch a := args[0]; a.Kind {
	case value.KindInt:
		if a.Int >= 0 {
			return a, nil
		}
		n, ok := value.NegInt64Checked(a.Int)
		if !ok {
			return value.Value{}, Errorf(diag.RunIntegerOverflow, "attempt to negate with overflow")
		}
		return value.MakeInt(n), nil
	case value.KindFloat:
		return value.MakeFloat(math.Abs(a.Float)), nil
	default:
		return value.Value{}, typeMismatch(c.Name, "Int or Float", a)
	}
}

func pick(c *Call, args []value.Value, want value.Ordering) (value.Value, error) {
	a, b := args[0], args[1]
	if !value.Comparable(a, b) {
		return value.Value{}, Errorf(diag.RunTypeMismatch, "%s: cannot compare %s with %s", c.Name, a.TypeName(), b.TypeName())
	}
	if value.Compare(b, a) == want {
		return b, nil
	}
	return a, nil
}

func builtinMin(c *Call, args []value.Value) (value.Value, error) {
	return pick(c, args, value.Less)
}

func builtinMax(c *Call, args []value.Value) (value.Value, error) {
	return pick(c, args, value.Greater)
}

func builtinMap(*Call, []value.Value) (value.Value, error) {
	return value.MakeMap(), nil
}

func mapArg(c *Call, v value.Value) (*value.Map, error) {
	if v.Kind != value.KindMap {
		return nil, typeMismatch(c.Name, "Map", v)
	}
	return v.AsMap(), nil
}

func keyError(c *Call, err error) error {
	return Errorf(diag.RunTypeMismatch, "%s: %v", c.Name, err)
}

func option(v value.Value, ok bool) value.Value {
	if !ok {
		return value.None()
	}
	return value.Some(v)
}

func builtinInsert(c *Call, args []value.Value) (value.Value, error) {
	m, err := mapArg(c, args[0])
	if err != nil {
		return value.Value{}, err
	}
	prev, existed, err := m.Insert(value.Copy(args[1]), value.Copy(args[2]))
	if err != nil {
		return value.Value{}, keyError(c, err)
	}
	return option(prev, existed), nil
}

// vecIndex converts an Int index for a vector of length n.
func vecIndex(c *Call, idx value.Value, n int) (int, bool, error) {
	if idx.Kind != value.KindInt {
		return 0, false, typeMismatch(c.Name, "Int index", idx)
	}
	if idx.Int < 0 || idx.Int >= int64(n) {
		return 0, false, nil
	}
	return int(idx.Int), true, nil
}

func builtinGet(c *Call, args []value.Value) (value.Value, error) {
	if args[0].Kind == value.KindVec {
		elems := args[0].AsVec().Elems
		i, ok, err := vecIndex(c, args[1], len(elems))
		if err != nil || !ok {
			return value.None(), err
		}
		return value.Some(value.Copy(elems[i])), nil
	}
	m, err := mapArg(c, args[0])
	if err != nil {
		return value.Value{}, err
	}
	v, ok, err := m.Get(args[1])
	if err != nil {
		return value.Value{}, keyError(c, err)
	}
	return option(value.Copy(v), ok), nil
}

func builtinRemove(c *Call, args []value.Value) (value.Value, error) {
	if args[0].Kind == value.KindVec {
		vec := args[0].AsVec()
		i, ok, err := vecIndex(c, args[1], len(vec.Elems))
		if err != nil {
			return value.Value{}, err
		}
		if !ok {
			return value.Value{}, Errorf(diag.RunIndexOutOfBounds, "index %d out of bounds for length %d", args[1].Int, len(vec.Elems))
		}
		v := vec.Elems[i]
		vec.Elems = append(vec.Elems[:i], vec.Elems[i+1:]...)
		return v, nil
	}
	m, err := mapArg(c, args[0])
	if err != nil {
		return value.Value{}, err
	}
	prev, ok, err := m.Remove(args[1])
	if err != nil {
		return value.Value{}, keyError(c, err)
	}
	return option(prev, ok), nil
}

func builtinContainsKey(c *Call, args []value.Value) (value.Value, error) {
	m, err := mapArg(c, args[0])
	if err != nil {
		return value.Value{}, err
	}
	_, ok, err := m.Get(args[1])
	if err != nil {
		return value.Value{}, keyError(c, err)
	}
	return value.MakeBool(ok), nil
}

func builtinKeys(c *Call, args []value.Value) (value.Value, error) {
	m, err := mapArg(c, args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.MakeVec(m.Keys()), nil
}

func builtinTypeOf(_ *Call, args []value.Value) (value.Value, error) {
	return value.MakeStr(args[0].TypeName()), nil
}
