package value

// Copy returns a deep copy of v. Structs, enums, vectors and maps are
// duplicated; Ref cells and callables stay shared.
func Copy(v Value) Value {
	switch v.Kind {
	case KindStruct:
		s := v.AsStruct()
		return MakeStruct(s.Decl, copySlice(s.Fields))
	case KindEnum:
		e := v.AsEnum()
		return MakeEnum(e.Decl, e.Variant, copySlice(e.Payload))
	case KindVec:
		return MakeVec(copySlice(v.AsVec().Elems))
	case KindMap:
		src := v.AsMap()
		dst := NewMap()
		for i := range src.Len() {
			k, val := src.Entry(i)
			_, _, _ = dst.Insert(k, Copy(val))
		}
		return Value{Kind: KindMap, Obj: dst}
	}
	return v
}

func copySlice(src []Value) []Value {
	if src == nil {
		return nil
	}
	out := make([]Value, len(src))
	for i, v := range src {
		out[i] = Copy(v)
	}
	return out
}
