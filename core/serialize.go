package core

import "github.com/ethereum/go-ethereum/rlp"

// wireValue is the canonical on-the-wire shape for a Value, validated
// against a Layout before encoding. Using a fixed recursive RLP shape here
// mirrors how StructTag/TypeTag canonicalize (core/structtag.go,
// core/typetag.go): one codec for every resource blob and event message
// the session ever writes.
type wireValue struct {
	Kind     uint8
	U128     []byte
	Children []wireValue
}

func toWire(v Value) wireValue {
	w := wireValue{Kind: uint8(v.Kind)}
	switch v.Kind {
	case ValU128:
		w.U128 = v.U128.ToLE16()
	case ValStruct:
		w.Children = make([]wireValue, len(v.Fields))
		for i, f := range v.Fields {
			w.Children[i] = toWire(f)
		}
	case ValVector:
		w.Children = make([]wireValue, len(v.Elems))
		for i, e := range v.Elems {
			w.Children[i] = toWire(e)
		}
	}
	return w
}

func fromWire(w wireValue) Value {
	v := Value{Kind: ValueKind(w.Kind)}
	switch v.Kind {
	case ValU128:
		u, _ := U128FromLE16(w.U128)
		v.U128 = u
	case ValStruct:
		v.Fields = make([]Value, len(w.Children))
		for i, c := range w.Children {
			v.Fields[i] = fromWire(c)
		}
	case ValVector:
		v.Elems = make([]Value, len(w.Children))
		for i, c := range w.Children {
			v.Elems[i] = fromWire(c)
		}
	}
	return v
}

// shapeMatches reports whether v's shape is consistent with layout, field
// for field, element for element.
func shapeMatches(v Value, layout Layout) bool {
	if v.Kind != layout.Kind {
		return false
	}
	switch v.Kind {
	case ValStruct:
		if len(v.Fields) != len(layout.Fields) {
			return false
		}
		for i, f := range v.Fields {
			if !shapeMatches(f, layout.Fields[i]) {
				return false
			}
		}
	case ValVector:
		if layout.Elem == nil {
			return false
		}
		for _, e := range v.Elems {
			if !shapeMatches(e, *layout.Elem) {
				return false
			}
		}
	}
	return true
}

// SerializeValue serializes value against layout to bytes (spec.md §4.2,
// §4.5). A shape mismatch is an InvariantViolation, never a panic: it
// means the interpreter handed the session a value that does not match
// its own declared layout, which is a host/interpreter bug, not ours to
// silently tolerate.
func SerializeValue(value Value, layout Layout) ([]byte, error) {
	if !shapeMatches(value, layout) {
		return nil, NewVMError(StatusUnknownInvariantViolation, "value shape does not match layout")
	}
	b, err := rlp.EncodeToBytes(toWire(value))
	if err != nil {
		return nil, NewVMError(StatusUnknownInvariantViolation, "rlp encode failed")
	}
	return b, nil
}

// DeserializeValue is SerializeValue's inverse, used by tests and by hosts
// reading resource blobs back out of the byte store.
func DeserializeValue(blob []byte, layout Layout) (Value, error) {
	var w wireValue
	if err := rlp.DecodeBytes(blob, &w); err != nil {
		return Value{}, NewVMError(StatusUnknownInvariantViolation, "rlp decode failed")
	}
	v := fromWire(w)
	if !shapeMatches(v, layout) {
		return Value{}, NewVMError(StatusUnknownInvariantViolation, "decoded value shape does not match layout")
	}
	return v, nil
}
