package core

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
)

// TypeTagKind discriminates the TypeTag tagged union.
type TypeTagKind uint8

const (
	TypeTagBool TypeTagKind = iota
	TypeTagU8
	TypeTagU64
	TypeTagU128
	TypeTagAddress
	TypeTagSigner
	TypeTagVector
	TypeTagStruct
)

// TypeTag is the tagged union `Bool | U8 | U64 | U128 | Address | Signer |
// Vector(TypeTag) | Struct(StructTag)` from spec.md §3. Only one of Elem or
// Struct is populated, chosen by Kind.
type TypeTag struct {
	Kind   TypeTagKind
	Elem   *TypeTag   // populated iff Kind == TypeTagVector
	Struct *StructTag // populated iff Kind == TypeTagStruct
}

func BoolTag() TypeTag   { return TypeTag{Kind: TypeTagBool} }
func U8Tag() TypeTag     { return TypeTag{Kind: TypeTagU8} }
func U64Tag() TypeTag    { return TypeTag{Kind: TypeTagU64} }
func U128Tag() TypeTag   { return TypeTag{Kind: TypeTagU128} }
func AddressTag() TypeTag { return TypeTag{Kind: TypeTagAddress} }
func SignerTag() TypeTag  { return TypeTag{Kind: TypeTagSigner} }
func VectorTag(elem TypeTag) TypeTag {
	return TypeTag{Kind: TypeTagVector, Elem: &elem}
}
func StructTypeTag(st StructTag) TypeTag {
	return TypeTag{Kind: TypeTagStruct, Struct: &st}
}

// Equal reports deep, total equality between two TypeTags.
func (t TypeTag) Equal(o TypeTag) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TypeTagVector:
		return t.Elem.Equal(*o.Elem)
	case TypeTagStruct:
		return t.Struct.Equal(*o.Struct)
	default:
		return true
	}
}

// rlpTypeTag is the wire shape: a discriminant byte followed by the
// payload relevant to that discriminant (both fields always present so the
// encoding stays fixed-shape and therefore canonical).
type rlpTypeTag struct {
	Kind   uint8
	Elem   []byte // nested EncodeRLP output of Elem, or empty
	Struct []byte // nested EncodeRLP output of Struct, or empty
}

// EncodeRLP implements rlp.Encoder. The discriminant byte is written first
// so the canonical encoding places a type-discriminant byte first, as
// spec.md §4.1 requires of access_vector.
func (t TypeTag) EncodeRLP(w io.Writer) error {
	out := rlpTypeTag{Kind: uint8(t.Kind)}
	if t.Kind == TypeTagVector {
		b, err := rlp.EncodeToBytes(*t.Elem)
		if err != nil {
			return err
		}
		out.Elem = b
	}
	if t.Kind == TypeTagStruct {
		b, err := rlp.EncodeToBytes(*t.Struct)
		if err != nil {
			return err
		}
		out.Struct = b
	}
	return rlp.Encode(w, &out)
}

// DecodeRLP implements rlp.Decoder.
func (t *TypeTag) DecodeRLP(s *rlp.Stream) error {
	var in rlpTypeTag
	if err := s.Decode(&in); err != nil {
		return err
	}
	t.Kind = TypeTagKind(in.Kind)
	switch t.Kind {
	case TypeTagVector:
		var elem TypeTag
		if err := rlp.DecodeBytes(in.Elem, &elem); err != nil {
			return err
		}
		t.Elem = &elem
	case TypeTagStruct:
		var st StructTag
		if err := rlp.DecodeBytes(in.Struct, &st); err != nil {
			return err
		}
		t.Struct = &st
	}
	return nil
}

func (t TypeTag) String() string {
	switch t.Kind {
	case TypeTagBool:
		return "bool"
	case TypeTagU8:
		return "u8"
	case TypeTagU64:
		return "u64"
	case TypeTagU128:
		return "u128"
	case TypeTagAddress:
		return "address"
	case TypeTagSigner:
		return "signer"
	case TypeTagVector:
		return fmt.Sprintf("vector<%s>", t.Elem)
	case TypeTagStruct:
		return t.Struct.String()
	default:
		return "invalid"
	}
}
