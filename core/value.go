package core

// This file defines the minimal loaded-type and runtime-value model the
// type walker (bank.TypeWalker) and balance handler need. The real
// bytecode loader and interpreter are external collaborators (spec.md §1
// "Out of scope"); Loader, Type, and Value are the Go interfaces/shapes a
// host's real loader and interpreter must bridge into, and hostmem ships a
// minimal static implementation sufficient for tests.

// StructIndex is an opaque handle a Loader uses to identify a struct
// definition, analogous to the bytecode loader's interned struct handles.
type StructIndex int

// TypeKind discriminates the Type tagged union a Loader exposes to the
// type walker.
type TypeKind uint8

const (
	KindBool TypeKind = iota
	KindU8
	KindU64
	KindU128
	KindAddress
	KindSigner
	KindVector
	KindStruct
	KindStructInstantiation
	KindTyParam
	KindReference
	KindMutableReference
)

// Type is a loaded type as the walker sees it: a struct's field, possibly
// generic, possibly a reference. Only the fields relevant to Kind are
// populated.
type Type struct {
	Kind      TypeKind
	Elem      *Type  // Vector, Reference, MutableReference
	StructIdx StructIndex // Struct, StructInstantiation
	TyArgs    []Type // StructInstantiation
	ParamIdx  int    // TyParam
}

// StructDef is a loaded struct definition: the identity the walker checks
// against the well-known currency coin struct, plus its fields in
// declaration order (field index = position in Fields).
type StructDef struct {
	Address    Address
	ModuleName Identifier
	StructName Identifier
	Fields     []Type
}

// Loader resolves StructIndex handles to definitions and StructTags to the
// loader's interned index for them. It stands in for the excluded bytecode
// loader (spec.md §1).
type Loader interface {
	StructAt(idx StructIndex) (*StructDef, error)
	StructTagToIndex(tag StructTag) (StructIndex, bool)
}

// ValueKind discriminates the runtime Value tagged union.
type ValueKind uint8

const (
	ValU128 ValueKind = iota
	ValStruct
	ValVector
	ValOther // bool / u8 / u64 / address / signer: yields a type error if a path addresses into it
)

// Value is a runtime resource value as seen during commit, simplified from
// the interpreter's container-based representation (Locals/VecR/VecC/
// StructR/StructC) down to the two shapes the balance walk actually needs:
// an ordered field list (struct) or an ordered element list (vector),
// terminating in a U128 leaf.
type Value struct {
	Kind   ValueKind
	U128   U128
	Fields []Value // ValStruct: field i at Fields[i]
	Elems  []Value // ValVector: homogeneous elements
}

// StructValue constructs a struct-shaped Value from ordered fields.
func StructValue(fields ...Value) Value { return Value{Kind: ValStruct, Fields: fields} }

// VectorValue constructs a vector-shaped Value from ordered elements.
func VectorValue(elems ...Value) Value { return Value{Kind: ValVector, Elems: elems} }

// U128Value constructs a leaf U128 Value.
func U128Value(v U128) Value { return Value{Kind: ValU128, U128: v} }
