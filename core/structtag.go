package core

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// resourceDiscriminant and moduleDiscriminant are the leading
// type-discriminant bytes access_vector places first (spec.md §4.1),
// distinguishing a resource key from a module key sharing the same address
// prefix in the byte store.
const (
	resourceDiscriminant byte = 0x01
	moduleDiscriminant   byte = 0x02
)

// StructTag identifies a resource type globally: spec.md §3.
type StructTag struct {
	Address    Address
	ModuleName Identifier
	StructName Identifier
	TypeParams []TypeTag
}

// Equal reports total equality between two StructTags.
func (t StructTag) Equal(o StructTag) bool {
	if t.Address != o.Address || t.ModuleName != o.ModuleName || t.StructName != o.StructName {
		return false
	}
	if len(t.TypeParams) != len(o.TypeParams) {
		return false
	}
	for i := range t.TypeParams {
		if !t.TypeParams[i].Equal(o.TypeParams[i]) {
			return false
		}
	}
	return true
}

// AccessVector is the canonical byte encoding of the tag, used as the byte
// store key suffix (spec.md invariant 1). It places the resource
// discriminant first and is stable across processes for equal tags.
func (t StructTag) AccessVector() []byte {
	body, err := rlp.EncodeToBytes(&t)
	if err != nil {
		// StructTag's fields are all RLP-safe (fixed arrays, strings,
		// slices of a self-describing TypeTag); a failure here means a
		// caller built the tag by hand with a nil TypeParams element,
		// which is a programming error, not a recoverable host failure.
		panic(fmt.Sprintf("core: struct tag %s is not encodable: %v", t, err))
	}
	return append([]byte{resourceDiscriminant}, body...)
}

func (t StructTag) String() string {
	return fmt.Sprintf("%s::%s::%s", t.Address, t.ModuleName, t.StructName)
}

// ModuleId identifies a published module by address and name.
type ModuleId struct {
	Address Address
	Name    Identifier
}

// Equal reports equality between two ModuleIds.
func (m ModuleId) Equal(o ModuleId) bool {
	return m.Address == o.Address && m.Name == o.Name
}

// AccessVector is the canonical byte encoding of the module id.
func (m ModuleId) AccessVector() []byte {
	body, err := rlp.EncodeToBytes(&m)
	if err != nil {
		panic(fmt.Sprintf("core: module id %s is not encodable: %v", m, err))
	}
	return append([]byte{moduleDiscriminant}, body...)
}

func (m ModuleId) String() string { return fmt.Sprintf("%s::%s", m.Address, m.Name) }
