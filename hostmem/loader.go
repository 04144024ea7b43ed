package hostmem

import (
	"fmt"

	"github.com/synnergy-labs/resourcevm/core"
)

// structKey identifies a struct definition's non-generic identity: address,
// module, and name, independent of any type-parameter instantiation.
type structKey struct {
	addr   core.Address
	module core.Identifier
	name   core.Identifier
}

func keyOf(addr core.Address, module, name core.Identifier) structKey {
	return structKey{addr: addr, module: module, name: name}
}

// StaticLoader is a fixed, pre-registered core.Loader, standing in for the
// excluded bytecode loader (spec.md §1). A host or test registers every
// struct definition it publishes up front; lookups never mutate state after
// that, matching the walker's read-only expectations.
type StaticLoader struct {
	byIndex map[core.StructIndex]*core.StructDef
	byKey   map[structKey]core.StructIndex
	next    core.StructIndex
}

// NewStaticLoader builds an empty loader.
func NewStaticLoader() *StaticLoader {
	return &StaticLoader{
		byIndex: make(map[core.StructIndex]*core.StructDef),
		byKey:   make(map[structKey]core.StructIndex),
	}
}

// Register interns def, returning the StructIndex callers should use when
// building core.Type values (KindStruct/KindStructInstantiation) that
// reference it.
func (l *StaticLoader) Register(def core.StructDef) core.StructIndex {
	k := keyOf(def.Address, def.ModuleName, def.StructName)
	if idx, ok := l.byKey[k]; ok {
		stored := def
		l.byIndex[idx] = &stored
		return idx
	}
	idx := l.next
	l.next++
	stored := def
	l.byIndex[idx] = &stored
	l.byKey[k] = idx
	return idx
}

// StructAt implements core.Loader.
func (l *StaticLoader) StructAt(idx core.StructIndex) (*core.StructDef, error) {
	def, ok := l.byIndex[idx]
	if !ok {
		return nil, fmt.Errorf("hostmem: no struct registered at index %d", idx)
	}
	return def, nil
}

// StructTagToIndex implements core.Loader, matching on the tag's non-generic
// identity (spec.md §4.4's TyParam rule resolves a TyParam's outer tag
// this way).
func (l *StaticLoader) StructTagToIndex(tag core.StructTag) (core.StructIndex, bool) {
	idx, ok := l.byKey[keyOf(tag.Address, tag.ModuleName, tag.StructName)]
	return idx, ok
}
