package core

// ResourceReader is what the bytecode interpreter needs from a Session:
// on-demand module/resource reads (spec.md §6). storage.Session already
// satisfies this structurally.
type ResourceReader interface {
	GetModule(id ModuleId) ([]byte, error)
	GetResource(address Address, tag StructTag) ([]byte, error)
}

// ResourceEffect is one collected resource write or delete: Value == nil
// means delete (spec.md §4.5's delete_resource/insert_resource split).
type ResourceEffect struct {
	Address Address
	Tag     StructTag
	Layout  Layout
	Type    Type
	Value   *Value
}

// ModuleEffect is one published module blob.
type ModuleEffect struct {
	ID   ModuleId
	Blob []byte
}

// EventEffect is one emitted event, not yet serialized.
type EventEffect struct {
	GUID   []byte
	Seq    uint64
	Tag    TypeTag
	Layout Layout
	Value  Value
}

// TransactionEffects is the write set the interpreter hands back after
// running a script or a module publish (spec.md §1, §6). Effects within
// one commit are applied in the order the interpreter produced them
// (spec.md §5 "Ordering"): resources first, then modules, then events.
type TransactionEffects struct {
	Resources []ResourceEffect
	Modules   []ModuleEffect
	Events    []EventEffect
}

// Interpreter is the excluded bytecode interpreter's contract with this
// module (spec.md §1 "Out of scope"). A host wires in its real
// interpreter; hostmem ships a minimal stand-in sufficient for tests.
type Interpreter interface {
	// PublishModule deserializes and verifies blob, charging gas via
	// meter, returning the module id it declares as self-id.
	PublishModule(blob []byte, sender Address, meter *GasMeter, reader ResourceReader) (ModuleId, error)

	// ExecuteScript runs blob against cache, charging gas via meter, and
	// returns the resulting write set.
	ExecuteScript(blob []byte, args [][]byte, typeArgs []TypeTag, senders []Address, meter *GasMeter, reader ResourceReader) (TransactionEffects, error)
}
