package core

// Account is a per-(ticker, address) bank balance record (spec.md §3).
type Account struct {
	Amount     U128
	IsLockable bool
}

// ByteStore is the host-provided raw key/value store (spec.md §6, C1's
// collaborator). Keys are raw bytes; the core owns the encoding
// (AccessPath.Key).
type ByteStore interface {
	Get(key []byte) ([]byte, error)
	Insert(key []byte, value []byte) error
	Remove(key []byte) error
}

// EventHandler is the host callback invoked once per emitted event,
// already serialized to bytes (spec.md §6, C2's collaborator).
type EventHandler interface {
	OnEvent(guid []byte, seq uint64, tag TypeTag, message []byte) error
}

// Balances is the host-provided fungible-ledger capability (spec.md §4.3,
// §6). Locking a non-lockable account is a fatal error to attempt.
type Balances interface {
	GetBalance(ticker string, addr Address) (*Account, error)
	Transfer(ticker string, from, to Address, amount U128) error
	Lock(ticker string, addr Address, amount U128) error
	Unlock(ticker string, addr Address, amount U128) error
}

// Layout describes how to serialize/deserialize a Value; it stands in for
// the interpreter's MoveTypeLayout (an external collaborator). The
// reference codec (SerializeValue/DeserializeValue) only needs to know a value's shape to walk it
// symmetrically with Value itself.
type Layout struct {
	Kind     ValueKind
	Elem     *Layout // ValVector
	Fields   []Layout // ValStruct
}
