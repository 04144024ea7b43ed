package core

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// AddressLength is the width of an on-chain account identifier. The original
// implementation this module is adapted from uses a 16-byte address. Wider
// addresses are not representable: AddressFromBytes rejects inputs longer
// than AddressLength and left-pads shorter ones, and Address participates
// in byte-exact equality (spec.md Address).
const AddressLength = 16

// Address is an opaque account identifier with total ordering and
// byte-exact equality.
type Address [AddressLength]byte

// AddressZero is the sentinel zero-value address, used as a scratch
// value by callers that need a well-known placeholder account.
var AddressZero = Address{}

// CoreCodeAddress is the well-known address the bank and chain-context
// resolvers recognise system resources under (balances, timestamp, block
// height). It mirrors the original implementation's CORE_CODE_ADDRESS.
var CoreCodeAddress = Address{0: 0x1}

// AddressFromBytes copies b into an Address, left-padding with zeroes if
// shorter than AddressLength and erroring if longer.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) > AddressLength {
		return a, fmt.Errorf("core: address %x exceeds %d bytes", b, AddressLength)
	}
	copy(a[AddressLength-len(b):], b)
	return a, nil
}

// Bytes returns the raw bytes of the address.
func (a Address) Bytes() []byte { return a[:] }

// String renders the address as a 0x-prefixed hex string.
func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

// Compare implements total ordering: -1, 0, or 1.
func (a Address) Compare(other Address) int { return bytes.Compare(a[:], other[:]) }

// Equal reports byte-exact equality.
func (a Address) Equal(other Address) bool { return a == other }
