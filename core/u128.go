package core

import (
	"fmt"

	"github.com/holiman/uint256"
)

// U128 is a 128-bit unsigned integer, the native width for balance amounts
// and Balance<Currency> payloads. It is backed by holiman/uint256.Int (the
// fixed-width integer type the surrounding example corpus standardizes on
// for chain-native amounts) restricted to its low 128 bits.
type U128 struct {
	inner uint256.Int
}

// U128FromUint64 widens a uint64 into a U128.
func U128FromUint64(v uint64) U128 {
	var u U128
	u.inner.SetUint64(v)
	return u
}

// U128FromLE16 decodes the 16-byte little-endian wire encoding used for
// balance resources (spec.md §6 "Wire encoding of balances").
func U128FromLE16(b []byte) (U128, error) {
	if len(b) != 16 {
		return U128{}, fmt.Errorf("core: balance encoding must be 16 bytes, got %d", len(b))
	}
	var be [32]byte
	for i := 0; i < 16; i++ {
		be[31-i] = b[i]
	}
	var u U128
	u.inner.SetBytes(be[:])
	return u, nil
}

// ToLE16 encodes the amount as the 16-byte little-endian wire format.
func (u U128) ToLE16() []byte {
	be := u.inner.Bytes32()
	out := make([]byte, 16)
	for i := 0; i < 16; i++ {
		out[i] = be[31-i]
	}
	return out
}

// Add returns u+other.
func (u U128) Add(other U128) U128 {
	var r U128
	r.inner.Add(&u.inner, &other.inner)
	return r
}

// Sub returns u-other; callers must check GreaterOrEqual first, as with the
// bank ledger's insufficient-funds checks.
func (u U128) Sub(other U128) U128 {
	var r U128
	r.inner.Sub(&u.inner, &other.inner)
	return r
}

// GreaterOrEqual reports whether u >= other.
func (u U128) GreaterOrEqual(other U128) bool {
	return u.inner.Cmp(&other.inner) >= 0
}

// IsZero reports whether the amount is zero.
func (u U128) IsZero() bool { return u.inner.IsZero() }

func (u U128) String() string { return u.inner.Dec() }

// MarshalJSON renders the amount as a decimal string, the representation
// host adapters and the CLI exchange it in.
func (u U128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.inner.Dec() + `"`), nil
}

// UnmarshalJSON parses the decimal string produced by MarshalJSON.
func (u *U128) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("core: U128 JSON must be a quoted decimal string, got %s", b)
	}
	return u.inner.SetFromDecimal(string(b[1 : len(b)-1]))
}
