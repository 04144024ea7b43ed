package storage

import "github.com/synnergy-labs/resourcevm/core"

// TxInfo is the optional per-session chain context (spec.md §3).
type TxInfo struct {
	Timestamp   uint64
	BlockHeight uint64
}

// NewTxInfo constructs a TxInfo.
func NewTxInfo(timestamp, blockHeight uint64) TxInfo {
	return TxInfo{Timestamp: timestamp, BlockHeight: blockHeight}
}

// ExecutionContext resolves the synthetic chain resources (timestamp,
// block height) at the well-known core address (spec.md §4.5 step 1).
// info is nil for a session with no chain context.
type ExecutionContext struct {
	info *TxInfo
}

// NewExecutionContext builds a context; info may be nil.
func NewExecutionContext(info *TxInfo) *ExecutionContext {
	return &ExecutionContext{info: info}
}

// Resolve implements core.Resolver.
func (c *ExecutionContext) Resolve(address core.Address, tag core.StructTag) core.ResolverResult {
	if address != core.CoreCodeAddress {
		return core.Unresolved()
	}
	switch {
	case tag.Equal(core.TimestampTag):
		return c.resolveField(func(info TxInfo) uint64 { return info.Timestamp })
	case tag.Equal(core.BlockTag):
		return c.resolveField(func(info TxInfo) uint64 { return info.BlockHeight })
	default:
		return core.Unresolved()
	}
}

func (c *ExecutionContext) resolveField(field func(TxInfo) uint64) core.ResolverResult {
	if c.info == nil {
		return core.ResolvedAbsent()
	}
	return core.ResolvedValue(le8(field(*c.info)))
}

func le8(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}
