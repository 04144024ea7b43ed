package vm

import "github.com/synnergy-labs/resourcevm/core"

// ModuleTx is a publish_module request (spec.md §6).
type ModuleTx struct {
	Blob   []byte
	Sender core.Address
}

// ScriptTx is an execute_script request (spec.md §6).
type ScriptTx struct {
	Blob     []byte
	Args     [][]byte
	TypeArgs []core.TypeTag
	Senders  []core.Address
	TxInfo   *TxInfo
}

// TxInfo mirrors storage.TxInfo without importing storage from the public
// API surface, keeping Vm's signature self-contained.
type TxInfo struct {
	Timestamp   uint64
	BlockHeight uint64
}

// StatusCode mirrors core.StatusCode plus the one success value this
// package's public result type needs.
type StatusCode int

const (
	StatusExecuted StatusCode = iota
	StatusInternalTypeError
	StatusUnknownInvariantViolation
	StatusLinkerError
	StatusModuleAddressMismatch
	StatusOutOfGas
	StatusHostError
)

func fromCoreStatus(s core.StatusCode) StatusCode {
	switch s {
	case core.StatusInternalTypeError:
		return StatusInternalTypeError
	case core.StatusUnknownInvariantViolation:
		return StatusUnknownInvariantViolation
	case core.StatusLinkerError:
		return StatusLinkerError
	case core.StatusModuleAddressMismatch:
		return StatusModuleAddressMismatch
	case core.StatusOutOfGas:
		return StatusOutOfGas
	case core.StatusHostError:
		return StatusHostError
	default:
		return StatusHostError
	}
}

// VmResult is what publish_module/execute_script return to the host
// (spec.md §6).
type VmResult struct {
	StatusCode StatusCode
	GasUsed    uint64
}
