package core

import "fmt"

// StatusCode enumerates the recoverable error kinds from spec.md §7.
// NotFound is deliberately absent: it is not an error, it surfaces as a
// bare (nil, nil) in this module's Go API.
type StatusCode int

const (
	StatusUnknown StatusCode = iota
	// StatusInternalTypeError is INTERNAL_TYPE_ERROR: a balance tag or
	// walked value shape inconsistent with a balance.
	StatusInternalTypeError
	// StatusUnknownInvariantViolation is UNKNOWN_INVARIANT_VIOLATION_ERROR:
	// value/layout serialization failed unexpectedly.
	StatusUnknownInvariantViolation
	// StatusLinkerError is LinkerError: a required module is absent.
	StatusLinkerError
	// StatusModuleAddressMismatch is publish_module with self-address !=
	// sender.
	StatusModuleAddressMismatch
	// StatusOutOfGas is OutOfGas: gas charge exceeds remaining.
	StatusOutOfGas
	// StatusHostError wraps a failure signaled by a host trait
	// implementation (ByteStore, EventHandler, Balances).
	StatusHostError
)

func (s StatusCode) String() string {
	switch s {
	case StatusInternalTypeError:
		return "INTERNAL_TYPE_ERROR"
	case StatusUnknownInvariantViolation:
		return "UNKNOWN_INVARIANT_VIOLATION_ERROR"
	case StatusLinkerError:
		return "LINKER_ERROR"
	case StatusModuleAddressMismatch:
		return "MODULE_ADDRESS_DOES_NOT_MATCH_SENDER"
	case StatusOutOfGas:
		return "OUT_OF_GAS"
	case StatusHostError:
		return "HOST_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Location pins an error to either no particular module (Undefined) or a
// specific one.
type Location struct {
	Module *ModuleId
}

// UndefinedLocation is returned by errors with no specific module context.
var UndefinedLocation = Location{}

// ModuleLocation builds a Location pinned to id.
func ModuleLocation(id ModuleId) Location { return Location{Module: &id} }

func (l Location) String() string {
	if l.Module == nil {
		return "undefined"
	}
	return l.Module.String()
}

// VMError is the structured error surfaced by the bank, walker, and
// session to the interpreter, and ultimately to the host as a status code
// (spec.md §7). It is never produced by a programming-invariant breach —
// those panic instead.
type VMError struct {
	Status   StatusCode
	Location Location
	Message  string
	Cause    error
}

func (e *VMError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at %s: %s: %v", e.Status, e.Location, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s at %s: %s", e.Status, e.Location, e.Message)
}

func (e *VMError) Unwrap() error { return e.Cause }

// NewVMError builds a VMError with no specific module location.
func NewVMError(status StatusCode, message string) *VMError {
	return &VMError{Status: status, Location: UndefinedLocation, Message: message}
}

// NewVMErrorAt builds a VMError pinned to loc.
func NewVMErrorAt(status StatusCode, loc Location, message string) *VMError {
	return &VMError{Status: status, Location: loc, Message: message}
}

// WrapHostError surfaces a host adapter failure verbatim as a StatusHostError
// VMError (spec.md §7 "Host-propagated").
func WrapHostError(cause error) *VMError {
	return &VMError{Status: StatusHostError, Location: UndefinedLocation, Message: "host adapter failure", Cause: cause}
}
