package hostmem

import (
	"encoding/json"
	"fmt"

	"github.com/synnergy-labs/resourcevm/core"
)

// moduleBlob and scriptBlob are the wire shapes this stand-in interpreter
// accepts in place of real bytecode (core/interpreter.go: "a host wires in
// its real interpreter; hostmem ships a minimal stand-in sufficient for
// tests"). A script declares its write set directly rather than computing
// it, since deriving effects from bytecode is the excluded interpreter's job
// (spec.md §1 "Out of scope").
type moduleBlob struct {
	SelfAddress core.Address    `json:"self_address"`
	Name        core.Identifier `json:"name"`
}

type scriptBlob struct {
	Resources []scriptResourceEffect `json:"resources"`
	Events    []scriptEventEffect    `json:"events"`
}

type scriptResourceEffect struct {
	Address core.Address    `json:"address"`
	Tag     core.StructTag  `json:"tag"`
	Layout  core.Layout     `json:"layout"`
	Type    core.Type       `json:"type"`
	Value   *core.Value     `json:"value,omitempty"`
}

type scriptEventEffect struct {
	GUID   []byte      `json:"guid"`
	Seq    uint64      `json:"seq"`
	Tag    core.TypeTag `json:"tag"`
	Layout core.Layout `json:"layout"`
	Value  core.Value  `json:"value"`
}

// StubInterpreter is a minimal core.Interpreter: modules declare their own
// self-address and name (vm.Vm.PublishModule checks that self-address
// against the sender), and scripts declare their write set as data instead
// of producing it from bytecode execution.
type StubInterpreter struct{}

// NewStubInterpreter builds a StubInterpreter.
func NewStubInterpreter() *StubInterpreter { return &StubInterpreter{} }

// PublishModule decodes blob as a moduleBlob and charges the cost table's
// price for one OpCall per call.
func (StubInterpreter) PublishModule(blob []byte, sender core.Address, meter *core.GasMeter, reader core.ResourceReader) (core.ModuleId, error) {
	var m moduleBlob
	if err := json.Unmarshal(blob, &m); err != nil {
		return core.ModuleId{}, core.NewVMError(core.StatusUnknownInvariantViolation, fmt.Sprintf("malformed module blob: %v", err))
	}
	if err := meter.ChargeOpcode(core.OpCall, nil); err != nil {
		return core.ModuleId{}, err
	}
	return core.ModuleId{Address: m.SelfAddress, Name: m.Name}, nil
}

// ExecuteScript decodes blob as a scriptBlob and returns its declared write
// set verbatim, charging one opcode unit per resource/event effect.
func (StubInterpreter) ExecuteScript(blob []byte, args [][]byte, typeArgs []core.TypeTag, senders []core.Address, meter *core.GasMeter, reader core.ResourceReader) (core.TransactionEffects, error) {
	var s scriptBlob
	if err := json.Unmarshal(blob, &s); err != nil {
		return core.TransactionEffects{}, core.NewVMError(core.StatusUnknownInvariantViolation, fmt.Sprintf("malformed script blob: %v", err))
	}

	var effects core.TransactionEffects
	for _, r := range s.Resources {
		if err := meter.ChargeOpcode(core.OpWriteResource, nil); err != nil {
			return core.TransactionEffects{}, err
		}
		effects.Resources = append(effects.Resources, core.ResourceEffect{
			Address: r.Address, Tag: r.Tag, Layout: r.Layout, Type: r.Type, Value: r.Value,
		})
	}
	for _, e := range s.Events {
		if err := meter.ChargeOpcode(core.OpEmitEvent, nil); err != nil {
			return core.TransactionEffects{}, err
		}
		effects.Events = append(effects.Events, core.EventEffect{
			GUID: e.GUID, Seq: e.Seq, Tag: e.Tag, Layout: e.Layout, Value: e.Value,
		})
	}
	return effects, nil
}
