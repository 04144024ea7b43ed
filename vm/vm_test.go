package vm

import (
	"encoding/json"
	"testing"

	"github.com/synnergy-labs/resourcevm/core"
	"github.com/synnergy-labs/resourcevm/hostmem"
)

func newTestVm(t *testing.T) (*Vm, *hostmem.MemStore) {
	t.Helper()
	store := hostmem.NewMemStore()
	if err := store.SeedGasSchedule(core.DefaultCostTable()); err != nil {
		t.Fatal(err)
	}
	machine, err := New(store, hostmem.NewEventLog(), hostmem.NewLedger(), hostmem.NewStubInterpreter(), hostmem.NewStaticLoader(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return machine, store
}

func testAddr(b byte) core.Address {
	a, _ := core.AddressFromBytes([]byte{b})
	return a
}

func TestNewFailsWithoutGasSchedule(t *testing.T) {
	store := hostmem.NewMemStore()
	if _, err := New(store, hostmem.NewEventLog(), hostmem.NewLedger(), hostmem.NewStubInterpreter(), hostmem.NewStaticLoader(), nil); err == nil {
		t.Fatal("expected error when no gas schedule is seeded")
	}
}

func moduleBlobFor(selfAddress core.Address, name string) []byte {
	blob, _ := json.Marshal(struct {
		SelfAddress core.Address    `json:"self_address"`
		Name        core.Identifier `json:"name"`
	}{SelfAddress: selfAddress, Name: core.MustIdentifier(name)})
	return blob
}

func TestPublishModuleSucceedsWhenSelfAddressMatchesSender(t *testing.T) {
	machine, _ := newTestVm(t)
	sender := testAddr(0x01)
	blob := moduleBlobFor(sender, "Example")

	res := machine.PublishModule(core.Gas{MaxGasAmount: 100_000}, ModuleTx{Blob: blob, Sender: sender})
	if res.StatusCode != StatusExecuted {
		t.Fatalf("want StatusExecuted, got %v", res.StatusCode)
	}
	if res.GasUsed == 0 {
		t.Fatal("expected nonzero gas used")
	}
}

func TestPublishModuleRejectsSelfAddressMismatch(t *testing.T) {
	machine, _ := newTestVm(t)
	blob := moduleBlobFor(testAddr(0x01), "Example")

	res := machine.PublishModule(core.Gas{MaxGasAmount: 100_000}, ModuleTx{Blob: blob, Sender: testAddr(0x02)})
	if res.StatusCode != StatusModuleAddressMismatch {
		t.Fatalf("want StatusModuleAddressMismatch, got %v", res.StatusCode)
	}
}

func TestPublishModuleRunsOutOfGas(t *testing.T) {
	machine, _ := newTestVm(t)
	blob := moduleBlobFor(testAddr(0x01), "Example")

	res := machine.PublishModule(core.Gas{MaxGasAmount: 0}, ModuleTx{Blob: blob, Sender: testAddr(0x01)})
	if res.StatusCode != StatusOutOfGas {
		t.Fatalf("want StatusOutOfGas, got %v", res.StatusCode)
	}
}

func TestExecuteScriptAppliesResourceAndEventEffects(t *testing.T) {
	machine, store := newTestVm(t)
	addr := testAddr(0x05)
	tag := core.StructTag{ModuleName: core.MustIdentifier("M"), StructName: core.MustIdentifier("Widget")}

	script := struct {
		Resources []struct {
			Address core.Address   `json:"address"`
			Tag     core.StructTag `json:"tag"`
			Layout  core.Layout    `json:"layout"`
			Type    core.Type      `json:"type"`
			Value   *core.Value    `json:"value,omitempty"`
		} `json:"resources"`
		Events []struct {
			GUID   []byte       `json:"guid"`
			Seq    uint64       `json:"seq"`
			Tag    core.TypeTag `json:"tag"`
			Layout core.Layout  `json:"layout"`
			Value  core.Value   `json:"value"`
		} `json:"events"`
	}{}
	value := core.U128Value(core.U128FromUint64(12345))
	script.Resources = append(script.Resources, struct {
		Address core.Address   `json:"address"`
		Tag     core.StructTag `json:"tag"`
		Layout  core.Layout    `json:"layout"`
		Type    core.Type      `json:"type"`
		Value   *core.Value    `json:"value,omitempty"`
	}{Address: addr, Tag: tag, Layout: core.Layout{Kind: core.ValU128}, Type: core.Type{Kind: core.KindU128}, Value: &value})

	blob, err := json.Marshal(script)
	if err != nil {
		t.Fatal(err)
	}

	res := machine.ExecuteScript(core.Gas{MaxGasAmount: 1_000_000}, ScriptTx{Blob: blob})
	if res.StatusCode != StatusExecuted {
		t.Fatalf("want StatusExecuted, got %v", res.StatusCode)
	}

	session := machine.Session(nil)
	got, err := session.GetResource(addr, tag)
	if err != nil || got == nil {
		t.Fatalf("expected resource to be persisted, got %v err=%v", got, err)
	}
	decoded, err := core.DeserializeValue(got, core.Layout{Kind: core.ValU128})
	if err != nil {
		t.Fatal(err)
	}
	if decoded.U128.String() != "12345" {
		t.Fatalf("got %s", decoded.U128)
	}
	_ = store
}

func TestClearIsSafeWithEmptyHandlerCache(t *testing.T) {
	machine, _ := newTestVm(t)
	// Clear must be safe to call even with an empty cache.
	machine.Clear()
}
