package hostmem

import (
	"encoding/json"
	"testing"

	"github.com/synnergy-labs/resourcevm/core"
)

func TestStubInterpreterPublishModuleChargesAndDeclaresSelfAddress(t *testing.T) {
	table := core.DefaultCostTable()
	meter := core.NewGasMeter(table, 1_000_000)
	sender, _ := core.AddressFromBytes([]byte{0x09})

	blob, _ := json.Marshal(struct {
		SelfAddress core.Address    `json:"self_address"`
		Name        core.Identifier `json:"name"`
	}{SelfAddress: sender, Name: core.MustIdentifier("Mod")})

	interp := NewStubInterpreter()
	id, err := interp.PublishModule(blob, sender, meter, nil)
	if err != nil {
		t.Fatal(err)
	}
	if id.Address != sender || id.Name.String() != "Mod" {
		t.Fatalf("got %+v", id)
	}
	if meter.Used() == 0 {
		t.Fatal("expected nonzero gas charged")
	}
}

func TestStubInterpreterPublishModuleRejectsMalformedBlob(t *testing.T) {
	meter := core.NewGasMeter(core.DefaultCostTable(), 1_000_000)
	sender, _ := core.AddressFromBytes([]byte{0x01})

	interp := NewStubInterpreter()
	if _, err := interp.PublishModule([]byte("not json"), sender, meter, nil); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestStubInterpreterExecuteScriptChargesPerEffect(t *testing.T) {
	meter := core.NewGasMeter(core.DefaultCostTable(), 1_000_000)
	addr, _ := core.AddressFromBytes([]byte{0x02})
	value := core.U128Value(core.U128FromUint64(1))

	blob, _ := json.Marshal(struct {
		Resources []struct {
			Address core.Address   `json:"address"`
			Tag     core.StructTag `json:"tag"`
			Layout  core.Layout    `json:"layout"`
			Type    core.Type      `json:"type"`
			Value   *core.Value    `json:"value,omitempty"`
		} `json:"resources"`
	}{Resources: []struct {
		Address core.Address   `json:"address"`
		Tag     core.StructTag `json:"tag"`
		Layout  core.Layout    `json:"layout"`
		Type    core.Type      `json:"type"`
		Value   *core.Value    `json:"value,omitempty"`
	}{{Address: addr, Tag: core.StructTag{ModuleName: core.MustIdentifier("M"), StructName: core.MustIdentifier("S")}, Layout: core.Layout{Kind: core.ValU128}, Type: core.Type{Kind: core.KindU128}, Value: &value}}})

	interp := NewStubInterpreter()
	effects, err := interp.ExecuteScript(blob, nil, nil, nil, meter, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(effects.Resources) != 1 {
		t.Fatalf("got %+v", effects)
	}
	if meter.Used() == 0 {
		t.Fatal("expected nonzero gas charged")
	}
}
