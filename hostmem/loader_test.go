package hostmem

import (
	"testing"

	"github.com/synnergy-labs/resourcevm/core"
)

func TestStaticLoaderRegisterAndLookup(t *testing.T) {
	loader := NewStaticLoader()
	def := core.StructDef{
		Address:    core.CoreCodeAddress,
		ModuleName: core.CurrencyModuleName,
		StructName: core.CoinStructName,
		Fields:     []core.Type{{Kind: core.KindU128}},
	}
	idx := loader.Register(def)

	got, err := loader.StructAt(idx)
	if err != nil {
		t.Fatal(err)
	}
	if got.StructName != def.StructName {
		t.Fatalf("got %+v", got)
	}

	tag := core.StructTag{Address: core.CoreCodeAddress, ModuleName: core.CurrencyModuleName, StructName: core.CoinStructName}
	foundIdx, ok := loader.StructTagToIndex(tag)
	if !ok || foundIdx != idx {
		t.Fatalf("want idx %d, got %d ok=%v", idx, foundIdx, ok)
	}
}

func TestStaticLoaderReRegisterUpdatesSameIndex(t *testing.T) {
	loader := NewStaticLoader()
	def := core.StructDef{ModuleName: core.MustIdentifier("M"), StructName: core.MustIdentifier("S")}
	idx1 := loader.Register(def)

	updated := def
	updated.Fields = []core.Type{{Kind: core.KindBool}}
	idx2 := loader.Register(updated)

	if idx1 != idx2 {
		t.Fatalf("expected same index on re-register, got %d vs %d", idx1, idx2)
	}
	got, _ := loader.StructAt(idx1)
	if len(got.Fields) != 1 {
		t.Fatalf("expected updated def to take effect, got %+v", got)
	}
}

func TestStaticLoaderUnknownIndexErrors(t *testing.T) {
	loader := NewStaticLoader()
	if _, err := loader.StructAt(99); err == nil {
		t.Fatal("expected error for unregistered index")
	}
	if _, ok := loader.StructTagToIndex(core.StructTag{ModuleName: core.MustIdentifier("X"), StructName: core.MustIdentifier("Y")}); ok {
		t.Fatal("expected not-found for unregistered tag")
	}
}
