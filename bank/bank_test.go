package bank

import (
	"testing"

	"github.com/synnergy-labs/resourcevm/core"
)

// fakeLoader is a minimal core.Loader backed by a fixed map of struct
// definitions; an empty map serves balance-only scenarios.
type fakeLoader struct {
	defs map[core.StructIndex]*core.StructDef
}

func (f *fakeLoader) StructAt(idx core.StructIndex) (*core.StructDef, error) {
	def, ok := f.defs[idx]
	if !ok {
		return nil, core.NewVMError(core.StatusLinkerError, "unknown struct index")
	}
	return def, nil
}

func (f *fakeLoader) StructTagToIndex(tag core.StructTag) (core.StructIndex, bool) {
	for idx, def := range f.defs {
		if def.ModuleName == tag.ModuleName && def.StructName == tag.StructName {
			return idx, true
		}
	}
	return 0, false
}

// fakeBalances is an in-memory core.Balances used only by bank package
// tests; hostmem ships the production-grade equivalent.
type fakeBalances struct {
	accounts map[core.Address]map[string]core.Account
	locked   []Balance
}

func newFakeBalances() *fakeBalances {
	return &fakeBalances{accounts: make(map[core.Address]map[string]core.Account)}
}

func (f *fakeBalances) set(addr core.Address, ticker string, amount uint64, lockable bool) {
	if f.accounts[addr] == nil {
		f.accounts[addr] = make(map[string]core.Account)
	}
	f.accounts[addr][ticker] = core.Account{Amount: core.U128FromUint64(amount), IsLockable: lockable}
}

func (f *fakeBalances) GetBalance(ticker string, addr core.Address) (*core.Account, error) {
	byTicker, ok := f.accounts[addr]
	if !ok {
		return nil, nil
	}
	acc, ok := byTicker[ticker]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

func (f *fakeBalances) Transfer(ticker string, from, to core.Address, amount core.U128) error {
	return nil
}

func (f *fakeBalances) Lock(ticker string, addr core.Address, amount core.U128) error {
	f.locked = append(f.locked, Balance{Ticker: ticker, Amount: amount, Locked: true})
	return nil
}

func (f *fakeBalances) Unlock(ticker string, addr core.Address, amount core.U128) error { return nil }

func addr(b byte) core.Address {
	a, _ := core.AddressFromBytes([]byte{b})
	return a
}

func balanceTag(ticker string) core.StructTag {
	return core.StructTag{
		Address:    core.CoreCodeAddress,
		ModuleName: core.AccountModuleName,
		StructName: core.BalanceStructName,
		TypeParams: []core.TypeTag{
			core.StructTypeTag(core.StructTag{
				Address:    core.CoreCodeAddress,
				ModuleName: core.CurrencyModuleName,
				StructName: core.MustIdentifier(ticker),
			}),
		},
	}
}

func TestLoadBalance(t *testing.T) {
	host := newFakeBalances()
	host.set(addr(0x22), "USD", 1313, true)

	b := New(host, nil)
	session := b.NewSession(&fakeLoader{})

	res := session.Resolve(addr(0x22), balanceTag("USD"))
	if !res.Resolved || res.Err != nil {
		t.Fatalf("want resolved, got %+v", res)
	}
	got, err := core.U128FromLE16(res.Value)
	if err != nil || got.String() != "1313" {
		t.Fatalf("want 1313, got %v err=%v", got, err)
	}

	res = session.Resolve(addr(0x21), balanceTag("USD"))
	if !res.Resolved || res.Value != nil || res.Err != nil {
		t.Fatalf("want resolved-absent, got %+v", res)
	}

	res = session.Resolve(addr(0x22), balanceTag("BTC"))
	if !res.Resolved || res.Value != nil {
		t.Fatalf("want resolved-absent for BTC, got %+v", res)
	}

	malformed := core.StructTag{
		Address:    core.CoreCodeAddress,
		ModuleName: core.AccountModuleName,
		StructName: core.BalanceStructName,
		TypeParams: []core.TypeTag{core.U8Tag()},
	}
	res = session.Resolve(addr(0x22), malformed)
	if res.Resolved {
		t.Fatalf("want unresolved for malformed balance tag, got %+v", res)
	}
}

func TestHandlerCacheIsWriteOnce(t *testing.T) {
	host := newFakeBalances()
	b := New(host, nil)
	session := b.NewSession(&fakeLoader{})

	tag := balanceTag("USD")
	h1, err := session.handler(tag, core.Type{})
	if err != nil {
		t.Fatal(err)
	}
	h2, err := session.handler(tag, core.Type{})
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatalf("expected identical cached handler pointer, got %p vs %p", h1, h2)
	}

	b.Clear()
	if _, ok := b.cache.Get(tag); ok {
		t.Fatal("expected cache empty after Clear")
	}
}

func TestLockedCollateralInsert(t *testing.T) {
	// Lock3<USD> { inner: Coin<USD> } — spec.md §8 scenario 6.
	loader := &fakeLoader{defs: map[core.StructIndex]*core.StructDef{
		1: {ModuleName: core.MustIdentifier("Collateral"), StructName: core.MustIdentifier("Lock3"),
			Fields: []core.Type{{Kind: core.KindStructInstantiation, StructIdx: 2, TyArgs: []core.Type{{Kind: core.KindTyParam, ParamIdx: 0}}}}},
		2: {Address: core.CoreCodeAddress, ModuleName: core.CurrencyModuleName, StructName: core.CoinStructName,
			Fields: []core.Type{{Kind: core.KindU128}}},
	}}

	tag := core.StructTag{
		ModuleName: core.MustIdentifier("Collateral"),
		StructName: core.MustIdentifier("Lock3"),
		TypeParams: []core.TypeTag{core.StructTypeTag(core.StructTag{
			Address:    core.CoreCodeAddress,
			ModuleName: core.CurrencyModuleName,
			StructName: core.MustIdentifier("USD"),
		})},
	}
	tp := core.Type{Kind: core.KindStruct, StructIdx: 1}

	host := newFakeBalances()
	b := New(host, nil)
	session := b.NewSession(loader)

	value := core.StructValue(core.StructValue(core.U128Value(core.U128FromUint64(500))))

	handled, err := session.HandleInsertBalance(addr(0x1), tag, tp, value)
	if err != nil {
		t.Fatal(err)
	}
	if handled {
		t.Fatal("locked handler must report handled=false so the collateral struct is also byte-store persisted")
	}
	if len(host.locked) != 1 || host.locked[0].Ticker != "USD" || host.locked[0].Amount.String() != "500" {
		t.Fatalf("expected one locked USD:500 entry, got %+v", host.locked)
	}
}
