package vm

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/synnergy-labs/resourcevm/bank"
	"github.com/synnergy-labs/resourcevm/core"
	"github.com/synnergy-labs/resourcevm/storage"
)

// Vm is the core-exposed API (spec.md §6): publish a module, execute a
// script, open a read-only session, clear internal caches.
type Vm struct {
	store       core.ByteStore
	events      core.EventHandler
	balances    core.Balances
	interpreter core.Interpreter
	loader      core.Loader

	bank      *bank.Bank
	costTable *core.CostTable
	log       *logrus.Logger
}

// New loads a gas schedule from the byte store at the well-known path
// (core.GasScheduleAccessPath), failing if absent or malformed (spec.md
// §6).
func New(store core.ByteStore, events core.EventHandler, balances core.Balances, interpreter core.Interpreter, loader core.Loader, log *logrus.Logger) (*Vm, error) {
	if log == nil {
		log = logrus.New()
	}
	blob, err := store.Get(core.GasScheduleAccessPath.Key())
	if err != nil {
		return nil, fmt.Errorf("vm: reading gas schedule: %w", err)
	}
	if blob == nil {
		return nil, fmt.Errorf("vm: no gas schedule published at %x", core.GasScheduleAccessPath.Key())
	}
	table, err := core.DecodeCostTable(blob)
	if err != nil {
		return nil, fmt.Errorf("vm: decoding gas schedule: %w", err)
	}

	return &Vm{
		store:       store,
		events:      events,
		balances:    balances,
		interpreter: interpreter,
		loader:      loader,
		bank:        bank.New(balances, log),
		costTable:   table,
		log:         log,
	}, nil
}

// Clear drops the bank's handler cache (spec.md §6).
func (v *Vm) Clear() { v.bank.Clear() }

// Session opens a read-only view over the current world state with the
// given optional chain context (spec.md §6).
func (v *Vm) Session(txInfo *TxInfo) *storage.Session {
	return v.newSession(txInfo)
}

func (v *Vm) newSession(txInfo *TxInfo) *storage.Session {
	var chainInfo *storage.TxInfo
	if txInfo != nil {
		info := storage.NewTxInfo(txInfo.Timestamp, txInfo.BlockHeight)
		chainInfo = &info
	}
	data := storage.NewDataAccess(v.store)
	eventWriter := storage.NewEventWriter(v.events)
	bankSession := v.bank.NewSession(v.loader)
	chain := storage.NewExecutionContext(chainInfo)
	return storage.New(data, eventWriter, bankSession, chain, v.log)
}

// PublishModule deserializes, verifies, and publishes a module (spec.md
// §6). Intrinsic gas proportional to blob size is charged before
// deserialization and again before the write, mirroring the teacher's
// two-charge pattern in mvm.go.
func (v *Vm) PublishModule(gas core.Gas, tx ModuleTx) VmResult {
	meter := core.NewGasMeter(v.costTable, gas.MaxGasAmount)
	session := v.newSession(nil)

	err := v.doPublish(session, tx, meter)
	return v.finish(session, meter, gas, err)
}

func (v *Vm) doPublish(session *storage.Session, tx ModuleTx, meter *core.GasMeter) error {
	if err := meter.ChargeIntrinsic(len(tx.Blob)); err != nil {
		return err
	}
	id, err := v.interpreter.PublishModule(tx.Blob, tx.Sender, meter, session)
	if err != nil {
		return err
	}
	if id.Address != tx.Sender {
		return core.NewVMErrorAt(core.StatusModuleAddressMismatch, core.ModuleLocation(id),
			fmt.Sprintf("module declares self-address %s but sender is %s", id.Address, tx.Sender))
	}
	if err := meter.ChargeIntrinsic(len(tx.Blob)); err != nil {
		return err
	}
	return session.PublishModule(id, tx.Blob)
}

// ExecuteScript runs a script and applies its write set (spec.md §6).
func (v *Vm) ExecuteScript(gas core.Gas, tx ScriptTx) VmResult {
	meter := core.NewGasMeter(v.costTable, gas.MaxGasAmount)
	session := v.newSession(tx.TxInfo)

	var effects core.TransactionEffects
	err := meter.ChargeIntrinsic(len(tx.Blob))
	if err == nil {
		effects, err = v.interpreter.ExecuteScript(tx.Blob, tx.Args, tx.TypeArgs, tx.Senders, meter, session)
	}
	if err == nil {
		err = v.applyEffects(session, effects)
	}
	return v.finish(session, meter, gas, err)
}

// applyEffects is spec.md §5's commit ordering: every resource
// delete/insert for an address in the order produced, then module
// publishes, then events.
func (v *Vm) applyEffects(session *storage.Session, effects core.TransactionEffects) error {
	for _, r := range effects.Resources {
		var err error
		if r.Value == nil {
			err = session.DeleteResource(r.Address, r.Tag, r.Type)
		} else {
			err = session.InsertResource(r.Address, r.Tag, r.Layout, r.Type, *r.Value)
		}
		if err != nil {
			return err
		}
	}
	for _, m := range effects.Modules {
		if err := session.PublishModule(m.ID, m.Blob); err != nil {
			return err
		}
	}
	for _, e := range effects.Events {
		if err := session.WriteEvent(storage.Event{GUID: e.GUID, Seq: e.Seq, Tag: e.Tag, Layout: e.Layout, Value: e.Value}); err != nil {
			return err
		}
	}
	return nil
}

// finish converts a commit outcome into a VmResult, mirroring the
// teacher's handle_vm_result: gas used is always reported even on
// failure, and any error from the bank or byte store during commit is
// fatal and surfaced verbatim (spec.md §4.5 "Failure semantics").
func (v *Vm) finish(session *storage.Session, meter *core.GasMeter, gas core.Gas, err error) VmResult {
	gasUsed := meter.Used()
	if err != nil {
		session.MarkFailed()
		var vmErr *core.VMError
		if ok := asVMError(err, &vmErr); ok {
			return VmResult{StatusCode: fromCoreStatus(vmErr.Status), GasUsed: gasUsed}
		}
		v.log.WithError(err).Warn("vm: unclassified commit failure")
		return VmResult{StatusCode: StatusHostError, GasUsed: gasUsed}
	}
	session.MarkCommitted()
	return VmResult{StatusCode: StatusExecuted, GasUsed: gasUsed}
}

func asVMError(err error, target **core.VMError) bool {
	for err != nil {
		if v, ok := err.(*core.VMError); ok {
			*target = v
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
