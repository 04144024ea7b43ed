// Package hostmem ships reference host-capability adapters (ByteStore,
// EventHandler, Balances, Loader) sufficient to run the vm package without a
// production host wired in (spec.md §6 "a host wires in the real
// collaborators"). Grounded on the teacher's core/storage.go and
// core/ledger.go: MemStore, EventLog, Ledger and StaticLoader are in-memory
// maps sized for tests and local CLI use, and WALStore is the one
// file-backed adapter, replaying its WAL on open.
package hostmem

import (
	"fmt"
	"sync"

	"github.com/synnergy-labs/resourcevm/core"
)

// MemStore is a mutex-guarded, in-process core.ByteStore, mirroring the
// teacher's diskLRU cache shape without the disk.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemStore builds an empty store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Get returns the stored value, or nil if absent.
func (m *MemStore) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Insert writes key/value, overwriting any prior value.
func (m *MemStore) Insert(key []byte, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(value))
	copy(buf, value)
	m.data[string(key)] = buf
	return nil
}

// Remove deletes key, a no-op if absent.
func (m *MemStore) Remove(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

// SeedGasSchedule writes table at core.GasScheduleAccessPath, the
// precondition vm.New requires before a Vm can be constructed.
func (m *MemStore) SeedGasSchedule(table *core.CostTable) error {
	blob, err := table.Encode()
	if err != nil {
		return fmt.Errorf("hostmem: encoding gas schedule: %w", err)
	}
	return m.Insert(core.GasScheduleAccessPath.Key(), blob)
}
