package storage

import "github.com/synnergy-labs/resourcevm/core"

// DataAccess is C1: it wraps the host-provided raw byte store, owning the
// address/path-to-key encoding (spec.md §4.1). No error kind other than
// "absent" is produced here; corrupt blobs are the interpreter's concern.
type DataAccess struct {
	store core.ByteStore
}

// NewDataAccess wraps a host ByteStore.
func NewDataAccess(store core.ByteStore) *DataAccess {
	return &DataAccess{store: store}
}

// GetModule returns a published module's bytes, or nil if absent.
func (d *DataAccess) GetModule(id core.ModuleId) ([]byte, error) {
	return d.getByPath(core.NewModuleAccessPath(id))
}

// GetResource returns a resource's bytes, or nil if absent.
func (d *DataAccess) GetResource(address core.Address, tag core.StructTag) ([]byte, error) {
	return d.getByPath(core.NewResourceAccessPath(address, tag))
}

func (d *DataAccess) getByPath(path core.AccessPath) ([]byte, error) {
	blob, err := d.store.Get(path.Key())
	if err != nil {
		return nil, core.WrapHostError(err)
	}
	return blob, nil
}

// Insert writes blob at path, overwriting idempotently.
func (d *DataAccess) Insert(path core.AccessPath, blob []byte) error {
	if err := d.store.Insert(path.Key(), blob); err != nil {
		return core.WrapHostError(err)
	}
	return nil
}

// Delete removes any value at path, idempotently.
func (d *DataAccess) Delete(path core.AccessPath) error {
	if err := d.store.Remove(path.Key()); err != nil {
		return core.WrapHostError(err)
	}
	return nil
}

// Resolve implements core.Resolver as the final link in the read chain
// (spec.md §4.5 step 3): byte-store reads never decline.
func (d *DataAccess) Resolve(address core.Address, tag core.StructTag) core.ResolverResult {
	blob, err := d.GetResource(address, tag)
	if err != nil {
		return core.ResolvedError(err)
	}
	if blob == nil {
		return core.ResolvedAbsent()
	}
	return core.ResolvedValue(blob)
}
