package core

// AccessPath is `{address, path: bytes}` (spec.md §3); the byte store key is
// the concatenation `address_bytes || path`.
type AccessPath struct {
	Address Address
	Path    []byte
}

// NewResourceAccessPath builds the AccessPath for a resource of the given
// tag at address.
func NewResourceAccessPath(address Address, tag StructTag) AccessPath {
	return AccessPath{Address: address, Path: tag.AccessVector()}
}

// NewModuleAccessPath builds the AccessPath for a published module.
func NewModuleAccessPath(id ModuleId) AccessPath {
	return AccessPath{Address: id.Address, Path: id.AccessVector()}
}

// Key returns the flat byte-store key `address_bytes || path`.
func (p AccessPath) Key() []byte {
	key := make([]byte, 0, AddressLength+len(p.Path))
	key = append(key, p.Address.Bytes()...)
	key = append(key, p.Path...)
	return key
}
