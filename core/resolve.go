package core

// ResolverResult is the outcome of one resolver in the read chain
// (spec.md §4.5, §5 "Ordering"): either it claims the tag and returns a
// definitive answer (including "definitively absent"), or it declines and
// the next resolver in the chain gets a turn.
type ResolverResult struct {
	Resolved bool
	Value    []byte
	Err      error
}

// Unresolved is returned by a resolver that does not recognize the tag.
func Unresolved() ResolverResult { return ResolverResult{} }

// ResolvedValue is returned by a resolver that recognizes the tag and
// found a value.
func ResolvedValue(v []byte) ResolverResult { return ResolverResult{Resolved: true, Value: v} }

// ResolvedAbsent is returned by a resolver that recognizes the tag but has
// no value for it.
func ResolvedAbsent() ResolverResult { return ResolverResult{Resolved: true} }

// ResolvedError is returned by a resolver that recognizes the tag but hit
// an error trying to answer.
func ResolvedError(err error) ResolverResult { return ResolverResult{Resolved: true, Err: err} }

// Resolver answers resource reads for one layer of the read chain (chain
// context, bank, byte store).
type Resolver interface {
	Resolve(address Address, tag StructTag) ResolverResult
}
