package bank

import (
	"sync"

	"github.com/synnergy-labs/resourcevm/core"
)

// HandlerCache is the shared, write-once memo keyed by StructTag (spec.md
// §3 invariant 3, §5 "Shared resources"). It is safe for concurrent use
// across sessions bound to the same Bank, guarded by a plain RWMutex —
// the corpus's idiom for shared mutable maps (teacher's AccountManager,
// sandbox registry) rather than a lock-free CAS scheme.
type HandlerCache struct {
	mu      sync.RWMutex
	entries map[string]*Handler
}

// NewHandlerCache constructs an empty cache.
func NewHandlerCache() *HandlerCache {
	return &HandlerCache{entries: make(map[string]*Handler)}
}

// Get returns the cached handler for tag and true if one has already been
// computed (a nil handler with ok=true means "confirmed not a
// balance-bearing resource"); ok is false if tag has never been seen.
func (c *HandlerCache) Get(tag core.StructTag) (h *Handler, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok = c.entries[string(tag.AccessVector())]
	return h, ok
}

// Store records handler for tag, write-once: if another goroutine already
// stored a value for tag, the existing value wins and is returned instead
// (spec.md invariant 3: "authoritative memo... lookups return exactly the
// same handler").
func (c *HandlerCache) Store(tag core.StructTag, handler *Handler) *Handler {
	key := string(tag.AccessVector())
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = handler
	return handler
}

// Clear drops every cached handler.
func (c *HandlerCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Handler)
}
