package bank

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/synnergy-labs/resourcevm/core"
)

// Bank is C3: the fungible-ledger gateway plus the balance-handler cache
// shared across every session bound to it (spec.md §2, §5).
type Bank struct {
	cache *HandlerCache
	host  core.Balances
	log   *logrus.Logger
}

// New constructs a Bank over a host-provided Balances implementation.
func New(host core.Balances, log *logrus.Logger) *Bank {
	if log == nil {
		log = logrus.New()
	}
	return &Bank{cache: NewHandlerCache(), host: host, log: log}
}

// Clear drops the handler cache, used by Vm.Clear (spec.md §6).
func (b *Bank) Clear() { b.cache.Clear() }

// NewSession binds a per-transaction BankSession to loader, the loaded
// type information for this transaction (spec.md §4.3 "Session-local
// cache").
func (b *Bank) NewSession(loader core.Loader) *Session {
	return &Session{
		bank:     b,
		balances: make(map[core.Address]map[string]core.Account),
		walker:   NewTypeWalker(loader),
	}
}

// Session is C3's per-transaction handle: a read-through balance cache
// plus the handler lookups needed to service reads and writes. It is
// discarded at session end (spec.md §4.3).
type Session struct {
	mu       sync.Mutex
	bank     *Bank
	balances map[core.Address]map[string]core.Account
	walker   *TypeWalker
}

// handler returns the memoized handler for tag, computing and storing it
// on first sight (spec.md §4.3 "Handler construction").
func (s *Session) handler(tag core.StructTag, tp core.Type) (*Handler, error) {
	if h, ok := s.bank.cache.Get(tag); ok {
		return h, nil
	}
	h, err := s.walker.FindBalance(tag, tp)
	if err != nil {
		return nil, err
	}
	return s.bank.cache.Store(tag, h), nil
}

// Resolve implements core.Resolver for balance reads (spec.md §4.3
// "Resolve on read").
func (s *Session) Resolve(address core.Address, tag core.StructTag) core.ResolverResult {
	if !IsBalance(tag) {
		return core.Unresolved()
	}
	ticker := Ticker(tag)

	if acc, ok := s.cachedBalance(address, ticker); ok {
		return core.ResolvedValue(acc.Amount.ToLE16())
	}

	acc, err := s.bank.host.GetBalance(ticker, address)
	if err != nil {
		return core.ResolvedError(core.WrapHostError(err))
	}
	if acc == nil {
		return core.ResolvedAbsent()
	}
	s.cacheBalance(address, ticker, *acc)
	return core.ResolvedValue(acc.Amount.ToLE16())
}

func (s *Session) cachedBalance(address core.Address, ticker string) (core.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byTicker, ok := s.balances[address]
	if !ok {
		return core.Account{}, false
	}
	acc, ok := byTicker[ticker]
	return acc, ok
}

func (s *Session) dropCachedBalance(address core.Address, ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if byTicker, ok := s.balances[address]; ok {
		delete(byTicker, ticker)
	}
}

func (s *Session) cacheBalance(address core.Address, ticker string, acc core.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byTicker, ok := s.balances[address]
	if !ok {
		byTicker = make(map[string]core.Account)
		s.balances[address] = byTicker
	}
	byTicker[ticker] = acc
}

// HandleDeleteBalance is spec.md §4.5's delete_resource step 1: true iff
// the handler is Unlocked (locked balances nested in collateral are NOT
// removable through resource deletion; the collateral struct is removed
// through the byte-store fallback path instead).
func (s *Session) HandleDeleteBalance(address core.Address, tag core.StructTag, tp core.Type) (bool, error) {
	h, err := s.handler(tag, tp)
	if err != nil {
		return false, err
	}
	if h == nil {
		return false, nil
	}
	if h.Unlocked {
		s.log.WithFields(logrus.Fields{"address": address, "ticker": h.Ticker}).Debug("bank: dropping cached balance on delete")
		s.dropCachedBalance(address, h.Ticker)
	}
	return h.Unlocked, nil
}

// HandleInsertBalance is spec.md §4.5's insert_resource step 1. Unlocked
// handlers record the amount in this session's balance cache only (no host
// Balances method is called) and report handled=true so the byte store is
// skipped; Locked handlers call the host's Lock for each nested amount but
// report handled=false, so the collateral struct is ALSO persisted to the
// byte store (spec.md §8 scenario 6).
func (s *Session) HandleInsertBalance(address core.Address, tag core.StructTag, tp core.Type, value core.Value) (bool, error) {
	h, err := s.handler(tag, tp)
	if err != nil {
		return false, err
	}
	if h == nil {
		return false, nil
	}

	balances, err := h.ResolveBalance(value)
	if err != nil {
		return false, err
	}

	for _, bal := range balances {
		s.log.WithFields(logrus.Fields{
			"address": address, "ticker": bal.Ticker, "amount": bal.Amount.String(), "locked": bal.Locked,
		}).Debug("bank: recording balance from insert")
		if bal.Locked {
			if err := s.bank.host.Lock(bal.Ticker, address, bal.Amount); err != nil {
				return false, core.WrapHostError(err)
			}
			continue
		}
		s.cacheBalance(address, bal.Ticker, core.Account{Amount: bal.Amount, IsLockable: true})
	}

	return h.Unlocked, nil
}
