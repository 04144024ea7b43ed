package hostmem

import (
	"fmt"
	"sync"

	"github.com/synnergy-labs/resourcevm/core"
)

// balanceKey identifies one (ticker, address) ledger entry.
type balanceKey struct {
	ticker string
	addr   core.Address
}

// Ledger is a mutex-guarded, in-process core.Balances, grounded on the
// teacher's AccountManager (core/account_and_balance_operations.go): a plain
// map wrapped in an RWMutex, fmt.Errorf error reporting, no partial updates
// on failure.
type Ledger struct {
	mu       sync.RWMutex
	balances map[balanceKey]core.Account
}

// NewLedger builds an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[balanceKey]core.Account)}
}

// Seed sets addr's balance for ticker directly, bypassing Lock/Transfer
// validation; used by tests and CLI genesis setup.
func (l *Ledger) Seed(ticker string, addr core.Address, amount core.U128, lockable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[balanceKey{ticker, addr}] = core.Account{Amount: amount, IsLockable: lockable}
}

// GetBalance returns addr's account for ticker, or nil if it has never been
// seen.
func (l *Ledger) GetBalance(ticker string, addr core.Address) (*core.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	acc, ok := l.balances[balanceKey{ticker, addr}]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

// Transfer moves amount of ticker from src to dst, verifying sufficient
// funds.
func (l *Ledger) Transfer(ticker string, from, to core.Address, amount core.U128) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	src, ok := l.balances[balanceKey{ticker, from}]
	if !ok || !src.Amount.GreaterOrEqual(amount) {
		return fmt.Errorf("hostmem: insufficient %s balance for %s", ticker, from)
	}
	src.Amount = src.Amount.Sub(amount)
	l.balances[balanceKey{ticker, from}] = src

	dst := l.balances[balanceKey{ticker, to}]
	dst.Amount = dst.Amount.Add(amount)
	dst.IsLockable = dst.IsLockable || src.IsLockable
	l.balances[balanceKey{ticker, to}] = dst
	return nil
}

// Lock checks that addr's ticker account may hold locked collateral,
// creating a zero-balance lockable account if none exists. The amount is
// not recorded: this reference ledger does not track a locked-vs-available
// split. Locking an account not marked IsLockable is a host-adapter error
// (spec.md §9's "is this account lockable" open question, resolved as an
// enforced precondition here).
func (l *Ledger) Lock(ticker string, addr core.Address, amount core.U128) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.balances[balanceKey{ticker, addr}]
	if !ok {
		acc = core.Account{Amount: core.U128FromUint64(0), IsLockable: true}
	}
	if !acc.IsLockable {
		return fmt.Errorf("hostmem: account %s/%s is not lockable", ticker, addr)
	}
	l.balances[balanceKey{ticker, addr}] = acc
	return nil
}

// Unlock is the inverse of Lock; it is a no-op validation beyond confirming
// the account exists, since this reference ledger does not separately track
// a locked-vs-available split.
func (l *Ledger) Unlock(ticker string, addr core.Address, amount core.U128) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.balances[balanceKey{ticker, addr}]; !ok {
		return fmt.Errorf("hostmem: unlock of unknown account %s/%s", ticker, addr)
	}
	return nil
}
