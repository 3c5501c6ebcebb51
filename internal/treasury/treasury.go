// Package treasury is the value-transfer collaborator: it keeps balances
// per external address and moves value all-or-nothing. The compliance core
// treats it as an opaque capability; it carries no compliance rules itself.
package treasury

import (
	"context"
	"sync"

	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
)

// Treasury holds per-address balances guarded by one lock so a transfer is
// atomic: debit and credit happen together or not at all.
type Treasury struct {
	mu       sync.RWMutex
	balances map[domain.Address]int64
}

// New constructs an empty treasury.
func New() *Treasury {
	return &Treasury{balances: make(map[domain.Address]int64)}
}

// Deposit credits an address. Used by the host to fund accounts.
func (t *Treasury) Deposit(_ context.Context, addr domain.Address, amount int64) error {
	if addr.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "address is required")
	}
	if amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "deposit amount must be positive")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[addr] += amount
	return nil
}

// Transfer moves amount from one address to another, failing with
// CodeInsufficientBalance when the source cannot cover it.
func (t *Treasury) Transfer(_ context.Context, from, to domain.Address, amount int64) error {
	if from.IsZero() || to.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "transfer addresses are required")
	}
	if amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "transfer amount must be positive")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.balances[from] < amount {
		return dErrors.New(dErrors.CodeInsufficientBalance, "insufficient balance")
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

// Balance returns the current balance of an address. Unknown addresses have
// balance zero.
func (t *Treasury) Balance(_ context.Context, addr domain.Address) (int64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balances[addr], nil
}
