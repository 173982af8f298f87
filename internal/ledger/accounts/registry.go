// Package accounts maps payment addresses to ledger accounts.
package accounts

import (
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/google/uuid"
)

// Registry creates accounts lazily on first reference to an address. Accounts are never removed.
type Registry struct {
	mu        sync.RWMutex
	byAddress map[string]model.Account
	clock     clock.Clock
	newID     func() string
}

// NewRegistry constructs an empty Registry.
func NewRegistry(c clock.Clock) *Registry {
	return &Registry{
		byAddress: make(map[string]model.Account),
		clock:     c,
		newID:     uuid.NewString,
	}
}

// Get returns the account of address if it exists.
func (r *Registry) Get(address string) (model.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byAddress[address]
	return account, ok
}

// Ensure returns the account of address, creating it when missing.
func (r *Registry) Ensure(address string) (account model.Account, created bool) {
	if account, ok := r.Get(address); ok {
		return account, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if account, ok := r.byAddress[address]; ok {
		return account, false
	}
	account = model.Account{
		AccountID:      r.newID(),
		PaymentAddress: address,
		CreatedAt:      r.clock.Now(),
	}
	r.byAddress[address] = account
	return account, true
}

// Restore registers a previously persisted account. An address keeps the first account restored for it.
func (r *Registry) Restore(account model.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byAddress[account.PaymentAddress]; ok {
		return
	}
	account.Balances = nil
	r.byAddress[account.PaymentAddress] = account
}

// Len returns the number of known accounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byAddress)
}
