// Package entrystore keeps the append-only journal of ledger entries in memory.
package entrystore

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/blockinsight7000-ledger/pkg/safe"
)

type accountAsset struct {
	account string
	asset   string
}

// Store is the in-memory ledger entry journal together with the cached balance
// projection of every account. Both are updated under one lock, so the projection
// always equals the sum of the journal.
type Store struct {
	mu        sync.RWMutex
	entries   map[model.EntryKey]model.LedgerEntry
	byAccount map[accountAsset][]model.EntryKey
	byTx      map[string][]model.EntryKey
	balances  map[string]map[string]int64
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		entries:   make(map[model.EntryKey]model.LedgerEntry),
		byAccount: make(map[accountAsset][]model.EntryKey),
		byTx:      make(map[string][]model.EntryKey),
		balances:  make(map[string]map[string]int64),
	}
}

// Append adds an entry to the journal. Appending an entry with the same account,
// transaction, asset and amount again is a no-op.
func (s *Store) Append(entry model.LedgerEntry) error {
	_, err := s.AppendBatch([]model.LedgerEntry{entry})
	return err
}

// AppendBatch appends every entry or none of them. A batch that would push a balance
// out of the int64 range fails with safe.ErrOverflow. The returned undo function removes
// exactly the entries this call added; it exists for rolling back a commit that failed
// in a later step.
func (s *Store) AppendBatch(entries []model.LedgerEntry) (undo func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]model.LedgerEntry, 0, len(entries))
	seen := make(map[model.EntryKey]int64, len(entries))
	for _, entry := range entries {
		key := entry.Key()
		if amount, ok := seen[key]; ok {
			if amount != entry.Amount {
				return nil, &model.DuplicateEntryError{Key: key, Existing: amount, Incoming: entry.Amount}
			}
			continue
		}
		seen[key] = entry.Amount

		if existing, ok := s.entries[key]; ok {
			if existing.Amount != entry.Amount {
				return nil, &model.DuplicateEntryError{Key: key, Existing: existing.Amount, Incoming: entry.Amount}
			}
			continue
		}
		pending = append(pending, entry)
	}

	projected := make(map[accountAsset]int64, len(pending))
	for _, entry := range pending {
		aa := accountAsset{account: entry.AccountRef, asset: entry.Asset}
		current, ok := projected[aa]
		if !ok {
			current = s.balances[entry.AccountRef][entry.Asset]
		}
		next, err := safe.Add(current, entry.Amount)
		if err != nil {
			return nil, fmt.Errorf("balance of %s in %s: %w", entry.AccountRef, entry.Asset, err)
		}
		projected[aa] = next
	}

	for _, entry := range pending {
		key := entry.Key()
		s.entries[key] = entry
		aa := accountAsset{account: entry.AccountRef, asset: entry.Asset}
		s.byAccount[aa] = append(s.byAccount[aa], key)
		s.byTx[entry.TxID] = append(s.byTx[entry.TxID], key)
		s.adjust(entry.AccountRef, entry.Asset, entry.Amount)
	}

	return func() { s.remove(pending) }, nil
}

// SumBalance aggregates the journal of accountRef in asset.
func (s *Store) SumBalance(accountRef, asset string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum int64
	for _, key := range s.byAccount[accountAsset{account: accountRef, asset: asset}] {
		sum += s.entries[key].Amount
	}
	return sum
}

// Balances returns a copy of the cached balance projection of accountRef.
func (s *Store) Balances(accountRef string) map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.balances[accountRef])
}

// Lookup returns the entry guarded by key.
func (s *Store) Lookup(key model.EntryKey) (model.LedgerEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

// EntriesForTx returns the entries appended for txid ordered by account and asset.
func (s *Store) EntriesForTx(txid string) []model.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.byTx[txid]
	result := make([]model.LedgerEntry, 0, len(keys))
	for _, key := range keys {
		result = append(result, s.entries[key])
	}
	slices.SortFunc(result, compareEntries)
	return result
}

func (s *Store) adjust(account, asset string, amount int64) {
	balances, ok := s.balances[account]
	if !ok {
		balances = make(map[string]int64)
		s.balances[account] = balances
	}
	balances[asset] += amount
}

func (s *Store) remove(entries []model.LedgerEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range entries {
		key := entry.Key()
		if _, ok := s.entries[key]; !ok {
			continue
		}
		delete(s.entries, key)
		s.byTx[entry.TxID] = slices.DeleteFunc(s.byTx[entry.TxID], func(k model.EntryKey) bool { return k == key })
		if len(s.byTx[entry.TxID]) == 0 {
			delete(s.byTx, entry.TxID)
		}
		s.adjust(entry.AccountRef, entry.Asset, -entry.Amount)
		aa := accountAsset{account: entry.AccountRef, asset: entry.Asset}
		s.byAccount[aa] = slices.DeleteFunc(s.byAccount[aa], func(k model.EntryKey) bool { return k == key })
		if len(s.byAccount[aa]) == 0 {
			delete(s.byAccount, aa)
			delete(s.balances[entry.AccountRef], entry.Asset)
		}
	}
}

func compareEntries(a, b model.LedgerEntry) int {
	if c := cmp.Compare(a.Address, b.Address); c != 0 {
		return c
	}
	return cmp.Compare(a.Asset, b.Asset)
}
