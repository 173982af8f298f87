package model

import "time"

// EntryType tells whether a ledger entry increases or decreases a balance.
type EntryType string

var (
	// Credit marks a positive balance change.
	Credit EntryType = "credit"
	// Debit marks a negative balance change.
	Debit EntryType = "debit"
)

// LedgerEntry is an immutable balance change of one account and asset caused by one transaction.
type LedgerEntry struct {
	EntryID    string
	AccountRef string
	Address    string
	Asset      string
	Amount     int64
	TxID       string
	CreatedAt  time.Time
	Type       EntryType
}

// EntryKey is the replay guard of a ledger entry.
type EntryKey struct {
	AccountRef string
	TxID       string
	Asset      string
}

// Key returns the replay guard of the entry.
func (e LedgerEntry) Key() EntryKey {
	return EntryKey{AccountRef: e.AccountRef, TxID: e.TxID, Asset: e.Asset}
}

// EntryTypeFor derives the entry type from a signed amount.
func EntryTypeFor(amount int64) EntryType {
	if amount < 0 {
		return Debit
	}
	return Credit
}
