package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Network selects the address format accepted by the ledger.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
)

// Transaction is an already-parsed transaction delivered by the upstream feed.
type Transaction struct {
	TxID    string
	Inputs  []OutPoint
	Outputs []Output
}

// Output is a transaction output as reported upstream. Amount is a quantity in base units.
type Output struct {
	Vout    uint32
	Address string
	Asset   string
	Amount  decimal.Decimal
}

// ProcessResult describes what a processed transaction changed.
type ProcessResult struct {
	TxID     string
	Replayed bool
	Spent    []OutPoint
	Created  []TXO
	Entries  []LedgerEntry
	Accounts []Account
}

// Commit is the set of mutations a processed transaction made durable.
type Commit struct {
	TxID        string
	CommittedAt time.Time
	Spent       []TXO
	Created     []TXO
	Entries     []LedgerEntry
	NewAccounts []Account
}
