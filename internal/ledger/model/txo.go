// Package model defines domain models for the TXO ledger.
package model

import "fmt"

// OutPoint identifies a transaction output.
type OutPoint struct {
	TxID string
	Vout uint32
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID, o.Vout)
}

// TXO is a transaction output together with its spend state.
type TXO struct {
	TxID         string
	Vout         uint32
	Address      string
	Asset        string
	Amount       int64
	Spent        bool
	SpendingTxID string
}

// OutPoint returns the identity of the output.
func (t TXO) OutPoint() OutPoint {
	return OutPoint{TxID: t.TxID, Vout: t.Vout}
}

// SameOutput reports whether both records describe the same output, ignoring spend state.
func (t TXO) SameOutput(other TXO) bool {
	return t.TxID == other.TxID &&
		t.Vout == other.Vout &&
		t.Address == other.Address &&
		t.Asset == other.Asset &&
		t.Amount == other.Amount
}
