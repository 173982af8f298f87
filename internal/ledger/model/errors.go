package model

import (
	"errors"
	"fmt"
)

// Kind classifies ledger errors so callers can branch on the handling policy.
type Kind int

const (
	// KindUnknown is reported for errors that carry no ledger kind.
	KindUnknown Kind = iota
	// KindIntegrity marks faults that halt the transaction for manual review.
	KindIntegrity
	// KindUnresolved marks transactions that reference outputs not seen yet; retryable.
	KindUnresolved
	// KindMalformed marks upstream data-quality faults; counted against the error budget.
	KindMalformed
	// KindDelivery marks notification failures after a committed ledger mutation.
	KindDelivery
)

func (k Kind) String() string {
	switch k {
	case KindIntegrity:
		return "integrity"
	case KindUnresolved:
		return "unresolved"
	case KindMalformed:
		return "malformed"
	case KindDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}

type kinded interface {
	Kind() Kind
}

// KindOf returns the kind of the first ledger error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// IsRetryable reports whether the operation may succeed when repeated later.
func IsRetryable(err error) bool {
	return KindOf(err) == KindUnresolved
}

// DuplicateTXOError is returned when an output identity is recorded again with different attributes.
type DuplicateTXOError struct {
	Existing TXO
	Incoming TXO
}

func (e *DuplicateTXOError) Error() string {
	return fmt.Sprintf("txo %s already recorded with different attributes", e.Existing.OutPoint())
}

func (e *DuplicateTXOError) Kind() Kind { return KindIntegrity }

// UnknownTXOError is returned when a mutation references an output that was never recorded.
type UnknownTXOError struct {
	OutPoint OutPoint
}

func (e *UnknownTXOError) Error() string {
	return fmt.Sprintf("txo %s is unknown", e.OutPoint)
}

func (e *UnknownTXOError) Kind() Kind { return KindIntegrity }

// AlreadySpentError is returned when an output is spent again by a different transaction.
type AlreadySpentError struct {
	OutPoint     OutPoint
	SpendingTxID string
	Attempted    string
}

func (e *AlreadySpentError) Error() string {
	return fmt.Sprintf("txo %s already spent by %s, rejected spend by %s", e.OutPoint, e.SpendingTxID, e.Attempted)
}

func (e *AlreadySpentError) Kind() Kind { return KindIntegrity }

// DuplicateEntryError is returned when an entry for the same account, transaction and asset
// already exists with a different amount.
type DuplicateEntryError struct {
	Key      EntryKey
	Existing int64
	Incoming int64
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("ledger entry for account %s tx %s asset %s already exists (%d != %d)",
		e.Key.AccountRef, e.Key.TxID, e.Key.Asset, e.Existing, e.Incoming)
}

func (e *DuplicateEntryError) Kind() Kind { return KindIntegrity }

// UnresolvedInputError is returned when a transaction spends outputs the ledger has not seen.
type UnresolvedInputError struct {
	TxID    string
	Missing []OutPoint
}

func (e *UnresolvedInputError) Error() string {
	return fmt.Sprintf("tx %s references %d unknown input(s), first %s", e.TxID, len(e.Missing), e.Missing[0])
}

func (e *UnresolvedInputError) Kind() Kind { return KindUnresolved }

// ConflictingSpendError is returned when a transaction spends an output already spent by another transaction.
type ConflictingSpendError struct {
	TxID         string
	OutPoint     OutPoint
	SpendingTxID string
}

func (e *ConflictingSpendError) Error() string {
	return fmt.Sprintf("tx %s spends %s already spent by %s", e.TxID, e.OutPoint, e.SpendingTxID)
}

func (e *ConflictingSpendError) Kind() Kind { return KindIntegrity }

// MalformedTransactionError is returned for structurally invalid upstream transactions.
type MalformedTransactionError struct {
	TxID   string
	Reason string
	Err    error
}

func (e *MalformedTransactionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed tx %q: %s: %v", e.TxID, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed tx %q: %s", e.TxID, e.Reason)
}

func (e *MalformedTransactionError) Unwrap() error { return e.Err }

func (e *MalformedTransactionError) Kind() Kind { return KindMalformed }

// DeliveryError is returned when a committed event could not be handed to a transport.
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver event on channel %s: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func (e *DeliveryError) Kind() Kind { return KindDelivery }
