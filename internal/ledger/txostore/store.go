// Package txostore keeps transaction outputs and their spend state in memory.
package txostore

import (
	"iter"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
)

// Spend marks an output as consumed by SpendingTxID.
type Spend struct {
	OutPoint     model.OutPoint
	SpendingTxID string
}

// Batch groups the TXO mutations of one transaction.
type Batch struct {
	Spends  []Spend
	Outputs []model.TXO
}

type holdingKey struct {
	address string
	asset   string
}

// Store is the in-memory TXO set. Outputs are never removed once a batch is kept.
type Store struct {
	mu       sync.RWMutex
	outputs  map[model.OutPoint]*model.TXO
	holdings map[holdingKey][]model.OutPoint
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		outputs:  make(map[model.OutPoint]*model.TXO),
		holdings: make(map[holdingKey][]model.OutPoint),
	}
}

// RecordOutput stores a newly observed unspent output. Recording the identical output
// again is a no-op.
func (s *Store) RecordOutput(txo model.TXO) error {
	_, err := s.Apply(Batch{Outputs: []model.TXO{txo}})
	return err
}

// MarkSpent marks an output as spent by spendingTxID. Spending it again with the same
// transaction is a no-op.
func (s *Store) MarkSpent(outPoint model.OutPoint, spendingTxID string) error {
	_, err := s.Apply(Batch{Spends: []Spend{{OutPoint: outPoint, SpendingTxID: spendingTxID}}})
	return err
}

// Lookup returns the output identified by outPoint.
func (s *Store) Lookup(outPoint model.OutPoint) (model.TXO, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txo, ok := s.outputs[outPoint]
	if !ok {
		return model.TXO{}, false
	}
	return *txo, true
}

// UnspentFor yields the unspent outputs held by address in asset. The sequence can be
// ranged over repeatedly; each pass reflects the state at the time it runs.
func (s *Store) UnspentFor(address, asset string) iter.Seq[model.TXO] {
	return func(yield func(model.TXO) bool) {
		s.mu.RLock()
		points := append([]model.OutPoint(nil), s.holdings[holdingKey{address: address, asset: asset}]...)
		s.mu.RUnlock()

		for _, point := range points {
			txo, ok := s.Lookup(point)
			if !ok || txo.Spent {
				continue
			}
			if !yield(txo) {
				return
			}
		}
	}
}

// Apply validates and applies every spend and output of the batch, or none of them.
// Items already present in the identical state are skipped. The returned undo function
// reverts exactly what this call changed; it is meant for rolling back a commit that
// failed in a later step and must not be used once the commit is final.
func (s *Store) Apply(batch Batch) (undo func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spends, err := s.pendingSpends(batch.Spends)
	if err != nil {
		return nil, err
	}
	outputs, err := s.pendingOutputs(batch.Outputs)
	if err != nil {
		return nil, err
	}

	for _, spend := range spends {
		txo := s.outputs[spend.OutPoint]
		txo.Spent = true
		txo.SpendingTxID = spend.SpendingTxID
	}
	for _, output := range outputs {
		txo := output
		txo.Spent = false
		txo.SpendingTxID = ""
		s.outputs[txo.OutPoint()] = &txo
		key := holdingKey{address: txo.Address, asset: txo.Asset}
		s.holdings[key] = append(s.holdings[key], txo.OutPoint())
	}

	return func() { s.revert(spends, outputs) }, nil
}

func (s *Store) pendingSpends(spends []Spend) ([]Spend, error) {
	pending := make([]Spend, 0, len(spends))
	seen := make(map[model.OutPoint]string, len(spends))
	for _, spend := range spends {
		if prev, ok := seen[spend.OutPoint]; ok {
			if prev != spend.SpendingTxID {
				return nil, &model.AlreadySpentError{OutPoint: spend.OutPoint, SpendingTxID: prev, Attempted: spend.SpendingTxID}
			}
			continue
		}
		seen[spend.OutPoint] = spend.SpendingTxID

		txo, ok := s.outputs[spend.OutPoint]
		if !ok {
			return nil, &model.UnknownTXOError{OutPoint: spend.OutPoint}
		}
		if txo.Spent {
			if txo.SpendingTxID != spend.SpendingTxID {
				return nil, &model.AlreadySpentError{OutPoint: spend.OutPoint, SpendingTxID: txo.SpendingTxID, Attempted: spend.SpendingTxID}
			}
			continue
		}
		pending = append(pending, spend)
	}
	return pending, nil
}

func (s *Store) pendingOutputs(outputs []model.TXO) ([]model.TXO, error) {
	pending := make([]model.TXO, 0, len(outputs))
	seen := make(map[model.OutPoint]model.TXO, len(outputs))
	for _, output := range outputs {
		point := output.OutPoint()
		if prev, ok := seen[point]; ok {
			if !prev.SameOutput(output) {
				return nil, &model.DuplicateTXOError{Existing: prev, Incoming: output}
			}
			continue
		}
		seen[point] = output

		if existing, ok := s.outputs[point]; ok {
			if !existing.SameOutput(output) {
				return nil, &model.DuplicateTXOError{Existing: *existing, Incoming: output}
			}
			continue
		}
		pending = append(pending, output)
	}
	return pending, nil
}

func (s *Store) revert(spends []Spend, outputs []model.TXO) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, output := range outputs {
		point := output.OutPoint()
		delete(s.outputs, point)
		key := holdingKey{address: output.Address, asset: output.Asset}
		held := s.holdings[key]
		for i := len(held) - 1; i >= 0; i-- {
			if held[i] == point {
				held = append(held[:i], held[i+1:]...)
				break
			}
		}
		if len(held) == 0 {
			delete(s.holdings, key)
		} else {
			s.holdings[key] = held
		}
	}
	for _, spend := range spends {
		if txo, ok := s.outputs[spend.OutPoint]; ok {
			txo.Spent = false
			txo.SpendingTxID = ""
		}
	}
}
