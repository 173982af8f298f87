package service

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/counterparty"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/blockinsight7000-ledger/pkg/safe"
)

// normalize checks the structure of tx and converts its outputs into TXOs with
// canonical addresses and integral amounts.
func (l *AccountLedger) normalize(tx model.Transaction) ([]model.TXO, error) {
	malformed := func(reason string, err error) error {
		return &model.MalformedTransactionError{TxID: tx.TxID, Reason: reason, Err: err}
	}

	if err := l.chain.ValidateTxID(tx.TxID); err != nil {
		return nil, malformed("invalid txid", err)
	}
	if len(tx.Inputs) == 0 && len(tx.Outputs) == 0 {
		return nil, malformed("no inputs and no outputs", nil)
	}

	inputs := make(map[model.OutPoint]struct{}, len(tx.Inputs))
	for _, in := range tx.Inputs {
		if err := l.chain.ValidateTxID(in.TxID); err != nil {
			return nil, malformed(fmt.Sprintf("invalid input txid %q", in.TxID), err)
		}
		if in.TxID == tx.TxID {
			return nil, malformed(fmt.Sprintf("input %s spends the transaction itself", in), nil)
		}
		if _, dup := inputs[in]; dup {
			return nil, malformed(fmt.Sprintf("input %s referenced twice", in), nil)
		}
		inputs[in] = struct{}{}
	}

	outputs := make([]model.TXO, 0, len(tx.Outputs))
	vouts := make(map[uint32]struct{}, len(tx.Outputs))
	for _, out := range tx.Outputs {
		if _, dup := vouts[out.Vout]; dup {
			return nil, malformed(fmt.Sprintf("output index %d repeated", out.Vout), nil)
		}
		vouts[out.Vout] = struct{}{}

		address, err := l.chain.ResolveAddress(out.Address)
		if err != nil {
			return nil, malformed(fmt.Sprintf("output %d address", out.Vout), err)
		}
		if err := counterparty.ValidateAsset(out.Asset); err != nil {
			return nil, malformed(fmt.Sprintf("output %d asset", out.Vout), err)
		}
		amount, err := safe.Quantity(out.Amount)
		if err != nil {
			return nil, malformed(fmt.Sprintf("output %d amount", out.Vout), err)
		}

		outputs = append(outputs, model.TXO{
			TxID:    tx.TxID,
			Vout:    out.Vout,
			Address: address,
			Asset:   out.Asset,
			Amount:  amount,
		})
	}
	return outputs, nil
}
