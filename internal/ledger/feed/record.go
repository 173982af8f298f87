package feed

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/blockinsight7000-ledger/pkg/safe"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is the JSON form of an upstream transaction.
type Record struct {
	TxID    string         `json:"txid"`
	Inputs  []InputRecord  `json:"inputs"`
	Outputs []OutputRecord `json:"outputs"`
}

type InputRecord struct {
	TxID string `json:"txid"`
	Vout int64  `json:"vout"`
}

type OutputRecord struct {
	Vout    int64           `json:"vout"`
	Address string          `json:"address"`
	Asset   string          `json:"asset"`
	Amount  decimal.Decimal `json:"amount"`
}

// Decode parses body into a transaction. Bodies that cannot be decoded are reported as
// *model.MalformedTransactionError.
func Decode(body []byte) (model.Transaction, error) {
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return model.Transaction{}, &model.MalformedTransactionError{Reason: "decode feed record", Err: err}
	}
	return rec.Transaction()
}

// Transaction converts the record, checking output indexes fit uint32.
func (r Record) Transaction() (model.Transaction, error) {
	tx := model.Transaction{
		TxID:    r.TxID,
		Inputs:  make([]model.OutPoint, 0, len(r.Inputs)),
		Outputs: make([]model.Output, 0, len(r.Outputs)),
	}
	for i, in := range r.Inputs {
		vout, err := safe.Uint32(in.Vout)
		if err != nil {
			return model.Transaction{}, &model.MalformedTransactionError{TxID: r.TxID, Reason: fmt.Sprintf("input %d vout", i), Err: err}
		}
		tx.Inputs = append(tx.Inputs, model.OutPoint{TxID: in.TxID, Vout: vout})
	}
	for i, out := range r.Outputs {
		vout, err := safe.Uint32(out.Vout)
		if err != nil {
			return model.Transaction{}, &model.MalformedTransactionError{TxID: r.TxID, Reason: fmt.Sprintf("output %d vout", i), Err: err}
		}
		tx.Outputs = append(tx.Outputs, model.Output{
			Vout:    vout,
			Address: out.Address,
			Asset:   out.Asset,
			Amount:  out.Amount,
		})
	}
	return tx, nil
}

// Encode renders tx as a feed record body.
func Encode(tx model.Transaction) ([]byte, error) {
	rec := Record{
		TxID:    tx.TxID,
		Inputs:  make([]InputRecord, 0, len(tx.Inputs)),
		Outputs: make([]OutputRecord, 0, len(tx.Outputs)),
	}
	for _, in := range tx.Inputs {
		rec.Inputs = append(rec.Inputs, InputRecord{TxID: in.TxID, Vout: int64(in.Vout)})
	}
	for _, out := range tx.Outputs {
		rec.Outputs = append(rec.Outputs, OutputRecord{Vout: int64(out.Vout), Address: out.Address, Asset: out.Asset, Amount: out.Amount})
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode feed record: %w", err)
	}
	return body, nil
}
