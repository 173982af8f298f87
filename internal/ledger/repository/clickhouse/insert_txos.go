package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
)

func insertTXOsQuery() string {
	return `
INSERT INTO ledger_txos (
	network,
	txid,
	vout,
	address,
	asset,
	amount,
	recorded_at
) VALUES`
}

// TXORecord is an output together with the commit time of the transaction creating it.
type TXORecord struct {
	model.TXO
	RecordedAt time.Time
}

// InsertTXOs stores outputs created by committed transactions.
func (r *Repository) InsertTXOs(ctx context.Context, txos []TXORecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_txos", r.network, err, start)
	}()

	if len(txos) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTXOsQuery())
	if err != nil {
		return fmt.Errorf("prepare txos batch: %w", err)
	}

	for _, txo := range txos {
		if err = batch.Append(
			string(r.network),
			txo.TxID,
			txo.Vout,
			txo.Address,
			txo.Asset,
			txo.Amount,
			txo.RecordedAt,
		); err != nil {
			return fmt.Errorf("append txo: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert txos: %w", err)
	}
	return nil
}
