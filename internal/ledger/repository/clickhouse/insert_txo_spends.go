package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// TXOSpend records which transaction consumed an output.
type TXOSpend struct {
	TxID         string
	Vout         uint32
	SpendingTxID string
	SpentAt      time.Time
}

func insertTXOSpendsQuery() string {
	return `
INSERT INTO ledger_txo_spends (
	network,
	txid,
	vout,
	spending_txid,
	spent_at
) VALUES`
}

// InsertTXOSpends stores spends made by committed transactions.
func (r *Repository) InsertTXOSpends(ctx context.Context, spends []TXOSpend) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_txo_spends", r.network, err, start)
	}()

	if len(spends) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTXOSpendsQuery())
	if err != nil {
		return fmt.Errorf("prepare txo spends batch: %w", err)
	}

	for _, spend := range spends {
		if err = batch.Append(
			string(r.network),
			spend.TxID,
			spend.Vout,
			spend.SpendingTxID,
			spend.SpentAt,
		); err != nil {
			return fmt.Errorf("append txo spend: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert txo spends: %w", err)
	}
	return nil
}
