package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
)

func insertLedgerEntriesQuery() string {
	return `
INSERT INTO ledger_entries (
	network,
	entry_id,
	account_id,
	address,
	asset,
	amount,
	txid,
	created_at,
	entry_type
) VALUES`
}

// InsertLedgerEntries stores journal entries.
func (r *Repository) InsertLedgerEntries(ctx context.Context, entries []model.LedgerEntry) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_ledger_entries", r.network, err, start)
	}()

	if len(entries) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertLedgerEntriesQuery())
	if err != nil {
		return fmt.Errorf("prepare ledger entries batch: %w", err)
	}

	for _, entry := range entries {
		if err = batch.Append(
			string(r.network),
			entry.EntryID,
			entry.AccountRef,
			entry.Address,
			entry.Asset,
			entry.Amount,
			entry.TxID,
			entry.CreatedAt,
			string(entry.Type),
		); err != nil {
			return fmt.Errorf("append ledger entry: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert ledger entries: %w", err)
	}
	return nil
}
