package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
)

// LedgerEntries returns the archived journal of the network in creation order.
func (r *Repository) LedgerEntries(ctx context.Context) (entries []model.LedgerEntry, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("ledger_entries", r.network, err, start)
	}()

	const query = `
SELECT
	entry_id,
	account_id,
	address,
	asset,
	amount,
	txid,
	created_at,
	entry_type
FROM ledger_entries FINAL
WHERE network = ?
ORDER BY created_at ASC, txid ASC, address ASC, asset ASC`

	rows, err := r.conn.Query(ctx, query, string(r.network))
	if err != nil {
		return nil, fmt.Errorf("query ledger entries: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var (
			entry     model.LedgerEntry
			entryType string
		)
		if err = rows.Scan(
			&entry.EntryID,
			&entry.AccountRef,
			&entry.Address,
			&entry.Asset,
			&entry.Amount,
			&entry.TxID,
			&entry.CreatedAt,
			&entryType,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entry.Type = model.EntryType(entryType)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return entries, nil
}
