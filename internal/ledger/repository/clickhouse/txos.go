package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
)

// TXOs returns every archived output of the network in recording order. Spend state is
// kept in ledger_txo_spends and not reflected here.
func (r *Repository) TXOs(ctx context.Context) (txos []model.TXO, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("txos", r.network, err, start)
	}()

	const query = `
SELECT
	txid,
	vout,
	address,
	asset,
	amount
FROM ledger_txos FINAL
WHERE network = ?
ORDER BY recorded_at ASC, txid ASC, vout ASC`

	rows, err := r.conn.Query(ctx, query, string(r.network))
	if err != nil {
		return nil, fmt.Errorf("query txos: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var txo model.TXO
		if err = rows.Scan(
			&txo.TxID,
			&txo.Vout,
			&txo.Address,
			&txo.Asset,
			&txo.Amount,
		); err != nil {
			return nil, fmt.Errorf("scan txo: %w", err)
		}
		txos = append(txos, txo)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate txos: %w", err)
	}
	return txos, nil
}

// TXOSpends returns every archived spend of the network in spending order.
func (r *Repository) TXOSpends(ctx context.Context) (spends []TXOSpend, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("txo_spends", r.network, err, start)
	}()

	const query = `
SELECT
	txid,
	vout,
	spending_txid,
	spent_at
FROM ledger_txo_spends FINAL
WHERE network = ?
ORDER BY spent_at ASC, txid ASC, vout ASC`

	rows, err := r.conn.Query(ctx, query, string(r.network))
	if err != nil {
		return nil, fmt.Errorf("query txo spends: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var spend TXOSpend
		if err = rows.Scan(
			&spend.TxID,
			&spend.Vout,
			&spend.SpendingTxID,
			&spend.SpentAt,
		); err != nil {
			return nil, fmt.Errorf("scan txo spend: %w", err)
		}
		spends = append(spends, spend)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate txo spends: %w", err)
	}
	return spends, nil
}
