package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
)

// Accounts returns every archived account of the network, oldest first.
func (r *Repository) Accounts(ctx context.Context) (accounts []model.Account, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("accounts", r.network, err, start)
	}()

	const query = `
SELECT
	account_id,
	payment_address,
	created_at
FROM ledger_accounts FINAL
WHERE network = ?
ORDER BY created_at ASC, payment_address ASC`

	rows, err := r.conn.Query(ctx, query, string(r.network))
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var account model.Account
		if err = rows.Scan(
			&account.AccountID,
			&account.PaymentAddress,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}
