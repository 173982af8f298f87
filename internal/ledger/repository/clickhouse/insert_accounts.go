package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
)

func insertAccountsQuery() string {
	return `
INSERT INTO ledger_accounts (
	network,
	account_id,
	payment_address,
	created_at
) VALUES`
}

// InsertAccounts stores newly created accounts.
func (r *Repository) InsertAccounts(ctx context.Context, accounts []model.Account) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_accounts", r.network, err, start)
	}()

	if len(accounts) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertAccountsQuery())
	if err != nil {
		return fmt.Errorf("prepare accounts batch: %w", err)
	}

	for _, account := range accounts {
		if err = batch.Append(
			string(r.network),
			account.AccountID,
			account.PaymentAddress,
			account.CreatedAt,
		); err != nil {
			return fmt.Errorf("append account: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert accounts: %w", err)
	}
	return nil
}
