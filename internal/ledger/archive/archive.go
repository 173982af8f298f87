// Package archive persists ledger commits asynchronously and replays them into the
// in-memory stores on start.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-ledger/pkg/batcher"
	"github.com/goodnatureofminers/blockinsight7000-ledger/pkg/workerpool"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

const (
	defaultFlushSize     = 500
	defaultFlushInterval = time.Second
	defaultFlushRPS      = 20
)

type (
	Repository interface {
		InsertAccounts(ctx context.Context, accounts []model.Account) error
		InsertTXOs(ctx context.Context, txos []clickhouse.TXORecord) error
		InsertTXOSpends(ctx context.Context, spends []clickhouse.TXOSpend) error
		InsertLedgerEntries(ctx context.Context, entries []model.LedgerEntry) error
		Accounts(ctx context.Context) ([]model.Account, error)
		TXOs(ctx context.Context) ([]model.TXO, error)
		TXOSpends(ctx context.Context) ([]clickhouse.TXOSpend, error)
		LedgerEntries(ctx context.Context) ([]model.LedgerEntry, error)
	}
	AccountRestorer interface {
		Restore(account model.Account)
	}
	TXORestorer interface {
		RecordOutput(txo model.TXO) error
		MarkSpent(outPoint model.OutPoint, spendingTxID string) error
	}
	EntryRestorer interface {
		Append(entry model.LedgerEntry) error
	}
)

// Config tunes the write buffer. A failed batch is retried after RetryBackoff, doubled
// per consecutive failure up to MaxRetryBackoff. After MaxFlushFailures consecutive
// failures the archive reports itself failed; zero never gives up.
type Config struct {
	FlushSize        int
	FlushInterval    time.Duration
	FlushRPS         int
	RetryBackoff     time.Duration
	MaxRetryBackoff  time.Duration
	MaxFlushFailures int
}

// Archive buffers commits and writes them to the repository in batches.
type Archive struct {
	repo        Repository
	logger      *zap.Logger
	commits     *batcher.Batcher[model.Commit]
	maxFailures int
	failures    int
	failed      chan error
}

// New constructs an Archive. Zero config values fall back to defaults.
func New(repo Repository, cfg Config, logger *zap.Logger) *Archive {
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = defaultFlushSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.FlushRPS <= 0 {
		cfg.FlushRPS = defaultFlushRPS
	}

	a := &Archive{
		repo:        repo,
		logger:      logger,
		maxFailures: cfg.MaxFlushFailures,
		failed:      make(chan error, 1),
	}
	a.commits = batcher.New[model.Commit](
		logger.Named("commitBatcher"),
		a.write,
		cfg.FlushSize,
		cfg.FlushInterval,
		cfg.FlushRPS,
	).WithRetryBackoff(cfg.RetryBackoff, cfg.MaxRetryBackoff)
	return a
}

// Failed delivers one error once MaxFlushFailures consecutive flushes have failed.
// Buffered commits are still kept and retried.
func (a *Archive) Failed() <-chan error {
	return a.failed
}

// Start begins flushing. The writer outlives ctx so that Stop can flush what is
// still buffered during shutdown.
func (a *Archive) Start(ctx context.Context) {
	a.commits.Start(context.WithoutCancel(ctx))
}

// Stop flushes pending commits and stops the writer.
func (a *Archive) Stop() {
	a.commits.Stop()
}

// Committed queues commit for archiving.
func (a *Archive) Committed(ctx context.Context, commit model.Commit) {
	if err := a.commits.Add(ctx, commit); err != nil {
		a.logger.Error("commit not archived", zap.String("txid", commit.TxID), zap.Error(err))
	}
}

// write runs on the batcher goroutine only.
func (a *Archive) write(ctx context.Context, commits []model.Commit) error {
	err := a.flush(ctx, commits)
	if err == nil {
		a.failures = 0
		return nil
	}
	a.failures++
	if a.maxFailures > 0 && a.failures == a.maxFailures {
		select {
		case a.failed <- fmt.Errorf("archive flush failed %d times: %w", a.failures, err):
		default:
		}
	}
	return err
}

// flush writes accounts before outputs and outputs before spends and entries, so a
// partially written batch never references rows that are missing from the archive.
func (a *Archive) flush(ctx context.Context, commits []model.Commit) error {
	var (
		accounts []model.Account
		txos     []clickhouse.TXORecord
		spends   []clickhouse.TXOSpend
		entries  []model.LedgerEntry
	)
	for _, commit := range commits {
		accounts = append(accounts, commit.NewAccounts...)
		for _, txo := range commit.Created {
			txos = append(txos, clickhouse.TXORecord{TXO: txo, RecordedAt: commit.CommittedAt})
		}
		for _, spent := range commit.Spent {
			spends = append(spends, clickhouse.TXOSpend{
				TxID:         spent.TxID,
				Vout:         spent.Vout,
				SpendingTxID: commit.TxID,
				SpentAt:      commit.CommittedAt,
			})
		}
		entries = append(entries, commit.Entries...)
	}

	if err := a.repo.InsertAccounts(ctx, accounts); err != nil {
		return fmt.Errorf("archive accounts: %w", err)
	}
	if err := a.repo.InsertTXOs(ctx, txos); err != nil {
		return fmt.Errorf("archive txos: %w", err)
	}
	if err := a.repo.InsertTXOSpends(ctx, spends); err != nil {
		return fmt.Errorf("archive txo spends: %w", err)
	}
	if err := a.repo.InsertLedgerEntries(ctx, entries); err != nil {
		return fmt.Errorf("archive ledger entries: %w", err)
	}
	a.logger.Debug("commits archived",
		zap.Int("commits", len(commits)),
		zap.Int("txos", len(txos)),
		zap.Int("spends", len(spends)),
		zap.Int("entries", len(entries)),
	)
	return nil
}

// RestoreStats counts what a warm start loaded.
type RestoreStats struct {
	Accounts int
	TXOs     int
	Spends   int
	Entries  int
	Skipped  int
}

// Restore loads the archived tables concurrently and replays them into the stores
// through their idempotent operations. Rows conflicting with already restored state
// are skipped and counted.
func (a *Archive) Restore(ctx context.Context, accounts AccountRestorer, txos TXORestorer, entries EntryRestorer) (RestoreStats, error) {
	var (
		stats          RestoreStats
		storedAccounts []model.Account
		storedTXOs     []model.TXO
		storedSpends   []clickhouse.TXOSpend
		storedEntries  []model.LedgerEntry
	)

	loaders := []func(context.Context) error{
		func(ctx context.Context) (err error) {
			if storedAccounts, err = a.repo.Accounts(ctx); err != nil {
				return fmt.Errorf("load accounts: %w", err)
			}
			return nil
		},
		func(ctx context.Context) (err error) {
			if storedTXOs, err = a.repo.TXOs(ctx); err != nil {
				return fmt.Errorf("load txos: %w", err)
			}
			return nil
		},
		func(ctx context.Context) (err error) {
			if storedSpends, err = a.repo.TXOSpends(ctx); err != nil {
				return fmt.Errorf("load txo spends: %w", err)
			}
			return nil
		},
		func(ctx context.Context) (err error) {
			if storedEntries, err = a.repo.LedgerEntries(ctx); err != nil {
				return fmt.Errorf("load ledger entries: %w", err)
			}
			return nil
		},
	}
	load := func(ctx context.Context, loader func(context.Context) error) error {
		return loader(ctx)
	}
	if err := workerpool.Process(ctx, len(loaders), loaders, load, nil); err != nil {
		return stats, err
	}

	for _, account := range storedAccounts {
		accounts.Restore(account)
		stats.Accounts++
	}

	for _, txo := range storedTXOs {
		if err := txos.RecordOutput(txo); err != nil {
			a.skip("txo", txo.OutPoint().String(), err)
			stats.Skipped++
			continue
		}
		stats.TXOs++
	}

	for _, spend := range storedSpends {
		point := model.OutPoint{TxID: spend.TxID, Vout: spend.Vout}
		if err := txos.MarkSpent(point, spend.SpendingTxID); err != nil {
			a.skip("txo spend", point.String(), err)
			stats.Skipped++
			continue
		}
		stats.Spends++
	}

	for _, entry := range storedEntries {
		if err := entries.Append(entry); err != nil {
			a.skip("ledger entry", entry.EntryID, err)
			stats.Skipped++
			continue
		}
		stats.Entries++
	}

	a.logger.Info("archive restored",
		zap.Int("accounts", stats.Accounts),
		zap.Int("txos", stats.TXOs),
		zap.Int("spends", stats.Spends),
		zap.Int("entries", stats.Entries),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

func (a *Archive) skip(kind, id string, err error) {
	var unknown *model.UnknownTXOError
	switch {
	case errors.As(err, &unknown):
		a.logger.Warn("archived spend references missing output", zap.String("id", id))
	case model.KindOf(err) == model.KindIntegrity:
		a.logger.Warn("archived row conflicts with restored state", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
	default:
		a.logger.Error("unexpected restore error", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
	}
}
