package service

import (
	"context"
	"iter"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/txostore"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	TXOStore interface {
		Lookup(outPoint model.OutPoint) (model.TXO, bool)
		UnspentFor(address, asset string) iter.Seq[model.TXO]
		Apply(batch txostore.Batch) (func(), error)
	}
	EntryStore interface {
		Lookup(key model.EntryKey) (model.LedgerEntry, bool)
		AppendBatch(entries []model.LedgerEntry) (func(), error)
		SumBalance(accountRef, asset string) int64
		Balances(accountRef string) map[string]int64
		EntriesForTx(txid string) []model.LedgerEntry
	}
	AccountRegistry interface {
		Get(address string) (model.Account, bool)
		Ensure(address string) (model.Account, bool)
	}
	ChainResolver interface {
		ResolveAddress(address string) (string, error)
		ValidateTxID(txid string) error
	}
	ErrorCounter interface {
		IncrementErrorCount()
	}
	Publisher interface {
		Publish(ctx context.Context, event model.NotificationEvent) error
	}
	CommitObserver interface {
		Committed(ctx context.Context, commit model.Commit)
	}
	LedgerMetrics interface {
		ObserveProcess(err error, replayed bool, started time.Time)
	}
)
