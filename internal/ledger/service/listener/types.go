package listener

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/feed"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		ProcessTransaction(ctx context.Context, tx model.Transaction) (model.ProcessResult, error)
		Lookup(outPoint model.OutPoint) (model.TXO, bool)
	}
	Feed interface {
		Messages(ctx context.Context) (<-chan feed.Message, error)
	}
	ErrorBudget interface {
		Reset()
		IncrementErrorCount()
		GetErrorCount() int64
		MaxErrorCountReached() bool
	}
	Metrics interface {
		ObserveMessage(outcome string)
		SetParked(n int)
		SetErrorCount(n int64)
	}
)

// RestoreFunc warm-starts the ledger stores before the feed is consumed.
type RestoreFunc func(ctx context.Context) error
