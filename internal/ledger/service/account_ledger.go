// Package service contains the reconciliation engine that applies upstream
// transactions to the TXO set and the ledger journal.
package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/txostore"
	"github.com/goodnatureofminers/blockinsight7000-ledger/pkg/keylock"
	"github.com/goodnatureofminers/blockinsight7000-ledger/pkg/safe"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultChannelPrefix = "ledger"
	defaultLockStripes   = 4096

	// inputs recorded concurrently between the optimistic read and locking force a retry
	maxLockAttempts = 3
)

// AccountLedger reconciles upstream transactions into the TXO set and the ledger
// journal. Mutations are serialized per TXO and per (address, asset) pair.
type AccountLedger struct {
	txos      TXOStore
	entries   EntryStore
	accounts  AccountRegistry
	chain     ChainResolver
	budget    ErrorCounter
	publisher Publisher
	observers []CommitObserver
	clock     clock.Clock
	metrics   LedgerMetrics
	logger    *zap.Logger

	locks         *keylock.Locker
	channelPrefix string
	newEntryID    func() string
}

// Option customizes an AccountLedger.
type Option func(*AccountLedger)

// WithChannelPrefix sets the prefix of per-account notification channels.
func WithChannelPrefix(prefix string) Option {
	return func(l *AccountLedger) {
		if prefix != "" {
			l.channelPrefix = prefix
		}
	}
}

// WithCommitObserver registers an observer called after every commit, before notifications.
func WithCommitObserver(observer CommitObserver) Option {
	return func(l *AccountLedger) {
		if observer != nil {
			l.observers = append(l.observers, observer)
		}
	}
}

// WithLockStripes sets the number of lock stripes.
func WithLockStripes(n int) Option {
	return func(l *AccountLedger) {
		l.locks = keylock.New(n)
	}
}

// NewAccountLedger builds an AccountLedger with dependencies.
func NewAccountLedger(
	txos TXOStore,
	entries EntryStore,
	accounts AccountRegistry,
	chain ChainResolver,
	budget ErrorCounter,
	publisher Publisher,
	c clock.Clock,
	metrics LedgerMetrics,
	logger *zap.Logger,
	opts ...Option,
) (*AccountLedger, error) {
	switch {
	case txos == nil:
		return nil, errors.New("txo store is required")
	case entries == nil:
		return nil, errors.New("entry store is required")
	case accounts == nil:
		return nil, errors.New("account registry is required")
	case chain == nil:
		return nil, errors.New("chain resolver is required")
	case budget == nil:
		return nil, errors.New("error budget is required")
	case publisher == nil:
		return nil, errors.New("publisher is required")
	case c == nil:
		return nil, errors.New("clock is required")
	case metrics == nil:
		return nil, errors.New("ledger metrics is required")
	}

	l := &AccountLedger{
		txos:          txos,
		entries:       entries,
		accounts:      accounts,
		chain:         chain,
		budget:        budget,
		publisher:     publisher,
		clock:         c,
		metrics:       metrics,
		logger:        logger,
		locks:         keylock.New(defaultLockStripes),
		channelPrefix: defaultChannelPrefix,
		newEntryID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// ProcessTransaction applies tx to the ledger. The returned error is a
// *model.DeliveryError when the ledger committed but a notification failed; the
// result is valid in that case.
func (l *AccountLedger) ProcessTransaction(ctx context.Context, tx model.Transaction) (result model.ProcessResult, err error) {
	started := time.Now()
	defer func() {
		l.metrics.ObserveProcess(err, result.Replayed, started)
	}()

	commit, result, err := l.commit(tx)
	if err != nil {
		l.reject(tx, err)
		return model.ProcessResult{TxID: tx.TxID}, err
	}
	if result.Replayed {
		l.logger.Debug("transaction already applied", zap.String("txid", tx.TxID))
		return result, nil
	}

	l.logger.Debug("transaction committed",
		zap.String("txid", tx.TxID),
		zap.Int("spent", len(commit.Spent)),
		zap.Int("created", len(commit.Created)),
		zap.Int("entries", len(commit.Entries)),
	)

	for _, observer := range l.observers {
		observer.Committed(ctx, commit)
	}

	if err = l.notify(ctx, tx.TxID, result); err != nil {
		l.logger.Warn("transaction committed but notification failed", zap.String("txid", tx.TxID), zap.Error(err))
	}
	return result, err
}

// Lookup returns the output identified by outPoint.
func (l *AccountLedger) Lookup(outPoint model.OutPoint) (model.TXO, bool) {
	unlock := l.locks.RLock(txoKey(outPoint))
	defer unlock()

	return l.txos.Lookup(outPoint)
}

// UnspentFor yields the unspent outputs of address in asset. Every pass reads a
// snapshot consistent with committed transactions.
func (l *AccountLedger) UnspentFor(address, asset string) iter.Seq[model.TXO] {
	return func(yield func(model.TXO) bool) {
		unlock := l.locks.RLock(holdingKey(address, asset))
		snapshot := slices.Collect(l.txos.UnspentFor(address, asset))
		unlock()

		for _, txo := range snapshot {
			if !yield(txo) {
				return
			}
		}
	}
}

// SumBalance aggregates the journal of the account of address in asset.
func (l *AccountLedger) SumBalance(address, asset string) int64 {
	unlock := l.locks.RLock(holdingKey(address, asset))
	defer unlock()

	account, ok := l.accounts.Get(address)
	if !ok {
		return 0
	}
	return l.entries.SumBalance(account.AccountID, asset)
}

// Account returns the account of address with its cached balances.
func (l *AccountLedger) Account(address string) (model.Account, bool) {
	account, ok := l.accounts.Get(address)
	if !ok {
		return model.Account{}, false
	}
	account.Balances = l.entries.Balances(account.AccountID)
	return account, true
}

func (l *AccountLedger) reject(tx model.Transaction, err error) {
	switch model.KindOf(err) {
	case model.KindMalformed:
		l.budget.IncrementErrorCount()
		l.logger.Warn("malformed transaction rejected", zap.String("txid", tx.TxID), zap.Error(err))
	case model.KindUnresolved:
		l.logger.Debug("transaction inputs not resolved yet", zap.String("txid", tx.TxID), zap.Error(err))
	case model.KindIntegrity:
		l.logger.Error("transaction violates ledger integrity", zap.String("txid", tx.TxID), zap.Error(err))
	default:
		l.logger.Error("transaction processing failed", zap.String("txid", tx.TxID), zap.Error(err))
	}
}

func (l *AccountLedger) commit(tx model.Transaction) (model.Commit, model.ProcessResult, error) {
	outputs, err := l.normalize(tx)
	if err != nil {
		return model.Commit{}, model.ProcessResult{}, err
	}

	for attempt := 1; ; attempt++ {
		keys, resolved := l.lockKeys(tx, outputs)
		unlock := l.locks.Lock(keys...)

		commit, result, err := l.commitLocked(tx, outputs, resolved)
		unlock()
		if errors.Is(err, errInputsMoved) && attempt < maxLockAttempts {
			continue
		}
		if errors.Is(err, errInputsMoved) {
			return model.Commit{}, model.ProcessResult{}, fmt.Errorf("lock inputs of tx %s: %w", tx.TxID, err)
		}
		return commit, result, err
	}
}

var errInputsMoved = errors.New("inputs appeared while acquiring locks")

// lockKeys reads the inputs optimistically: address and asset of a recorded output
// never change, so the keys stay valid unless an input is recorded concurrently.
func (l *AccountLedger) lockKeys(tx model.Transaction, outputs []model.TXO) ([]string, map[model.OutPoint]bool) {
	keys := make([]string, 0, 2*(len(tx.Inputs)+len(outputs)))
	resolved := make(map[model.OutPoint]bool, len(tx.Inputs))
	for _, in := range tx.Inputs {
		keys = append(keys, txoKey(in))
		if txo, ok := l.txos.Lookup(in); ok {
			keys = append(keys, holdingKey(txo.Address, txo.Asset))
			resolved[in] = true
		}
	}
	for _, out := range outputs {
		keys = append(keys, txoKey(out.OutPoint()), holdingKey(out.Address, out.Asset))
	}
	return keys, resolved
}

type balanceKey struct {
	address string
	asset   string
}

func (l *AccountLedger) commitLocked(tx model.Transaction, outputs []model.TXO, resolved map[model.OutPoint]bool) (model.Commit, model.ProcessResult, error) {
	inputs := make([]model.TXO, 0, len(tx.Inputs))
	var missing []model.OutPoint
	for _, in := range tx.Inputs {
		txo, ok := l.txos.Lookup(in)
		if !ok {
			missing = append(missing, in)
			continue
		}
		inputs = append(inputs, txo)
	}
	// unknown inputs are retryable and win over conflicts on the known ones
	if len(missing) > 0 {
		return model.Commit{}, model.ProcessResult{}, &model.UnresolvedInputError{TxID: tx.TxID, Missing: missing}
	}
	for _, txo := range inputs {
		point := txo.OutPoint()
		if !resolved[point] {
			return model.Commit{}, model.ProcessResult{}, errInputsMoved
		}
		if txo.Spent && txo.SpendingTxID != tx.TxID {
			return model.Commit{}, model.ProcessResult{}, &model.ConflictingSpendError{TxID: tx.TxID, OutPoint: point, SpendingTxID: txo.SpendingTxID}
		}
	}

	var batch txostore.Batch
	for _, in := range inputs {
		if !in.Spent {
			batch.Spends = append(batch.Spends, txostore.Spend{OutPoint: in.OutPoint(), SpendingTxID: tx.TxID})
		}
	}
	for _, out := range outputs {
		existing, ok := l.txos.Lookup(out.OutPoint())
		if !ok {
			batch.Outputs = append(batch.Outputs, out)
			continue
		}
		if !existing.SameOutput(out) {
			return model.Commit{}, model.ProcessResult{}, &model.DuplicateTXOError{Existing: existing, Incoming: out}
		}
	}

	nets, err := netAmounts(tx.TxID, inputs, outputs)
	if err != nil {
		return model.Commit{}, model.ProcessResult{}, err
	}
	pendingNets, err := l.pendingEntries(tx.TxID, nets)
	if err != nil {
		return model.Commit{}, model.ProcessResult{}, err
	}

	if len(batch.Spends) == 0 && len(batch.Outputs) == 0 && len(pendingNets) == 0 {
		return model.Commit{}, l.replayResult(tx, inputs, outputs), nil
	}

	undoTXOs, err := l.txos.Apply(batch)
	if err != nil {
		return model.Commit{}, model.ProcessResult{}, fmt.Errorf("apply txo batch: %w", err)
	}

	now := l.clock.Now()
	commit := model.Commit{TxID: tx.TxID, CommittedAt: now, Created: batch.Outputs}
	entries := make([]model.LedgerEntry, 0, len(pendingNets))
	for _, n := range pendingNets {
		account, created := l.accounts.Ensure(n.key.address)
		if created {
			commit.NewAccounts = append(commit.NewAccounts, account)
		}
		entries = append(entries, model.LedgerEntry{
			EntryID:    l.newEntryID(),
			AccountRef: account.AccountID,
			Address:    n.key.address,
			Asset:      n.key.asset,
			Amount:     n.amount,
			TxID:       tx.TxID,
			CreatedAt:  now,
			Type:       model.EntryTypeFor(n.amount),
		})
	}
	if _, err := l.entries.AppendBatch(entries); err != nil {
		undoTXOs()
		if errors.Is(err, safe.ErrOverflow) {
			return model.Commit{}, model.ProcessResult{}, &model.MalformedTransactionError{TxID: tx.TxID, Reason: "account balance", Err: err}
		}
		return model.Commit{}, model.ProcessResult{}, fmt.Errorf("append ledger entries: %w", err)
	}

	for _, spend := range batch.Spends {
		for _, in := range inputs {
			if in.OutPoint() == spend.OutPoint {
				in.Spent = true
				in.SpendingTxID = tx.TxID
				commit.Spent = append(commit.Spent, in)
			}
		}
	}
	commit.Entries = entries

	result := model.ProcessResult{
		TxID:    tx.TxID,
		Spent:   spentPoints(commit.Spent),
		Created: commit.Created,
		Entries: entries,
	}
	result.Accounts = l.affectedAccounts(entries)
	return commit, result, nil
}

type netAmount struct {
	key    balanceKey
	amount int64
}

// netAmounts sums debits of inputs and credits of outputs per (address, asset).
// Pairs netting to zero are dropped.
func netAmounts(txid string, inputs, outputs []model.TXO) ([]netAmount, error) {
	sums := make(map[balanceKey]int64)
	add := func(txo model.TXO, amount int64) error {
		key := balanceKey{address: txo.Address, asset: txo.Asset}
		sum, err := safe.Add(sums[key], amount)
		if err != nil {
			return &model.MalformedTransactionError{TxID: txid, Reason: fmt.Sprintf("amount of %s in %s", key.address, key.asset), Err: err}
		}
		sums[key] = sum
		return nil
	}
	for _, in := range inputs {
		if err := add(in, -in.Amount); err != nil {
			return nil, err
		}
	}
	for _, out := range outputs {
		if err := add(out, out.Amount); err != nil {
			return nil, err
		}
	}

	nets := make([]netAmount, 0, len(sums))
	for key, amount := range sums {
		if amount != 0 {
			nets = append(nets, netAmount{key: key, amount: amount})
		}
	}
	slices.SortFunc(nets, func(a, b netAmount) int {
		if c := cmp.Compare(a.key.address, b.key.address); c != 0 {
			return c
		}
		return cmp.Compare(a.key.asset, b.key.asset)
	})
	return nets, nil
}

// pendingEntries drops nets already journaled with the same amount and rejects those
// journaled with a different one.
func (l *AccountLedger) pendingEntries(txid string, nets []netAmount) ([]netAmount, error) {
	pending := make([]netAmount, 0, len(nets))
	for _, n := range nets {
		account, ok := l.accounts.Get(n.key.address)
		if !ok {
			pending = append(pending, n)
			continue
		}
		key := model.EntryKey{AccountRef: account.AccountID, TxID: txid, Asset: n.key.asset}
		existing, ok := l.entries.Lookup(key)
		if !ok {
			pending = append(pending, n)
			continue
		}
		if existing.Amount != n.amount {
			return nil, &model.DuplicateEntryError{Key: key, Existing: existing.Amount, Incoming: n.amount}
		}
	}
	return pending, nil
}

func (l *AccountLedger) replayResult(tx model.Transaction, inputs, outputs []model.TXO) model.ProcessResult {
	entries := l.entries.EntriesForTx(tx.TxID)
	created := make([]model.TXO, 0, len(outputs))
	for _, out := range outputs {
		if txo, ok := l.txos.Lookup(out.OutPoint()); ok {
			created = append(created, txo)
		}
	}
	spent := make([]model.OutPoint, 0, len(inputs))
	for _, in := range inputs {
		spent = append(spent, in.OutPoint())
	}
	return model.ProcessResult{
		TxID:     tx.TxID,
		Replayed: true,
		Spent:    spent,
		Created:  created,
		Entries:  entries,
		Accounts: l.affectedAccounts(entries),
	}
}

func (l *AccountLedger) affectedAccounts(entries []model.LedgerEntry) []model.Account {
	seen := make(map[string]struct{}, len(entries))
	result := make([]model.Account, 0, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.Address]; ok {
			continue
		}
		seen[entry.Address] = struct{}{}
		if account, ok := l.Account(entry.Address); ok {
			result = append(result, account)
		}
	}
	return result
}

func spentPoints(txos []model.TXO) []model.OutPoint {
	points := make([]model.OutPoint, 0, len(txos))
	for _, txo := range txos {
		points = append(points, txo.OutPoint())
	}
	return points
}

func txoKey(point model.OutPoint) string {
	return "txo:" + point.String()
}

func holdingKey(address, asset string) string {
	return "holding:" + address + "/" + asset
}
