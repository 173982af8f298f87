// Package listener runs a feed consumption session around the account ledger.
package listener

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/feed"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	"github.com/goodnatureofminers/blockinsight7000-ledger/pkg/workerpool"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"
)

var (
	// ErrErrorBudgetExhausted ends a session once the error budget trips.
	ErrErrorBudgetExhausted = errors.New("error budget exhausted")
	// ErrFeedClosed ends a session when the broker closes the delivery stream.
	ErrFeedClosed = errors.New("feed closed")
)

const (
	outcomeCommitted      = "committed"
	outcomeReplayed       = "replayed"
	outcomeDeliveryFailed = "delivery_failed"
	outcomeMalformed      = "malformed"
	outcomeIntegrity      = "integrity"
	outcomeParked         = "parked"
	outcomeExpired        = "expired"
	outcomeDuplicate      = "duplicate"
)

const (
	defaultWorkers    = 1
	defaultPendingTTL = 5 * time.Minute
	// percent of the prefetch window parked transactions may hold before a warning
	parkedWarnPercent = 90
)

// Config tunes a Session. Prefetch is the broker's window of unacknowledged
// deliveries; parked transactions hold on to theirs, so the session warns when they
// come close to filling it. Zero disables the warning.
type Config struct {
	Workers    int
	PendingTTL time.Duration
	Prefetch   int
}

// parked is a transaction waiting for outputs the ledger has not seen yet. Its
// delivery stays unacknowledged until the transaction commits or expires.
type parked struct {
	msg      feed.Message
	missing  []model.OutPoint
	deadline time.Time
}

// Session consumes the feed and applies the acknowledgement policy for each outcome
// of the ledger.
type Session struct {
	ledger     Ledger
	feed       Feed
	budget     ErrorBudget
	restore    RestoreFunc
	metrics    Metrics
	clock      clock.Clock
	logger     *zap.Logger
	workers    int
	pendingTTL time.Duration
	warnParked int

	mu      sync.Mutex
	parked  *ttlcache.Cache[string, parked]
	waiting map[model.OutPoint]map[string]struct{}
	stop    context.CancelCauseFunc
}

// New constructs a Session. restore may be nil when there is nothing to warm-start from.
func New(
	ledger Ledger,
	source Feed,
	budget ErrorBudget,
	restore RestoreFunc,
	metrics Metrics,
	c clock.Clock,
	cfg Config,
	logger *zap.Logger,
) (*Session, error) {
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if source == nil {
		return nil, errors.New("feed is required")
	}
	if budget == nil {
		return nil, errors.New("error budget is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	if c == nil {
		c = clock.System{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = defaultPendingTTL
	}
	return &Session{
		ledger:     ledger,
		feed:       source,
		budget:     budget,
		restore:    restore,
		metrics:    metrics,
		clock:      c,
		logger:     logger,
		workers:    cfg.Workers,
		pendingTTL: cfg.PendingTTL,
		warnParked: parkedWarnLevel(cfg.Prefetch),
	}, nil
}

// Run resets the error budget, restores the ledger and drains the feed until ctx is
// done, the feed closes or the error budget trips. Parked deliveries are left
// unacknowledged on return, so the broker redelivers them to the next session.
func (s *Session) Run(ctx context.Context) error {
	s.budget.Reset()
	s.metrics.SetErrorCount(0)

	if s.restore != nil {
		if err := s.restore(ctx); err != nil {
			return fmt.Errorf("restore ledger: %w", err)
		}
	}

	ctx, stop := context.WithCancelCause(ctx)
	defer stop(nil)

	cache := ttlcache.New[string, parked](ttlcache.WithDisableTouchOnHit[string, parked]())
	s.mu.Lock()
	s.parked = cache
	s.waiting = make(map[model.OutPoint]map[string]struct{})
	s.stop = stop
	s.mu.Unlock()

	unsubscribe := cache.OnEviction(s.evicted)
	go cache.Start()
	defer func() {
		cache.Stop()
		unsubscribe()
		s.metrics.SetParked(0)
	}()

	msgs, err := s.feed.Messages(ctx)
	if err != nil {
		return fmt.Errorf("consume feed: %w", err)
	}
	s.logger.Info("listener session started", zap.Int("workers", s.workers), zap.Duration("pending_ttl", s.pendingTTL))

	err = workerpool.Drain(ctx, s.workers, msgs, s.handle)
	switch {
	case errors.Is(err, ErrErrorBudgetExhausted), errors.Is(context.Cause(ctx), ErrErrorBudgetExhausted):
		s.logger.Error("error budget exhausted", zap.Int64("errors", s.budget.GetErrorCount()))
		return ErrErrorBudgetExhausted
	case err != nil:
		return err
	}
	return ErrFeedClosed
}

// Parked returns the number of transactions waiting for unknown inputs.
func (s *Session) Parked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.parked == nil {
		return 0
	}
	return s.parked.Len()
}

func (s *Session) handle(ctx context.Context, msg feed.Message) error {
	queue := []parked{{msg: msg}}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		queue = append(queue, s.process(ctx, next)...)
	}

	s.metrics.SetErrorCount(s.budget.GetErrorCount())
	if s.budget.MaxErrorCountReached() {
		return ErrErrorBudgetExhausted
	}
	return nil
}

// process settles one delivery and returns the transactions that became ready to
// retry because of it.
func (s *Session) process(ctx context.Context, p parked) []parked {
	logger := s.logger.With(zap.String("txid", p.msg.TxID()))

	if p.msg.Err != nil {
		s.budget.IncrementErrorCount()
		logger.Warn("undecodable feed message rejected", zap.Error(p.msg.Err))
		s.reject(p.msg, outcomeMalformed)
		return nil
	}

	result, err := s.ledger.ProcessTransaction(ctx, p.msg.Transaction)
	if err == nil {
		outcome := outcomeCommitted
		if result.Replayed {
			outcome = outcomeReplayed
		}
		s.ack(p.msg, outcome)
		return s.unpark(result.Created)
	}

	switch model.KindOf(err) {
	case model.KindDelivery:
		logger.Warn("committed transaction not fully delivered", zap.Error(err))
		s.ack(p.msg, outcomeDeliveryFailed)
		return s.unpark(result.Created)
	case model.KindMalformed:
		s.reject(p.msg, outcomeMalformed)
	case model.KindUnresolved:
		var unresolved *model.UnresolvedInputError
		if !errors.As(err, &unresolved) {
			logger.Error("unresolved transaction without missing inputs", zap.Error(err))
			s.reject(p.msg, outcomeIntegrity)
			return nil
		}
		if s.park(&p, unresolved.Missing) {
			return []parked{p}
		}
	default:
		logger.Error("transaction halted for review", zap.Error(err))
		s.reject(p.msg, outcomeIntegrity)
	}
	return nil
}

// park holds p until one of its missing outputs commits. It reports true when an
// output appeared in the meantime and p should be retried right away.
func (s *Session) park(p *parked, missing []model.OutPoint) (retry bool) {
	now := s.clock.Now()
	if p.deadline.IsZero() {
		p.deadline = now.Add(s.pendingTTL)
	}
	ttl := p.deadline.Sub(now)
	if ttl <= 0 {
		s.expire(*p)
		return false
	}
	txid := p.msg.TxID()
	p.missing = missing

	s.mu.Lock()
	// checked under mu so a concurrent unpark either sees the waiter or the
	// output is already visible here
	for _, point := range missing {
		if _, ok := s.ledger.Lookup(point); ok {
			s.mu.Unlock()
			return true
		}
	}
	if s.parked.Get(txid) != nil {
		s.mu.Unlock()
		s.logger.Debug("transaction already parked", zap.String("txid", txid))
		s.ack(p.msg, outcomeDuplicate)
		return false
	}
	for _, point := range missing {
		waiters, ok := s.waiting[point]
		if !ok {
			waiters = make(map[string]struct{})
			s.waiting[point] = waiters
		}
		waiters[txid] = struct{}{}
	}
	s.parked.Set(txid, *p, ttl)
	n := s.parked.Len()
	s.mu.Unlock()

	s.logger.Debug("transaction parked",
		zap.String("txid", txid),
		zap.Int("missing", len(missing)),
		zap.Time("deadline", p.deadline),
	)
	s.metrics.ObserveMessage(outcomeParked)
	s.metrics.SetParked(n)
	if s.warnParked > 0 && n == s.warnParked {
		s.logger.Warn("parked transactions are filling the feed prefetch window",
			zap.Int("parked", n),
			zap.Int("warn_at", s.warnParked),
		)
	}
	return false
}

func parkedWarnLevel(prefetch int) int {
	if prefetch <= 0 {
		return 0
	}
	return max(1, prefetch*parkedWarnPercent/100)
}

func (s *Session) unpark(created []model.TXO) []parked {
	if len(created) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var ready []parked
	for _, txo := range created {
		point := txo.OutPoint()
		for txid := range s.waiting[point] {
			item := s.parked.Get(txid)
			if item == nil {
				continue
			}
			p := item.Value()
			s.forget(txid, p.missing)
			s.parked.Delete(txid)
			ready = append(ready, p)
		}
		delete(s.waiting, point)
	}
	if len(ready) > 0 {
		s.metrics.SetParked(s.parked.Len())
	}
	return ready
}

// forget drops txid from the waiter index. Callers hold mu.
func (s *Session) forget(txid string, missing []model.OutPoint) {
	for _, point := range missing {
		waiters := s.waiting[point]
		delete(waiters, txid)
		if len(waiters) == 0 {
			delete(s.waiting, point)
		}
	}
}

func (s *Session) evicted(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, parked]) {
	if reason != ttlcache.EvictionReasonExpired {
		return
	}
	// not run inline so the cache lock is never held while waiting for mu
	go s.expire(item.Value())
}

func (s *Session) expire(p parked) {
	txid := p.msg.TxID()

	s.mu.Lock()
	s.forget(txid, p.missing)
	stop := s.stop
	s.mu.Unlock()

	s.budget.IncrementErrorCount()
	s.metrics.SetErrorCount(s.budget.GetErrorCount())
	s.logger.Warn("unresolved transaction expired", zap.String("txid", txid), zap.Int("missing", len(p.missing)))
	s.reject(p.msg, outcomeExpired)

	if s.budget.MaxErrorCountReached() && stop != nil {
		stop(ErrErrorBudgetExhausted)
	}
}

func (s *Session) ack(msg feed.Message, outcome string) {
	s.metrics.ObserveMessage(outcome)
	if err := msg.Ack(); err != nil {
		s.logger.Error("ack feed message", zap.String("txid", msg.TxID()), zap.Error(err))
	}
}

func (s *Session) reject(msg feed.Message, outcome string) {
	s.metrics.ObserveMessage(outcome)
	if err := msg.Reject(false); err != nil {
		s.logger.Error("reject feed message", zap.String("txid", msg.TxID()), zap.Error(err))
	}
}
