// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	maxRetryBackoffFactor = 32
	stopFlushAttempts     = 3
)

// Batcher buffers items and flushes them either by size or interval. A batch whose
// flush fails stays buffered and is retried with backoff together with the items
// queued meanwhile.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	retryBackoff    time.Duration
	maxRetryBackoff time.Duration

	wg   sync.WaitGroup
	stop chan struct{}
}

// New constructs a Batcher.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, flushSize int, flushInterval time.Duration, rps int) *Batcher[T] {
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		itemsCh:       make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rl:            ratelimit.New(rps),
		stop:          make(chan struct{}),

		retryBackoff:    flushInterval,
		maxRetryBackoff: maxRetryBackoffFactor * flushInterval,
	}
}

// WithRetryBackoff sets the wait after a failed flush, doubled per consecutive failure
// up to maxBackoff. Zero values keep the defaults. It must be called before Start.
func (b *Batcher[T]) WithRetryBackoff(initial, maxBackoff time.Duration) *Batcher[T] {
	if initial > 0 {
		b.retryBackoff = initial
	}
	if maxBackoff > 0 {
		b.maxRetryBackoff = maxBackoff
	}
	b.maxRetryBackoff = max(b.maxRetryBackoff, b.retryBackoff)
	return b
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop stops the background flushing loop.
func (b *Batcher[T]) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)

	var (
		failures int
		retryAt  time.Time
	)

	flush := func() bool {
		if len(buf) == 0 {
			return true
		}

		b.rl.Take()
		if err := b.flushCallback(ctx, buf); err != nil {
			failures++
			backoff := b.backoff(failures)
			retryAt = time.Now().Add(backoff)
			b.logger.Error("batch not flushed, kept for retry",
				zap.Int("size", len(buf)),
				zap.Int("failures", failures),
				zap.Duration("retry_in", backoff),
				zap.Error(err),
			)
			return false
		}
		b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		failures = 0
		retryAt = time.Time{}
		buf = buf[:0]
		return true
	}

	due := func() bool {
		return !time.Now().Before(retryAt)
	}

	final := func() {
		for attempt := 1; !flush(); attempt++ {
			if attempt >= stopFlushAttempts {
				b.logger.Error("batch dropped on shutdown", zap.Int("size", len(buf)), zap.Int("failures", failures))
				return
			}
			time.Sleep(b.backoff(failures))
		}
	}

	// queued items are flushed with the final batch
	drain := func() {
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
			default:
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			final()
			return

		case <-b.stop:
			drain()
			final()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.flushSize && due() {
				flush()
			}

		case <-ticker.C:
			if due() {
				flush()
			}
		}
	}
}

func (b *Batcher[T]) backoff(failures int) time.Duration {
	backoff := b.retryBackoff
	for i := 1; i < failures && backoff < b.maxRetryBackoff; i++ {
		backoff *= 2
	}
	return min(backoff, b.maxRetryBackoff)
}
