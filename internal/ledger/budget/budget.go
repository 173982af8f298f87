// Package budget implements the error budget of a listener session.
package budget

import (
	"errors"
	"sync/atomic"
)

// ErrorBudget counts processing errors of one listener session and trips once the
// configured threshold is reached. The count only grows until Reset.
type ErrorBudget struct {
	count        atomic.Int64
	maxThreshold int64
}

// New constructs an ErrorBudget tripping at maxThreshold errors.
func New(maxThreshold int64) (*ErrorBudget, error) {
	if maxThreshold <= 0 {
		return nil, errors.New("max address parse error count must be positive")
	}
	return &ErrorBudget{maxThreshold: maxThreshold}, nil
}

// IncrementErrorCount adds one error.
func (b *ErrorBudget) IncrementErrorCount() {
	b.count.Add(1)
}

// AddErrorCount adds n errors. Non-positive values are ignored.
func (b *ErrorBudget) AddErrorCount(n int64) {
	if n <= 0 {
		return
	}
	b.count.Add(n)
}

// GetErrorCount returns the current count.
func (b *ErrorBudget) GetErrorCount() int64 {
	return b.count.Load()
}

// MaxErrorCountReached reports whether the count reached the threshold.
func (b *ErrorBudget) MaxErrorCountReached() bool {
	return b.count.Load() >= b.maxThreshold
}

// MaxThreshold returns the configured trip point.
func (b *ErrorBudget) MaxThreshold() int64 {
	return b.maxThreshold
}

// Reset clears the count. Only a session start may call it.
func (b *ErrorBudget) Reset() {
	b.count.Store(0)
}
