// Package keylock provides striped read/write locks keyed by strings.
package keylock

import (
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const defaultStripes = 1024

// Locker maps keys onto a fixed set of RW mutexes. Keys that share a stripe serialize
// with each other; stripes are always acquired in ascending order, so callers locking
// several keys at once never deadlock.
type Locker struct {
	stripes []sync.RWMutex
}

// New constructs a Locker with the given number of stripes.
func New(stripes int) *Locker {
	if stripes <= 0 {
		stripes = defaultStripes
	}
	return &Locker{stripes: make([]sync.RWMutex, stripes)}
}

// Lock write-locks every key and returns the matching unlock function.
func (l *Locker) Lock(keys ...string) (unlock func()) {
	idx := l.indexes(keys)
	for _, i := range idx {
		l.stripes[i].Lock()
	}
	return func() {
		for j := len(idx) - 1; j >= 0; j-- {
			l.stripes[idx[j]].Unlock()
		}
	}
}

// RLock read-locks every key and returns the matching unlock function.
func (l *Locker) RLock(keys ...string) (unlock func()) {
	idx := l.indexes(keys)
	for _, i := range idx {
		l.stripes[i].RLock()
	}
	return func() {
		for j := len(idx) - 1; j >= 0; j-- {
			l.stripes[idx[j]].RUnlock()
		}
	}
}

func (l *Locker) indexes(keys []string) []int {
	idx := make([]int, 0, len(keys))
	n := uint64(len(l.stripes))
	for _, key := range keys {
		idx = append(idx, int(xxhash.Sum64String(key)%n))
	}
	slices.Sort(idx)
	return slices.Compact(idx)
}
