// Package keylock serializes work on string keys with a fixed set of striped mutexes.
//
// Keys hash onto stripes, so two unrelated keys may share a stripe and wait on
// each other. That costs throughput, never correctness.
package keylock

import (
	"hash/fnv"
	"slices"
	"sync"
)

const defaultStripes = 64

type Locker struct {
	stripes []sync.Mutex
}

// New creates a Locker with 2^power stripes. Power is clamped to [4, 10].
func New(power uint8) *Locker {
	if power < 4 {
		power = 4
	} else if power > 10 {
		power = 10
	}
	return &Locker{stripes: make([]sync.Mutex, 1<<power)}
}

// Default returns a Locker with 64 stripes.
func Default() *Locker {
	return &Locker{stripes: make([]sync.Mutex, defaultStripes)}
}

func (l *Locker) stripe(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() & uint32(len(l.stripes)-1))
}

// Lock acquires every stripe covering keys and returns the release func.
// Stripes are taken in ascending order so concurrent multi-key callers cannot deadlock.
func (l *Locker) Lock(keys ...string) (unlock func()) {
	idx := make([]int, 0, len(keys))
	for _, k := range keys {
		idx = append(idx, l.stripe(k))
	}
	slices.Sort(idx)
	idx = slices.Compact(idx)

	for _, i := range idx {
		l.stripes[i].Lock()
	}
	return func() {
		for j := len(idx) - 1; j >= 0; j-- {
			l.stripes[idx[j]].Unlock()
		}
	}
}
