// Package sampler provides the shuffling and deduplication helpers used to
// build quizzes. Randomness is injected through Rand so callers can replay a
// deterministic sequence.
package sampler

import (
	"math/rand"
	"sync"
)

// Rand is the source of randomness used by the sampler.
type Rand interface {
	// Intn returns a non-negative pseudo-random number in [0,n).
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// Global returns a Rand backed by the process-wide math/rand source.
// It is safe for concurrent use.
func Global() Rand {
	return globalRand{}
}

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// NewSeeded returns a deterministic Rand for the given seed.
func NewSeeded(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

// Shuffle returns a uniformly random permutation of in (Fisher–Yates).
// The input slice is not modified.
func Shuffle[T any](r Rand, in []T) []T {
	out := append([]T(nil), in...)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Unique removes duplicates while preserving the first-seen order.
func Unique[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Without returns a copy of in with every occurrence of v removed.
func Without[T comparable](in []T, v T) []T {
	out := make([]T, 0, len(in))
	for _, x := range in {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// Pick returns a uniformly random element of in. It panics on an empty slice.
func Pick[T any](r Rand, in []T) T {
	return in[r.Intn(len(in))]
}
