// Package entropy validates seed material before it reaches key generation
// or encapsulation. It cannot prove a seed is random, but it rejects the
// failure modes that actually occur in the field: a zeroed buffer from an
// unseeded or broken source, a constant fill pattern, and (optionally) a
// seed the process has already consumed.
package entropy

import (
	"crypto/sha256"
	"errors"
	"sync"
)

var (
	// ErrLowEntropy is returned for seeds that are structurally degenerate:
	// all-zero or a single repeated byte.
	ErrLowEntropy = errors.New("seed fails minimum entropy check")

	// ErrSeedReused is returned by a Tracker when it has seen the seed
	// before.
	ErrSeedReused = errors.New("seed was previously used")
)

// CheckSeed runs the stateless sanity checks on seed material. A nil or
// empty slice, an all-zero buffer, and a buffer of one repeated byte all
// fail. The check reads every byte regardless of content.
func CheckSeed(seed []byte) error {
	if len(seed) == 0 {
		return ErrLowEntropy
	}
	var diff byte
	for _, b := range seed {
		diff |= b ^ seed[0]
	}
	if diff == 0 {
		// Constant fill, including all-zero.
		return ErrLowEntropy
	}
	return nil
}

// Tracker remembers a bounded window of recently consumed seeds and rejects
// repeats. Seeds are stored as SHA-256 digests, never as raw material. The
// window is FIFO: once capacity is reached the oldest entry is forgotten.
//
// Safe for concurrent use.
type Tracker struct {
	mu    sync.Mutex
	seen  map[[sha256.Size]byte]struct{}
	order [][sha256.Size]byte
	next  int
	cap   int
}

// NewTracker creates a tracker remembering up to capacity seeds.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = 1
	}
	return &Tracker{
		seen:  make(map[[sha256.Size]byte]struct{}, capacity),
		order: make([][sha256.Size]byte, capacity),
		cap:   capacity,
	}
}

// Observe records a seed, reporting ErrSeedReused if it was seen within the
// tracking window.
func (t *Tracker) Observe(seed []byte) error {
	digest := sha256.Sum256(seed)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[digest]; ok {
		return ErrSeedReused
	}
	if len(t.seen) >= t.cap {
		oldest := t.order[t.next]
		delete(t.seen, oldest)
	}
	t.order[t.next] = digest
	t.next = (t.next + 1) % t.cap
	t.seen[digest] = struct{}{}
	return nil
}

// Len reports how many seeds are currently tracked.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
