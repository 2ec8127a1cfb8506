package mlkem

import (
	"crypto/rand"
	"sort"
	"testing"
	"time"
)

// Timing-distribution checks for the secret-dependent paths. A statistical
// test cannot prove constant-time behavior, but it catches the gross
// regressions: an early exit in the reject path or a branch on the
// comparison result separates the accept and reject distributions by far
// more than the tolerance here.

func medianDuration(samples []time.Duration) time.Duration {
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return samples[len(samples)/2]
}

func TestDecapsulateTimingIndependence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing-distribution test in short mode")
	}

	p := MLKEM768
	ek, dk, err := KeyGen(p, mustSeed(t))
	if err != nil {
		t.Fatalf("KeyGen() error = %v", err)
	}
	m := make([]byte, MessageSize)
	if _, err := rand.Read(m); err != nil {
		t.Fatal(err)
	}
	valid, _, err := Encapsulate(p, ek, m)
	if err != nil {
		t.Fatalf("Encapsulate() error = %v", err)
	}
	tampered := make([]byte, len(valid))
	copy(tampered, valid)
	tampered[0] ^= 0x01

	// Warm up caches and the twiddle tables.
	for i := 0; i < 50; i++ {
		Decapsulate(p, dk, valid)
		Decapsulate(p, dk, tampered)
	}

	// Interleave the two cases so clock drift and scheduler noise hit both
	// distributions equally.
	const rounds = 1000
	accept := make([]time.Duration, 0, rounds)
	reject := make([]time.Duration, 0, rounds)
	for i := 0; i < rounds; i++ {
		start := time.Now()
		Decapsulate(p, dk, valid)
		accept = append(accept, time.Since(start))

		start = time.Now()
		Decapsulate(p, dk, tampered)
		reject = append(reject, time.Since(start))
	}

	ma, mr := medianDuration(accept), medianDuration(reject)
	lo, hi := ma, mr
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi > lo+lo/2 {
		t.Errorf("decapsulation timing differs between accept and reject paths: accept median %v, reject median %v", ma, mr)
	}
}
