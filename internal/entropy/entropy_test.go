package entropy

import (
	"bytes"
	"errors"
	"testing"
)

func TestCheckSeed(t *testing.T) {
	tests := []struct {
		name    string
		seed    []byte
		wantErr bool
	}{
		{"nil", nil, true},
		{"empty", []byte{}, true},
		{"all zero", make([]byte, 64), true},
		{"repeated byte", bytes.Repeat([]byte{0xaa}, 64), true},
		{"single varying byte", append(make([]byte, 63), 1), false},
		{"plausible", []byte{3, 141, 59, 26, 53, 58, 97, 93}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSeed(tt.seed)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckSeed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrLowEntropy) {
				t.Errorf("CheckSeed() error = %v, want ErrLowEntropy", err)
			}
		})
	}
}

func TestTrackerRejectsRepeat(t *testing.T) {
	tr := NewTracker(8)
	seed := []byte("first seed material")

	if err := tr.Observe(seed); err != nil {
		t.Fatalf("Observe() error = %v", err)
	}
	if err := tr.Observe(seed); !errors.Is(err, ErrSeedReused) {
		t.Errorf("Observe() error = %v, want ErrSeedReused", err)
	}
}

func TestTrackerWindowEviction(t *testing.T) {
	tr := NewTracker(2)

	if err := tr.Observe([]byte{1}); err != nil {
		t.Fatal(err)
	}
	if err := tr.Observe([]byte{2}); err != nil {
		t.Fatal(err)
	}
	// Third observation evicts the first.
	if err := tr.Observe([]byte{3}); err != nil {
		t.Fatal(err)
	}
	if got := tr.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	// The evicted seed is accepted again.
	if err := tr.Observe([]byte{1}); err != nil {
		t.Errorf("Observe() of evicted seed error = %v", err)
	}
	// The still-tracked seed is not.
	if err := tr.Observe([]byte{3}); !errors.Is(err, ErrSeedReused) {
		t.Errorf("Observe() error = %v, want ErrSeedReused", err)
	}
}

func TestTrackerConcurrent(t *testing.T) {
	tr := NewTracker(1024)
	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				tr.Observe([]byte{byte(g), byte(i)})
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}
	if got := tr.Len(); got != 800 {
		t.Errorf("Len() = %d, want 800", got)
	}
}
