package mlkem

import (
	"math/rand"
	"testing"
)

func TestFieldReduceOnce(t *testing.T) {
	for a := uint16(0); a < 2*q; a++ {
		got := fieldReduceOnce(a)
		want := fieldElement(a % q)
		if got != want {
			t.Fatalf("fieldReduceOnce(%d) = %d, want %d", a, got, want)
		}
	}
}

func TestFieldAddSub(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100000; i++ {
		a := fieldElement(rng.Intn(q))
		b := fieldElement(rng.Intn(q))
		if got, want := fieldAdd(a, b), fieldElement((uint32(a)+uint32(b))%q); got != want {
			t.Fatalf("fieldAdd(%d, %d) = %d, want %d", a, b, got, want)
		}
		if got, want := fieldSub(a, b), fieldElement((uint32(a)+q-uint32(b))%q); got != want {
			t.Fatalf("fieldSub(%d, %d) = %d, want %d", a, b, got, want)
		}
	}
}

func TestFieldMul(t *testing.T) {
	// Edge products plus a large random sweep.
	cases := [][2]fieldElement{
		{0, 0}, {1, 1}, {q - 1, q - 1}, {q - 1, 1}, {1664, 1665},
	}
	for _, c := range cases {
		if got, want := fieldMul(c[0], c[1]), fieldElement(uint32(c[0])*uint32(c[1])%q); got != want {
			t.Fatalf("fieldMul(%d, %d) = %d, want %d", c[0], c[1], got, want)
		}
	}
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200000; i++ {
		a := fieldElement(rng.Intn(q))
		b := fieldElement(rng.Intn(q))
		if got, want := fieldMul(a, b), fieldElement(uint32(a)*uint32(b)%q); got != want {
			t.Fatalf("fieldMul(%d, %d) = %d, want %d", a, b, got, want)
		}
	}
}

func TestFieldReduceBounds(t *testing.T) {
	// Barrett reduction must be exact for every value below 2q^2.
	rng := rand.New(rand.NewSource(3))
	const limit = 2 * q * q
	for i := 0; i < 200000; i++ {
		a := uint32(rng.Int63n(limit))
		if got, want := fieldReduce(a), fieldElement(a%q); got != want {
			t.Fatalf("fieldReduce(%d) = %d, want %d", a, got, want)
		}
	}
	for _, a := range []uint32{0, q - 1, q, 2 * q, limit - 1} {
		if got, want := fieldReduce(a), fieldElement(a%q); got != want {
			t.Fatalf("fieldReduce(%d) = %d, want %d", a, got, want)
		}
	}
}

func TestFieldExp(t *testing.T) {
	if got := fieldExp(zeta, 0); got != 1 {
		t.Errorf("fieldExp(zeta, 0) = %d, want 1", got)
	}
	if got := fieldExp(zeta, 1); got != zeta {
		t.Errorf("fieldExp(zeta, 1) = %d, want %d", got, zeta)
	}
	// zeta is a primitive 256th root of unity: zeta^128 = -1, zeta^256 = 1.
	if got := fieldExp(zeta, 128); got != q-1 {
		t.Errorf("fieldExp(zeta, 128) = %d, want %d", got, q-1)
	}
	if got := fieldExp(zeta, 256); got != 1 {
		t.Errorf("fieldExp(zeta, 256) = %d, want 1", got)
	}
}
