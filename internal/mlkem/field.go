package mlkem

// fieldElement is an integer modulo q, always in reduced form [0, q).
type fieldElement uint16

// ringElement is a polynomial with n coefficients in Z_q, in the
// coefficient domain.
type ringElement [n]fieldElement

// nttElement is the NTT representation of a polynomial. Keeping it a
// distinct type stops coefficient-domain and NTT-domain values from being
// mixed by accident.
type nttElement [n]fieldElement

// Barrett reduction constants.
const (
	// barrettMultiplier = floor(2^barrettShift / q)
	barrettMultiplier = 20158
	barrettShift      = 26
)

// fieldReduceOnce reduces a value < 2q to [0, q) without branching.
func fieldReduceOnce(a uint16) fieldElement {
	x := a - q
	// If the subtraction wrapped, the top bit of x is set.
	x += (x >> 15) * q
	return fieldElement(x)
}

// fieldAdd returns (a + b) mod q.
func fieldAdd(a, b fieldElement) fieldElement {
	return fieldReduceOnce(uint16(a) + uint16(b))
}

// fieldSub returns (a - b) mod q.
func fieldSub(a, b fieldElement) fieldElement {
	return fieldReduceOnce(uint16(a) - uint16(b) + q)
}

// fieldReduce reduces a value < 2q^2 to [0, q) using Barrett reduction,
// avoiding potentially variable-time division. With the floor multiplier the
// estimated quotient is off by at most one, so a single reduceOnce finishes
// the job.
func fieldReduce(a uint32) fieldElement {
	quotient := uint32((uint64(a) * barrettMultiplier) >> barrettShift)
	return fieldReduceOnce(uint16(a - quotient*q))
}

// fieldMul returns (a * b) mod q.
func fieldMul(a, b fieldElement) fieldElement {
	return fieldReduce(uint32(a) * uint32(b))
}

// fieldExp returns base^exp mod q by square and multiply. Only used with
// public exponents when building the twiddle tables.
func fieldExp(base fieldElement, exp int) fieldElement {
	result := fieldElement(1)
	p := base
	for ; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result = fieldMul(result, p)
		}
		p = fieldMul(p, p)
	}
	return result
}

// polyAdd adds two polynomials coefficient-wise.
func polyAdd[T ~[n]fieldElement](a, b T) (c T) {
	for i := range c {
		c[i] = fieldAdd(a[i], b[i])
	}
	return c
}

// polySub subtracts two polynomials coefficient-wise.
func polySub[T ~[n]fieldElement](a, b T) (c T) {
	for i := range c {
		c[i] = fieldSub(a[i], b[i])
	}
	return c
}
