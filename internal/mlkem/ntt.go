package mlkem

// nttTables holds the precomputed twiddle factors for the forward and
// inverse transforms and for base-case multiplication. It is built once at
// process start from zeta = 17 and shared read-only by every operation;
// nothing mutates it after construction.
type nttTables struct {
	// zetas[k] = zeta^bitrev7(k) mod q, consumed in order by the butterfly
	// schedule.
	zetas [128]fieldElement

	// gammas[i] = zeta^(2*bitrev7(i)+1) mod q, the odd powers used when
	// multiplying the degree-one residue pairs in the NTT domain.
	gammas [128]fieldElement
}

// bitrev7 reverses the low 7 bits of x.
func bitrev7(x int) int {
	r := 0
	for i := 0; i < 7; i++ {
		r = r<<1 | (x>>i)&1
	}
	return r
}

// newNTTTables computes the twiddle tables. Deriving them at startup rather
// than embedding literals keeps them tied to zeta and q.
func newNTTTables() *nttTables {
	t := &nttTables{}
	for k := range t.zetas {
		br := bitrev7(k)
		t.zetas[k] = fieldExp(zeta, br)
		t.gammas[k] = fieldExp(zeta, 2*br+1)
	}
	return t
}

var tables = newNTTTables()

// inverseN is 128^-1 mod q, the scaling factor applied by the inverse
// transform.
const inverseN = 3303

// ntt transforms a polynomial into the NTT domain using the fixed seven-layer
// butterfly schedule. Implements FIPS 203 Algorithm 9.
func ntt(f ringElement) nttElement {
	k := 1
	for length := 128; length >= 2; length /= 2 {
		for start := 0; start < n; start += 2 * length {
			z := tables.zetas[k]
			k++
			fLo := f[start : start+length]
			fHi := f[start+length : start+2*length]
			for j := 0; j < length; j++ {
				t := fieldMul(z, fHi[j])
				fHi[j] = fieldSub(fLo[j], t)
				fLo[j] = fieldAdd(fLo[j], t)
			}
		}
	}
	return nttElement(f)
}

// invNTT transforms a polynomial out of the NTT domain. Exact inverse of
// ntt: integer arithmetic throughout, no precision loss.
// Implements FIPS 203 Algorithm 10.
func invNTT(f nttElement) ringElement {
	k := 127
	for length := 2; length <= 128; length *= 2 {
		for start := 0; start < n; start += 2 * length {
			z := tables.zetas[k]
			k--
			fLo := f[start : start+length]
			fHi := f[start+length : start+2*length]
			for j := 0; j < length; j++ {
				t := fLo[j]
				fLo[j] = fieldAdd(t, fHi[j])
				fHi[j] = fieldMul(z, fieldSub(fHi[j], t))
			}
		}
	}
	// Scale by 128^-1.
	for i := range f {
		f[i] = fieldMul(f[i], inverseN)
	}
	return ringElement(f)
}

// nttMul multiplies two polynomials in the NTT domain. The transform leaves
// 128 degree-one residues, so multiplication is pairwise with a gamma twist
// rather than strictly pointwise. Implements FIPS 203 Algorithms 11 and 12.
func nttMul(a, b nttElement) nttElement {
	var c nttElement
	for i := 0; i < n/2; i++ {
		a0, a1 := a[2*i], a[2*i+1]
		b0, b1 := b[2*i], b[2*i+1]
		c[2*i] = fieldAdd(fieldMul(a0, b0), fieldMul(fieldMul(a1, b1), tables.gammas[i]))
		c[2*i+1] = fieldAdd(fieldMul(a0, b1), fieldMul(a1, b0))
	}
	return c
}
