package mlkem

import (
	"golang.org/x/crypto/sha3"
)

// sampleNTT derives a uniformly random polynomial in the NTT domain from a
// 32-byte matrix seed and two index bytes, by rejection sampling the
// SHAKE128 output stream. Deterministic: the same (rho, i, j) always yields
// the same polynomial, which is what lets both sides regenerate the matrix A
// instead of transmitting it. Implements FIPS 203 Algorithm 7.
func sampleNTT(rho []byte, i, j byte) nttElement {
	xof := sha3.NewShake128()
	xof.Write(rho)
	xof.Write([]byte{i, j})

	var buf [168]byte // SHAKE128 rate
	var a nttElement
	coeff := 0
	for {
		xof.Read(buf[:])
		for off := 0; off < len(buf) && coeff < n; off += 3 {
			// Two 12-bit candidates from each 3-byte group.
			d1 := uint16(buf[off]) | uint16(buf[off+1]&0x0f)<<8
			d2 := uint16(buf[off+1]>>4) | uint16(buf[off+2])<<4
			if d1 < q {
				a[coeff] = fieldElement(d1)
				coeff++
			}
			if d2 < q && coeff < n {
				a[coeff] = fieldElement(d2)
				coeff++
			}
		}
		if coeff >= n {
			return a
		}
	}
}

// prf expands a 32-byte noise seed and a domain-separating nonce into the
// requested number of SHAKE256 output bytes.
func prf(seed []byte, nonce byte, out []byte) {
	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{nonce})
	h.Read(out)
}

// samplePolyCBD draws a polynomial from the centered binomial distribution
// of width eta, consuming 64*eta bytes of PRF output. Coefficients are the
// difference of two eta-bit popcounts, computed with mask arithmetic only:
// no table lookups, no floating point, no secret-dependent branches.
// Implements FIPS 203 Algorithm 8.
func samplePolyCBD(seed []byte, nonce byte, eta int) ringElement {
	if eta == 3 {
		var buf [3 * n / 4]byte
		prf(seed, nonce, buf[:])
		return cbd3(buf[:])
	}
	var buf [n / 2]byte
	prf(seed, nonce, buf[:])
	return cbd2(buf[:])
}

// cbd2 computes the eta=2 centered binomial distribution from 128 bytes.
// Adjacent bit pairs are summed in parallel with the 0x55555555 mask.
func cbd2(b []byte) ringElement {
	var f ringElement
	for i := 0; i < n/8; i++ {
		t := load32(b[4*i:])
		d := t & 0x55555555
		d += (t >> 1) & 0x55555555
		for j := 0; j < 8; j++ {
			x := fieldElement((d >> (4 * j)) & 0x3)
			y := fieldElement((d >> (4*j + 2)) & 0x3)
			f[8*i+j] = fieldSub(x, y)
		}
	}
	return f
}

// cbd3 computes the eta=3 centered binomial distribution from 192 bytes.
// Bit triples are summed in parallel with the 0x00249249 mask.
func cbd3(b []byte) ringElement {
	var f ringElement
	for i := 0; i < n/4; i++ {
		t := load24(b[3*i:])
		d := t & 0x00249249
		d += (t >> 1) & 0x00249249
		d += (t >> 2) & 0x00249249
		for j := 0; j < 4; j++ {
			x := fieldElement((d >> (6 * j)) & 0x7)
			y := fieldElement((d >> (6*j + 3)) & 0x7)
			f[4*i+j] = fieldSub(x, y)
		}
	}
	return f
}

// load32 reads 4 bytes little-endian.
func load32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// load24 reads 3 bytes little-endian.
func load24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}
