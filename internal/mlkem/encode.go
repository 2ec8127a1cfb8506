package mlkem

import "errors"

// errCoefficientRange is reported when a 12-bit encoding contains a value
// outside [0, q). Callers surface it as a malformed-input failure.
var errCoefficientRange = errors.New("mlkem: encoded coefficient out of range")

// ringEncode12 packs a polynomial losslessly at 12 bits per coefficient,
// two coefficients into three bytes.
func ringEncode12(f ringElement) []byte {
	b := make([]byte, encodingSize12)
	for i := 0; i < n; i += 2 {
		x := uint32(f[i]) | uint32(f[i+1])<<12
		b[i/2*3] = byte(x)
		b[i/2*3+1] = byte(x >> 8)
		b[i/2*3+2] = byte(x >> 16)
	}
	return b
}

// ringDecode12 unpacks a polynomial encoded with ringEncode12. Values are
// masked to 12 bits but not range-checked; callers that accept untrusted
// bytes must run checkEncoded12 first.
func ringDecode12(b []byte) ringElement {
	var f ringElement
	for i := 0; i < n; i += 2 {
		x := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		f[i] = fieldElement(x & 0xfff)
		f[i+1] = fieldElement(x >> 12 & 0xfff)
		b = b[3:]
	}
	return f
}

// checkEncoded12 verifies that every 12-bit value in a packed polynomial
// lies in [0, q). This is the modulus check FIPS 203 requires on
// encapsulation keys; it runs once at the trust boundary so the decode path
// itself stays total.
func checkEncoded12(b []byte) error {
	for i := 0; i < len(b); i += 3 {
		x := uint32(b[i]) | uint32(b[i+1])<<8 | uint32(b[i+2])<<16
		if x&0xfff >= q || x>>12&0xfff >= q {
			return errCoefficientRange
		}
	}
	return nil
}

// Exact division by q for dividends below 2^24, as a multiply and shift.
// compressMultiplier = ceil(2^35 / q); the ceiling form gives the exact
// floor quotient for every dividend in range, so no correction step and no
// variable-time division instruction.
const (
	compressMultiplier = 10321340
	compressShift      = 35
)

// compress maps x to round(2^d / q * x) mod 2^d, dropping the coefficient
// onto a coarser grid. Constant time.
func compress(x fieldElement, d uint8) uint16 {
	dividend := uint32(x)<<d + q/2
	quotient := uint32((uint64(dividend) * compressMultiplier) >> compressShift)
	return uint16(quotient) & (1<<d - 1)
}

// decompress maps a d-bit value y back to round(q / 2^d * y). For the d
// values used by any parameter set, decompress(compress(x)) recovers x up to
// the documented rounding error.
func decompress(y uint16, d uint8) fieldElement {
	dividend := uint32(y)*q + 1<<(d-1)
	return fieldElement(dividend >> d)
}

// packBits serializes n d-bit values little-endian, LSB first, the bit
// order fixed by FIPS 203 ByteEncode.
func packBits(vals *[n]uint16, d uint8) []byte {
	b := make([]byte, n*int(d)/8)
	var acc uint32
	var accBits uint8
	idx := 0
	for i := range vals {
		acc |= uint32(vals[i]) << accBits
		accBits += d
		for accBits >= 8 {
			b[idx] = byte(acc)
			idx++
			acc >>= 8
			accBits -= 8
		}
	}
	return b
}

// unpackBits deserializes n d-bit values packed by packBits.
func unpackBits(b []byte, d uint8) [n]uint16 {
	var vals [n]uint16
	mask := uint16(1)<<d - 1
	var acc uint32
	var accBits uint8
	idx := 0
	for i := range vals {
		for accBits < d {
			acc |= uint32(b[idx]) << accBits
			idx++
			accBits += 8
		}
		vals[i] = uint16(acc) & mask
		acc >>= d
		accBits -= d
	}
	return vals
}

// ringCompress compresses every coefficient to d bits and packs the result.
// Lossy for d < 12; the bit width is fixed per parameter set.
func ringCompress(f ringElement, d uint8) []byte {
	var vals [n]uint16
	for i := range f {
		vals[i] = compress(f[i], d)
	}
	return packBits(&vals, d)
}

// ringDecompress unpacks d-bit values and lifts them back into the ring.
// Total: every d-bit pattern maps to a valid coefficient.
func ringDecompress(b []byte, d uint8) ringElement {
	vals := unpackBits(b, d)
	var f ringElement
	for i := range f {
		f[i] = decompress(vals[i], d)
	}
	return f
}
