package mlkem

import (
	"golang.org/x/crypto/sha3"
)

// sampleMatrix expands the public matrix from the seed rho. With transpose
// set it yields A^T, which encryption needs. Regeneration is bit-exact for a
// given seed, so the matrix is never stored or transmitted.
func sampleMatrix(p *Params, rho []byte, transpose bool) []nttElement {
	a := make([]nttElement, p.k*p.k)
	for i := 0; i < p.k; i++ {
		for j := 0; j < p.k; j++ {
			if transpose {
				a[i*p.k+j] = sampleNTT(rho, byte(i), byte(j))
			} else {
				a[i*p.k+j] = sampleNTT(rho, byte(j), byte(i))
			}
		}
	}
	return a
}

// sampleNoiseVec draws k noise polynomials from the centered binomial
// distribution, advancing the PRF nonce once per polynomial.
func sampleNoiseVec(p *Params, seed []byte, eta int, nonce byte) ([]ringElement, byte) {
	v := make([]ringElement, p.k)
	for i := range v {
		v[i] = samplePolyCBD(seed, nonce, eta)
		nonce++
	}
	return v, nonce
}

// pkeKeyGen derives a K-PKE key pair from the 32-byte seed d.
// ek is ByteEncode12(t) || rho, dk is ByteEncode12(s) with both vectors kept
// in the NTT domain. Implements FIPS 203 Algorithm 13.
func pkeKeyGen(p *Params, d []byte) (ek, dk []byte) {
	g := sha3.New512()
	g.Write(d)
	g.Write([]byte{byte(p.k)}) // domain separation between parameter sets
	gOut := g.Sum(nil)
	rho, sigma := gOut[:32], gOut[32:]

	a := sampleMatrix(p, rho, false)
	s, nonce := sampleNoiseVec(p, sigma, p.eta1, 0)
	e, _ := sampleNoiseVec(p, sigma, p.eta1, nonce)

	sHat := make([]nttElement, p.k)
	tHat := make([]nttElement, p.k)
	for i := range sHat {
		sHat[i] = ntt(s[i])
	}
	// t = A*s + e, computed entirely in the NTT domain.
	for i := 0; i < p.k; i++ {
		tHat[i] = ntt(e[i])
		for j := 0; j < p.k; j++ {
			tHat[i] = polyAdd(tHat[i], nttMul(a[i*p.k+j], sHat[j]))
		}
	}

	ek = make([]byte, 0, p.PublicKeySize())
	for i := range tHat {
		ek = append(ek, ringEncode12(ringElement(tHat[i]))...)
	}
	ek = append(ek, rho...)

	dk = make([]byte, 0, p.k*encodingSize12)
	for i := range sHat {
		dk = append(dk, ringEncode12(ringElement(sHat[i]))...)
	}

	wipe(gOut)
	for i := range s {
		wipePoly(&s[i])
		wipePoly((*ringElement)(&sHat[i]))
	}
	for i := range e {
		wipePoly(&e[i])
	}
	return ek, dk
}

// pkeEncrypt encrypts the 32-byte message m under ek using the encryption
// randomness r. The caller has already validated ek's length and modulus.
// Implements FIPS 203 Algorithm 14.
func pkeEncrypt(p *Params, ek, m, r []byte) []byte {
	tHat := make([]nttElement, p.k)
	for i := range tHat {
		tHat[i] = nttElement(ringDecode12(ek[i*encodingSize12:]))
	}
	rho := ek[p.k*encodingSize12:]

	at := sampleMatrix(p, rho, true)
	y, nonce := sampleNoiseVec(p, r, p.eta1, 0)
	e1, nonce := sampleNoiseVec(p, r, p.eta2, nonce)
	e2 := samplePolyCBD(r, nonce, p.eta2)

	yHat := make([]nttElement, p.k)
	for i := range yHat {
		yHat[i] = ntt(y[i])
	}

	// u = invNTT(A^T * y) + e1
	u := make([]ringElement, p.k)
	for i := 0; i < p.k; i++ {
		var acc nttElement
		for j := 0; j < p.k; j++ {
			acc = polyAdd(acc, nttMul(at[i*p.k+j], yHat[j]))
		}
		u[i] = polyAdd(invNTT(acc), e1[i])
	}

	// v = invNTT(t . y) + e2 + Decompress1(m)
	var vAcc nttElement
	for i := 0; i < p.k; i++ {
		vAcc = polyAdd(vAcc, nttMul(tHat[i], yHat[i]))
	}
	mu := ringDecompress(m, 1)
	v := polyAdd(polyAdd(invNTT(vAcc), e2), mu)

	c := make([]byte, 0, p.CiphertextSize())
	for i := range u {
		c = append(c, ringCompress(u[i], uint8(p.du))...)
	}
	c = append(c, ringCompress(v, uint8(p.dv))...)

	for i := range y {
		wipePoly(&y[i])
		wipePoly((*ringElement)(&yHat[i]))
	}
	wipePoly(&mu)
	return c
}

// pkeDecrypt recovers the 32-byte message from a ciphertext using the
// packed NTT-domain secret vector. Total: any correctly sized input yields
// some message, and the KEM layer decides whether it was the honest one.
// Implements FIPS 203 Algorithm 15.
func pkeDecrypt(p *Params, dk, c []byte) []byte {
	uBytes := p.k * p.du * n / 8
	u := make([]ringElement, p.k)
	for i := range u {
		u[i] = ringDecompress(c[i*p.du*n/8:], uint8(p.du))
	}
	v := ringDecompress(c[uBytes:], uint8(p.dv))

	// w = v - invNTT(s . NTT(u))
	var acc nttElement
	for i := 0; i < p.k; i++ {
		sHat := nttElement(ringDecode12(dk[i*encodingSize12:]))
		acc = polyAdd(acc, nttMul(sHat, ntt(u[i])))
		wipePoly((*ringElement)(&sHat))
	}
	w := polySub(v, invNTT(acc))
	wipePoly((*ringElement)(&acc))

	return ringCompress(w, 1)
}
