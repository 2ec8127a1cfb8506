// Package mlkem implements the ML-KEM (FIPS 203) key encapsulation
// mechanism over the module lattice ring Z_q[X]/(X^256+1), q = 3329.
//
// The package is the arithmetic core only: byte-oriented key generation,
// encapsulation, and decapsulation, exact to the standard so ciphertexts and
// keys interoperate with other conforming implementations. Key lifecycle,
// entropy validation, hybrid combination, and scheduling live in the public
// pqkem package.
//
// Decapsulation never reports failure. When the re-encryption check fails it
// returns the implicit-rejection secret J(z || c) instead, keyed by the
// secret value z, so an attacker probing with malformed ciphertexts learns
// nothing from the API surface or its timing.
package mlkem

import (
	"crypto/subtle"

	"golang.org/x/crypto/sha3"
)

// KeyGen derives an ML-KEM key pair from a 64-byte seed (d || z). The seed
// must come from a validated high-entropy source; the same seed always
// yields the same pair. Implements FIPS 203 Algorithms 16 and 19.
func KeyGen(p *Params, seed []byte) (ek, dk []byte, err error) {
	if len(seed) != KeyGenSeedSize {
		return nil, nil, ErrInvalidSeedSize
	}
	d, z := seed[:SeedSize], seed[SeedSize:]

	ek, dkPKE := pkeKeyGen(p, d)
	h := sha3.Sum256(ek)

	dk = make([]byte, 0, p.SecretKeySize())
	dk = append(dk, dkPKE...)
	dk = append(dk, ek...)
	dk = append(dk, h[:]...)
	dk = append(dk, z...)

	wipe(dkPKE)
	return ek, dk, nil
}

// CheckPublicKey validates an encapsulation key: exact length and every
// encoded coefficient in [0, q).
func CheckPublicKey(p *Params, ek []byte) error {
	if len(ek) != p.PublicKeySize() {
		return ErrInvalidPublicKey
	}
	if err := checkEncoded12(ek[:p.k*encodingSize12]); err != nil {
		return ErrInvalidPublicKey
	}
	return nil
}

// CheckSecretKey validates a decapsulation key: exact length, coefficients
// in range, and the embedded H(ek) matching the embedded ek. The hash check
// detects storage tampering before the key is ever used.
func CheckSecretKey(p *Params, dk []byte) error {
	if len(dk) != p.SecretKeySize() {
		return ErrInvalidSecretKey
	}
	skLen := p.k * encodingSize12
	if err := checkEncoded12(dk[:skLen]); err != nil {
		return ErrInvalidSecretKey
	}
	ek := dk[skLen : skLen+p.PublicKeySize()]
	if err := checkEncoded12(ek[:skLen]); err != nil {
		return ErrInvalidSecretKey
	}
	h := sha3.Sum256(ek)
	stored := dk[skLen+p.PublicKeySize() : skLen+p.PublicKeySize()+32]
	if subtle.ConstantTimeCompare(h[:], stored) != 1 {
		return ErrInvalidSecretKey
	}
	return nil
}

// Encapsulate derives a shared secret and ciphertext for ek from the
// 32-byte encapsulation randomness m. The shared secret is bound to both
// the message and H(ek), which defeats key-reuse confusion attacks.
// Implements FIPS 203 Algorithms 17 and 20.
func Encapsulate(p *Params, ek, m []byte) (ct, sharedSecret []byte, err error) {
	if err := CheckPublicKey(p, ek); err != nil {
		return nil, nil, err
	}
	if len(m) != MessageSize {
		return nil, nil, ErrInvalidMessageSize
	}

	h := sha3.Sum256(ek)
	g := sha3.New512()
	g.Write(m)
	g.Write(h[:])
	kr := g.Sum(nil)
	k, r := kr[:SharedKeySize], kr[SharedKeySize:]

	ct = pkeEncrypt(p, ek, m, r)

	sharedSecret = make([]byte, SharedKeySize)
	copy(sharedSecret, k)
	wipe(kr)
	return ct, sharedSecret, nil
}

// Decapsulate recovers the shared secret from a ciphertext. It is total for
// any ciphertext of the correct length: the message is decrypted,
// deterministically re-encapsulated, and compared against the input in
// constant time. On mismatch the implicit-rejection secret replaces the
// recovered one with no observable signal, per the Fujisaki-Okamoto
// transform. Implements FIPS 203 Algorithms 18 and 21.
func Decapsulate(p *Params, dk, ct []byte) ([]byte, error) {
	if len(dk) != p.SecretKeySize() {
		return nil, ErrInvalidSecretKey
	}
	if len(ct) != p.CiphertextSize() {
		return nil, ErrInvalidCiphertext
	}

	skLen := p.k * encodingSize12
	dkPKE := dk[:skLen]
	ek := dk[skLen : skLen+p.PublicKeySize()]
	h := dk[skLen+p.PublicKeySize() : skLen+p.PublicKeySize()+32]
	z := dk[len(dk)-SeedSize:]

	m := pkeDecrypt(p, dkPKE, ct)

	g := sha3.New512()
	g.Write(m)
	g.Write(h)
	kr := g.Sum(nil)
	k, r := kr[:SharedKeySize], kr[SharedKeySize:]

	// Implicit rejection secret, derived whether or not it is needed.
	rejection := sha3.NewShake256()
	rejection.Write(z)
	rejection.Write(ct)
	kBar := make([]byte, SharedKeySize)
	rejection.Read(kBar)

	ct2 := pkeEncrypt(p, ek, m, r)

	sharedSecret := make([]byte, SharedKeySize)
	copy(sharedSecret, k)
	match := subtle.ConstantTimeCompare(ct, ct2)
	subtle.ConstantTimeCopy(1-match, sharedSecret, kBar)

	wipe(m)
	wipe(kr)
	wipe(kBar)
	return sharedSecret, nil
}
