package pqkem

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
	"golang.org/x/crypto/hkdf"
)

// hybridContext is the domain-separation string for hybrid key derivation.
const hybridContext = "pqkem:hybrid:v1"

// Combine derives a session secret from a KEM shared secret and a classical
// (ECDH) shared secret, for transition-mode deployments that must stay
// secure if either component is later broken.
//
// The two secrets are length-prefixed and concatenated in a fixed order
// before entering HKDF-SHA-512, so Combine(a, b) and Combine(b, a) are
// unrelated values and a predictable half can never cancel the other (the
// failure mode an XOR combiner would have). context optionally binds the
// output to a protocol or session label; nil is valid.
func Combine(kemSecret, classicalSecret, context []byte) ([]byte, error) {
	if len(kemSecret) == 0 || len(classicalSecret) == 0 {
		return nil, ErrMalformedSharedSecret
	}

	ikm := make([]byte, 0, 8+len(kemSecret)+len(classicalSecret))
	var lp [4]byte
	binary.BigEndian.PutUint32(lp[:], uint32(len(kemSecret)))
	ikm = append(ikm, lp[:]...)
	ikm = append(ikm, kemSecret...)
	binary.BigEndian.PutUint32(lp[:], uint32(len(classicalSecret)))
	ikm = append(ikm, lp[:]...)
	ikm = append(ikm, classicalSecret...)
	defer wipe(ikm)

	info := make([]byte, 0, len(hybridContext)+len(context))
	info = append(info, hybridContext...)
	info = append(info, context...)

	reader := hkdf.New(sha512.New, ikm, nil, info)
	out := make([]byte, SharedSecretSize)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, fmt.Errorf("derive session secret: %w", err)
	}
	return out, nil
}

// GenerateClassicalKeyPair creates an X25519 key pair for the classical
// side of a hybrid exchange, drawing from rng (crypto/rand if nil).
func GenerateClassicalKeyPair(rng io.Reader) (public, secret []byte, err error) {
	if rng == nil {
		rng = rand.Reader
	}
	var pub, sec x25519.Key
	if _, err := io.ReadFull(rng, sec[:]); err != nil {
		return nil, nil, fmt.Errorf("%w: reading random source: %v", ErrInsufficientEntropy, err)
	}
	x25519.KeyGen(&pub, &sec)
	return pub[:], sec[:], nil
}

// ClassicalSharedSecret computes the X25519 shared secret between a local
// secret key and a peer public key. Degenerate (low-order) peer values are
// rejected with ErrMalformedClassicalKey rather than silently producing a
// predictable secret.
func ClassicalSharedSecret(secret, peerPublic []byte) ([]byte, error) {
	if len(secret) != x25519.Size || len(peerPublic) != x25519.Size {
		return nil, ErrMalformedClassicalKey
	}
	var shared, sec, pub x25519.Key
	copy(sec[:], secret)
	copy(pub[:], peerPublic)
	defer wipe(sec[:])

	if !x25519.Shared(&shared, &sec, &pub) {
		return nil, ErrMalformedClassicalKey
	}
	return shared[:], nil
}
