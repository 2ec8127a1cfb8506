package pqkem

import (
	"crypto/subtle"
	"sync"

	"github.com/vaultsandbox/pqkem-go/internal/mlkem"
)

// PublicKey is an encapsulation key. Immutable after creation and safe to
// share freely.
type PublicKey struct {
	set    ParameterSet
	params *mlkem.Params
	raw    []byte
}

// ParameterSet returns the security level of the key.
func (pk *PublicKey) ParameterSet() ParameterSet { return pk.set }

// Bytes returns a copy of the fixed-width public key encoding.
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, len(pk.raw))
	copy(out, pk.raw)
	return out
}

// Equal reports whether two public keys are identical. Public keys are not
// secret, but the comparison is constant-time anyway so callers need not
// reason about it.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil || pk.set != other.set {
		return false
	}
	return subtle.ConstantTimeCompare(pk.raw, other.raw) == 1
}

// SecretsEqual compares two shared secrets in constant time. Use this
// instead of bytes.Equal whenever either value is secret; a short-circuit
// comparison leaks the position of the first differing byte through timing.
func SecretsEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// SecretKey is a decapsulation key. It is exclusively owned by its creator
// and must never leave the process except as the opaque blob from Bytes,
// for handoff to protected storage. Destroy zeroizes it; all methods fail
// afterwards.
type SecretKey struct {
	set    ParameterSet
	params *mlkem.Params
	raw    []byte

	mu        sync.RWMutex
	destroyed bool
}

// ParameterSet returns the security level of the key.
func (sk *SecretKey) ParameterSet() ParameterSet { return sk.set }

// Bytes returns a copy of the opaque secret key blob for storage handoff.
// The caller is responsible for wiping the copy. Returns nil after Destroy.
func (sk *SecretKey) Bytes() []byte {
	sk.mu.RLock()
	defer sk.mu.RUnlock()
	if sk.destroyed {
		return nil
	}
	out := make([]byte, len(sk.raw))
	copy(out, sk.raw)
	return out
}

// PublicKey extracts the public key embedded in the secret key.
// Returns nil after Destroy.
func (sk *SecretKey) PublicKey() *PublicKey {
	sk.mu.RLock()
	defer sk.mu.RUnlock()
	if sk.destroyed {
		return nil
	}
	// Layout: s || ek || H(ek) || z.
	start := len(sk.raw) - 32 - mlkem.SeedSize - sk.params.PublicKeySize()
	raw := make([]byte, sk.params.PublicKeySize())
	copy(raw, sk.raw[start:])
	return &PublicKey{set: sk.set, params: sk.params, raw: raw}
}

// Destroy zeroizes the key material. Idempotent; every subsequent use of
// the key fails with ErrKeyDestroyed.
func (sk *SecretKey) Destroy() {
	sk.mu.Lock()
	defer sk.mu.Unlock()
	if sk.destroyed {
		return
	}
	wipe(sk.raw)
	sk.destroyed = true
}
