package pqkem

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/vaultsandbox/pqkem-go/internal/entropy"
	"github.com/vaultsandbox/pqkem-go/internal/mlkem"
)

// Scheme is a configured KEM instance for one parameter set. It holds no
// key material and retains no state between calls apart from optional
// seed-reuse tracking; every operation is a pure function of its inputs and
// fresh randomness. Safe for concurrent use.
type Scheme struct {
	set     ParameterSet
	params  *mlkem.Params
	tracker *entropy.Tracker
}

// NewScheme creates a Scheme for the given parameter set.
func NewScheme(set ParameterSet, opts ...SchemeOption) (*Scheme, error) {
	p, err := set.params()
	if err != nil {
		return nil, err
	}

	cfg := &schemeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Scheme{set: set, params: p}
	if cfg.seedTrackingWindow > 0 {
		s.tracker = entropy.NewTracker(cfg.seedTrackingWindow)
	}
	return s, nil
}

// ParameterSet returns the security level this scheme was built for.
func (s *Scheme) ParameterSet() ParameterSet { return s.set }

// fillSeed fills buf from rng (crypto/rand if nil) and runs the entropy
// checks on it. Taking the buffer from the caller lets the scheduler reuse
// pooled scratch space instead of allocating per operation. All failures
// map to ErrInsufficientEntropy.
func (s *Scheme) fillSeed(rng io.Reader, buf []byte) error {
	if rng == nil {
		rng = rand.Reader
	}
	if _, err := io.ReadFull(rng, buf); err != nil {
		return fmt.Errorf("%w: reading random source: %v", ErrInsufficientEntropy, err)
	}
	if err := entropy.CheckSeed(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientEntropy, err)
	}
	if s.tracker != nil {
		if err := s.tracker.Observe(buf); err != nil {
			return fmt.Errorf("%w: %v", ErrInsufficientEntropy, err)
		}
	}
	return nil
}

// GenerateKeyPair creates a fresh key pair, drawing a seed from rng
// (crypto/rand if nil). Fails with ErrInsufficientEntropy if the source
// fails or produces a degenerate seed. The caller owns the secret key and
// should Destroy it when done.
func (s *Scheme) GenerateKeyPair(rng io.Reader) (*PublicKey, *SecretKey, error) {
	seed := make([]byte, SeedSize)
	defer wipe(seed)
	if err := s.fillSeed(rng, seed); err != nil {
		return nil, nil, err
	}
	return s.GenerateKeyPairFromSeed(seed)
}

// GenerateKeyPairFromSeed deterministically derives a key pair from a
// 64-byte seed, for escrow and reproducible-provisioning flows where the
// seed is managed externally. The seed must come from a high-entropy
// source; degenerate seeds fail with ErrInsufficientEntropy. The caller
// should wipe its copy of the seed after the call.
func (s *Scheme) GenerateKeyPairFromSeed(seed []byte) (*PublicKey, *SecretKey, error) {
	if len(seed) != SeedSize {
		return nil, nil, fmt.Errorf("%w: seed must be %d bytes", ErrInsufficientEntropy, SeedSize)
	}
	if err := entropy.CheckSeed(seed); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInsufficientEntropy, err)
	}

	ek, dk, err := mlkem.KeyGen(s.params, seed)
	if err != nil {
		// Seed length is checked above; any failure here is a bug.
		return nil, nil, fmt.Errorf("key generation: %w", err)
	}
	return &PublicKey{set: s.set, params: s.params, raw: ek},
		&SecretKey{set: s.set, params: s.params, raw: dk}, nil
}

// Encapsulate derives a fresh shared secret for pk and the ciphertext that
// transports it. The secret is bound to a hash of the public key and the
// ciphertext, defeating key-reuse attacks. Fails with
// ErrInsufficientEntropy if rng cannot supply acceptable randomness and
// ErrMalformedPublicKey if pk fails validation.
func (s *Scheme) Encapsulate(pk *PublicKey, rng io.Reader) (ciphertext, sharedSecret []byte, err error) {
	if pk == nil || pk.set != s.set {
		return nil, nil, ErrMalformedPublicKey
	}
	m := make([]byte, EncapsulationSeedSize)
	defer wipe(m)
	if err := s.fillSeed(rng, m); err != nil {
		return nil, nil, err
	}
	return s.encapsulateWith(pk, m)
}

// encapsulateWith runs encapsulation with caller-supplied randomness m,
// already validated. Shared by Encapsulate and the scheduler's pooled path.
func (s *Scheme) encapsulateWith(pk *PublicKey, m []byte) (ciphertext, sharedSecret []byte, err error) {
	ct, ss, err := mlkem.Encapsulate(s.params, pk.raw, m)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}
	return ct, ss, nil
}

// Decapsulate recovers the shared secret from a ciphertext. It is total for
// any ciphertext of the correct length: a tampered or dishonestly generated
// ciphertext yields a deterministic pseudorandom secret instead of an
// error, so the caller can never be used as a decryption-failure oracle.
// Only size violations are reported, as ErrMalformedCiphertext.
func (s *Scheme) Decapsulate(ciphertext []byte, sk *SecretKey) ([]byte, error) {
	if sk == nil || sk.set != s.set {
		return nil, ErrMalformedSecretKey
	}
	sk.mu.RLock()
	defer sk.mu.RUnlock()
	if sk.destroyed {
		return nil, ErrKeyDestroyed
	}
	if len(ciphertext) != s.params.CiphertextSize() {
		return nil, ErrMalformedCiphertext
	}

	ss, err := mlkem.Decapsulate(s.params, sk.raw, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSecretKey, err)
	}
	return ss, nil
}

// ParsePublicKey validates and adopts public key bytes produced by
// PublicKey.Bytes (or any conforming implementation). The bytes are copied.
func (s *Scheme) ParsePublicKey(b []byte) (*PublicKey, error) {
	if err := mlkem.CheckPublicKey(s.params, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}
	raw := make([]byte, len(b))
	copy(raw, b)
	return &PublicKey{set: s.set, params: s.params, raw: raw}, nil
}

// ParseSecretKey validates and adopts secret key bytes from a storage
// handoff. Validation includes the embedded public-key hash, which detects
// at-rest tampering before the key is ever used. The bytes are copied;
// the caller should wipe its own copy.
func (s *Scheme) ParseSecretKey(b []byte) (*SecretKey, error) {
	if err := mlkem.CheckSecretKey(s.params, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSecretKey, err)
	}
	raw := make([]byte, len(b))
	copy(raw, b)
	return &SecretKey{set: s.set, params: s.params, raw: raw}, nil
}

// wipe zeroizes a byte slice holding secret material.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
