// Package pqkem provides a post-quantum key encapsulation mechanism for
// transport-security and at-rest-encryption workloads, implementing ML-KEM
// (NIST FIPS 203) with a throughput-oriented scheduling layer.
//
// The package supports the three standardized security levels and is
// byte-compatible with other conforming ML-KEM implementations:
//
//	scheme, err := pqkem.NewScheme(pqkem.MLKEM1024)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Receiver: generate a key pair.
//	pk, sk, err := scheme.GenerateKeyPair(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sk.Destroy()
//
//	// Sender: derive a shared secret for the receiver's public key.
//	ct, secret, err := scheme.Encapsulate(pk, nil)
//
//	// Receiver: recover the same secret from the ciphertext.
//	secret2, err := scheme.Decapsulate(ct, sk)
//
// # Security Model
//
// Decapsulation is total: a tampered or dishonestly generated ciphertext of
// the correct length yields a deterministic pseudorandom secret rather than
// an error. This implicit-rejection behavior is a deliberate anti-oracle
// property of the Fujisaki-Okamoto transform and must not be "fixed" by
// callers into an explicit failure signal toward the network peer.
//
// All ring arithmetic is constant-time: modular reduction and comparisons
// use mask arithmetic, never secret-dependent branches or memory accesses.
// Buffers holding secret material are zeroized on every exit path, and
// SecretKey.Destroy wipes long-lived key material on release.
//
// # Hybrid Mode
//
// For transition-period deployments, Combine mixes the KEM shared secret
// with a classical X25519 secret through an order-sensitive HKDF
// derivation, and GenerateClassicalKeyPair / ClassicalSharedSecret provide
// the classical side:
//
//	session, err := pqkem.Combine(kemSecret, ecdhSecret, []byte("tls-hybrid"))
//
// # Throughput
//
// Scheduler executes independent KEM operations across a fixed worker pool
// with a bounded scratch-buffer pool for backpressure. Submit blocks while
// the pool is exhausted; TrySubmit fails fast with ErrPoolExhausted. An
// optional audit hook observes operation kind, duration, and outcome —
// never key material.
//
// # Key Management
//
// Secret keys leave the process only as the opaque blob from
// SecretKey.Bytes, intended for handoff to protected storage (HSM or KMS
// integrations). ParseSecretKey validates the embedded public-key hash on
// the way back in, detecting at-rest tampering before use.
package pqkem
