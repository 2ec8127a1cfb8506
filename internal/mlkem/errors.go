package mlkem

import "errors"

var (
	// ErrInvalidSeedSize is returned when a key-generation seed is not
	// KeyGenSeedSize bytes.
	ErrInvalidSeedSize = errors.New("invalid key generation seed size")

	// ErrInvalidPublicKey is returned when an encapsulation key has the
	// wrong length or encodes a coefficient outside the ring.
	ErrInvalidPublicKey = errors.New("invalid encapsulation key")

	// ErrInvalidSecretKey is returned when a decapsulation key has the
	// wrong length, encodes a coefficient outside the ring, or fails its
	// embedded public key hash check.
	ErrInvalidSecretKey = errors.New("invalid decapsulation key")

	// ErrInvalidCiphertext is returned when a ciphertext is not the fixed
	// size for the parameter set. Ciphertext contents are never validated
	// beyond length: decapsulation is total by design.
	ErrInvalidCiphertext = errors.New("invalid ciphertext size")

	// ErrInvalidMessageSize is returned when the encapsulation randomness
	// is not MessageSize bytes.
	ErrInvalidMessageSize = errors.New("invalid encapsulation randomness size")
)
