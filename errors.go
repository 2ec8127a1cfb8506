package pqkem

import "errors"

// Sentinel errors for errors.Is() checks
var (
	// ErrInsufficientEntropy is returned when key generation or
	// encapsulation cannot obtain acceptable randomness: the random source
	// failed, or the seed it produced failed the minimum-entropy sanity
	// check. The call is fatal; retry with a healthier source.
	ErrInsufficientEntropy = errors.New("insufficient entropy")

	// ErrMalformedPublicKey is returned when public key bytes have the
	// wrong size or encode coefficients outside the ring.
	ErrMalformedPublicKey = errors.New("malformed public key")

	// ErrMalformedSecretKey is returned when secret key bytes have the
	// wrong size, encode coefficients outside the ring, or fail the
	// embedded public-key hash check.
	ErrMalformedSecretKey = errors.New("malformed secret key")

	// ErrMalformedCiphertext is returned when a ciphertext is not exactly
	// the fixed size for the parameter set. Length is the only ciphertext
	// validation: content-level failures are absorbed by implicit
	// rejection and are invisible by design.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrMalformedSharedSecret is returned by the hybrid combiner and the
	// sealing helpers when a secret input is empty.
	ErrMalformedSharedSecret = errors.New("malformed shared secret")

	// ErrMalformedClassicalKey is returned when an X25519 key is not 32
	// bytes or the exchange produces a degenerate (low-order) result.
	ErrMalformedClassicalKey = errors.New("malformed classical key")

	// ErrUnknownParameterSet is returned when a ParameterSet value is not
	// one of the supported security levels.
	ErrUnknownParameterSet = errors.New("unknown parameter set")

	// ErrPoolExhausted is returned by TrySubmit when every scratch buffer
	// is in use. Retryable: capacity frees as in-flight operations finish.
	ErrPoolExhausted = errors.New("scratch buffer pool exhausted")

	// ErrSchedulerClosed is returned when submitting to a scheduler that
	// has been closed. Operations queued but not yet started when Close is
	// called also fail with this error.
	ErrSchedulerClosed = errors.New("scheduler has been closed")

	// ErrKeyDestroyed is returned when a secret key is used after Destroy.
	ErrKeyDestroyed = errors.New("secret key has been destroyed")

	// ErrUnknownOperation is returned for an Op with an unrecognized Kind.
	ErrUnknownOperation = errors.New("unknown operation kind")

	// ErrSealedDataInvalid is returned when Open is given data that is too
	// short or fails authentication.
	ErrSealedDataInvalid = errors.New("sealed data invalid or tampered")
)
