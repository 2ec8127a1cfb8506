package pqkem

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// At-rest sealing constants.
const (
	sealKeySize   = 32 // AES-256
	sealNonceSize = 12 // GCM standard nonce
	sealTagSize   = 16 // GCM tag

	sealContext = "pqkem:seal:v1"
)

// sealKey derives the AES-256 key for at-rest sealing from a KEM (or
// hybrid) shared secret.
func sealKey(sharedSecret, aad []byte) ([]byte, error) {
	if len(sharedSecret) == 0 {
		return nil, ErrMalformedSharedSecret
	}
	info := make([]byte, 0, len(sealContext)+len(aad))
	info = append(info, sealContext...)
	info = append(info, aad...)

	reader := hkdf.New(sha512.New, sharedSecret, nil, info)
	key := make([]byte, sealKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive sealing key: %w", err)
	}
	return key, nil
}

// Seal encrypts plaintext for storage at rest under a key derived from
// sharedSecret, typically the output of Decapsulate or Combine. aad is
// authenticated but not encrypted; pass the same value to Open. The output
// is nonce || ciphertext || tag.
func Seal(sharedSecret, plaintext, aad []byte, rng io.Reader) ([]byte, error) {
	if rng == nil {
		rng = rand.Reader
	}
	key, err := sealKey(sharedSecret, aad)
	if err != nil {
		return nil, err
	}
	defer wipe(key)

	nonce := make([]byte, sealNonceSize)
	if _, err := io.ReadFull(rng, nonce); err != nil {
		return nil, fmt.Errorf("%w: reading random source: %v", ErrInsufficientEntropy, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return gcm.Seal(nonce, nonce, plaintext, aad), nil
}

// Open decrypts data produced by Seal with the same shared secret and aad.
// Tampering with any byte fails with ErrSealedDataInvalid.
func Open(sharedSecret, sealed, aad []byte) ([]byte, error) {
	if len(sealed) < sealNonceSize+sealTagSize {
		return nil, ErrSealedDataInvalid
	}
	key, err := sealKey(sharedSecret, aad)
	if err != nil {
		return nil, err
	}
	defer wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	plaintext, err := gcm.Open(nil, sealed[:sealNonceSize], sealed[sealNonceSize:], aad)
	if err != nil {
		return nil, ErrSealedDataInvalid
	}
	return plaintext, nil
}
