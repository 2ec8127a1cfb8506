package pqkem

import "github.com/vaultsandbox/pqkem-go/internal/mlkem"

// ParameterSet selects one of the supported ML-KEM security levels.
type ParameterSet int

const (
	// MLKEM512 targets NIST security category 1 (comparable to AES-128).
	MLKEM512 ParameterSet = iota + 1
	// MLKEM768 targets NIST security category 3 (comparable to AES-192).
	MLKEM768
	// MLKEM1024 targets NIST security category 5 (comparable to AES-256).
	// This is the recommended set for long-lived financial key material.
	MLKEM1024
)

// Sizes independent of the parameter set.
const (
	// SharedSecretSize is the size of every derived shared secret in bytes,
	// suitable for direct use as a symmetric key.
	SharedSecretSize = mlkem.SharedKeySize

	// SeedSize is the size of the key-generation seed (d || z) consumed
	// from the caller's random source per key pair.
	SeedSize = mlkem.KeyGenSeedSize

	// EncapsulationSeedSize is the randomness consumed per encapsulation.
	EncapsulationSeedSize = mlkem.MessageSize
)

// String returns the standard name of the parameter set.
func (ps ParameterSet) String() string {
	p, err := ps.params()
	if err != nil {
		return "ML-KEM-invalid"
	}
	return p.Name()
}

// PublicKeySize returns the fixed public key size in bytes, or 0 for an
// unknown parameter set.
func (ps ParameterSet) PublicKeySize() int {
	p, err := ps.params()
	if err != nil {
		return 0
	}
	return p.PublicKeySize()
}

// SecretKeySize returns the fixed secret key size in bytes, or 0 for an
// unknown parameter set.
func (ps ParameterSet) SecretKeySize() int {
	p, err := ps.params()
	if err != nil {
		return 0
	}
	return p.SecretKeySize()
}

// CiphertextSize returns the fixed ciphertext size in bytes, or 0 for an
// unknown parameter set.
func (ps ParameterSet) CiphertextSize() int {
	p, err := ps.params()
	if err != nil {
		return 0
	}
	return p.CiphertextSize()
}

func (ps ParameterSet) params() (*mlkem.Params, error) {
	switch ps {
	case MLKEM512:
		return mlkem.MLKEM512, nil
	case MLKEM768:
		return mlkem.MLKEM768, nil
	case MLKEM1024:
		return mlkem.MLKEM1024, nil
	default:
		return nil, ErrUnknownParameterSet
	}
}
