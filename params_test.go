package pqkem

import "testing"

func TestParameterSetSizes(t *testing.T) {
	cases := []struct {
		set        ParameterSet
		name       string
		publicKey  int
		secretKey  int
		ciphertext int
	}{
		{MLKEM512, "ML-KEM-512", 800, 1632, 768},
		{MLKEM768, "ML-KEM-768", 1184, 2400, 1088},
		{MLKEM1024, "ML-KEM-1024", 1568, 3168, 1568},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.set.String(); got != tc.name {
				t.Errorf("String() = %q, want %q", got, tc.name)
			}
			if got := tc.set.PublicKeySize(); got != tc.publicKey {
				t.Errorf("PublicKeySize() = %d, want %d", got, tc.publicKey)
			}
			if got := tc.set.SecretKeySize(); got != tc.secretKey {
				t.Errorf("SecretKeySize() = %d, want %d", got, tc.secretKey)
			}
			if got := tc.set.CiphertextSize(); got != tc.ciphertext {
				t.Errorf("CiphertextSize() = %d, want %d", got, tc.ciphertext)
			}
		})
	}
}

func TestParameterSetInvalid(t *testing.T) {
	bad := ParameterSet(7)
	if got := bad.String(); got != "ML-KEM-invalid" {
		t.Errorf("String() = %q, want ML-KEM-invalid", got)
	}
	if got := bad.PublicKeySize(); got != 0 {
		t.Errorf("PublicKeySize() = %d, want 0", got)
	}
	if got := bad.SecretKeySize(); got != 0 {
		t.Errorf("SecretKeySize() = %d, want 0", got)
	}
	if got := bad.CiphertextSize(); got != 0 {
		t.Errorf("CiphertextSize() = %d, want 0", got)
	}
}

func TestSharedSecretSize(t *testing.T) {
	if SharedSecretSize != 32 {
		t.Errorf("SharedSecretSize = %d, want 32", SharedSecretSize)
	}
	if SeedSize != 64 {
		t.Errorf("SeedSize = %d, want 64", SeedSize)
	}
	if EncapsulationSeedSize != 32 {
		t.Errorf("EncapsulationSeedSize = %d, want 32", EncapsulationSeedSize)
	}
}
