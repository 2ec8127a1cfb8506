package pqkem

import (
	"bytes"
	"errors"
	"testing"
)

func TestCombine(t *testing.T) {
	kemSecret := bytes.Repeat([]byte{0x11}, SharedSecretSize)
	classical := bytes.Repeat([]byte{0x22}, 32)

	out, err := Combine(kemSecret, classical, []byte("session-1"))
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}
	if len(out) != SharedSecretSize {
		t.Errorf("Combine() output size = %d, want %d", len(out), SharedSecretSize)
	}

	again, err := Combine(kemSecret, classical, []byte("session-1"))
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}
	if !bytes.Equal(out, again) {
		t.Error("Combine() is not deterministic for equal inputs")
	}
}

func TestCombineOrderSensitive(t *testing.T) {
	a := bytes.Repeat([]byte{0x11}, 32)
	b := bytes.Repeat([]byte{0x22}, 32)

	ab, err := Combine(a, b, nil)
	if err != nil {
		t.Fatalf("Combine(a, b) error = %v", err)
	}
	ba, err := Combine(b, a, nil)
	if err != nil {
		t.Fatalf("Combine(b, a) error = %v", err)
	}
	if bytes.Equal(ab, ba) {
		t.Error("Combine(a, b) == Combine(b, a); inputs are not position-bound")
	}
}

func TestCombineContextSeparation(t *testing.T) {
	a := bytes.Repeat([]byte{0x11}, 32)
	b := bytes.Repeat([]byte{0x22}, 32)

	s1, err := Combine(a, b, []byte("proto-1"))
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}
	s2, err := Combine(a, b, []byte("proto-2"))
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}
	if bytes.Equal(s1, s2) {
		t.Error("different contexts produced the same session secret")
	}
}

func TestCombineRejectsEmptyInputs(t *testing.T) {
	secret := bytes.Repeat([]byte{0x33}, 32)
	if _, err := Combine(nil, secret, nil); !errors.Is(err, ErrMalformedSharedSecret) {
		t.Errorf("Combine(nil, b) error = %v, want ErrMalformedSharedSecret", err)
	}
	if _, err := Combine(secret, []byte{}, nil); !errors.Is(err, ErrMalformedSharedSecret) {
		t.Errorf("Combine(a, empty) error = %v, want ErrMalformedSharedSecret", err)
	}
}

func TestClassicalExchange(t *testing.T) {
	pubA, secA, err := GenerateClassicalKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateClassicalKeyPair() error = %v", err)
	}
	pubB, secB, err := GenerateClassicalKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateClassicalKeyPair() error = %v", err)
	}

	sharedA, err := ClassicalSharedSecret(secA, pubB)
	if err != nil {
		t.Fatalf("ClassicalSharedSecret(A) error = %v", err)
	}
	sharedB, err := ClassicalSharedSecret(secB, pubA)
	if err != nil {
		t.Fatalf("ClassicalSharedSecret(B) error = %v", err)
	}
	if !bytes.Equal(sharedA, sharedB) {
		t.Error("both sides derived different classical secrets")
	}
}

func TestClassicalSharedSecretRejectsBadKeys(t *testing.T) {
	_, sec, err := GenerateClassicalKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateClassicalKeyPair() error = %v", err)
	}

	if _, err := ClassicalSharedSecret(sec, make([]byte, 16)); !errors.Is(err, ErrMalformedClassicalKey) {
		t.Errorf("short peer key: error = %v, want ErrMalformedClassicalKey", err)
	}
	if _, err := ClassicalSharedSecret(make([]byte, 16), sec); !errors.Is(err, ErrMalformedClassicalKey) {
		t.Errorf("short secret: error = %v, want ErrMalformedClassicalKey", err)
	}

	// The all-zero point is low order and must be rejected, not turned
	// into an all-zero shared secret.
	if _, err := ClassicalSharedSecret(sec, make([]byte, 32)); !errors.Is(err, ErrMalformedClassicalKey) {
		t.Errorf("low-order peer key: error = %v, want ErrMalformedClassicalKey", err)
	}
}

// TestHybridEndToEnd runs the full transition-mode flow: ML-KEM
// encapsulation plus an X25519 exchange, combined into one session secret
// on both sides.
func TestHybridEndToEnd(t *testing.T) {
	s := testScheme(t, MLKEM768)

	kemPub, kemSec, err := s.GenerateKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	defer kemSec.Destroy()
	ecdhPubB, ecdhSecB, err := GenerateClassicalKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateClassicalKeyPair() error = %v", err)
	}

	// Sender.
	ct, kemSecretA, err := s.Encapsulate(kemPub, nil)
	if err != nil {
		t.Fatalf("Encapsulate() error = %v", err)
	}
	ecdhPubA, ecdhSecA, err := GenerateClassicalKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateClassicalKeyPair() error = %v", err)
	}
	classicalA, err := ClassicalSharedSecret(ecdhSecA, ecdhPubB)
	if err != nil {
		t.Fatalf("ClassicalSharedSecret() error = %v", err)
	}
	sessionA, err := Combine(kemSecretA, classicalA, []byte("hybrid-test"))
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}

	// Receiver.
	kemSecretB, err := s.Decapsulate(ct, kemSec)
	if err != nil {
		t.Fatalf("Decapsulate() error = %v", err)
	}
	classicalB, err := ClassicalSharedSecret(ecdhSecB, ecdhPubA)
	if err != nil {
		t.Fatalf("ClassicalSharedSecret() error = %v", err)
	}
	sessionB, err := Combine(kemSecretB, classicalB, []byte("hybrid-test"))
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}

	if !bytes.Equal(sessionA, sessionB) {
		t.Error("hybrid session secrets differ between sender and receiver")
	}
}
