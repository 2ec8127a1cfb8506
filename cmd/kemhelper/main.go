// Command kemhelper exercises the KEM operations from the command line,
// for cross-implementation testing and scripted key ceremonies. Binary
// values are hex-encoded in JSON objects on stdin/stdout.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	pqkem "github.com/vaultsandbox/pqkem-go"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: kemhelper <keygen|encap|decap|combine|seal|open> [512|768|1024]")
	}

	switch os.Args[1] {
	case "keygen":
		keygen(newScheme())
	case "encap":
		encap(newScheme())
	case "decap":
		decap(newScheme())
	case "combine":
		combine()
	case "seal":
		seal()
	case "open":
		unseal()
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

// newScheme builds the scheme for the KEM subcommands. Only they take a
// parameter-set argument; combine/seal/open are scheme-independent.
func newScheme() *pqkem.Scheme {
	scheme, err := pqkem.NewScheme(parameterSet(os.Args[2:]))
	if err != nil {
		fatal("create scheme: %v", err)
	}
	return scheme
}

// parameterSet maps an optional trailing argument to a security level,
// defaulting to ML-KEM-1024.
func parameterSet(args []string) pqkem.ParameterSet {
	if len(args) == 0 {
		return pqkem.MLKEM1024
	}
	switch args[0] {
	case "512":
		return pqkem.MLKEM512
	case "768":
		return pqkem.MLKEM768
	case "1024":
		return pqkem.MLKEM1024
	default:
		fatal("unknown parameter set: %s", args[0])
		return 0
	}
}

func keygen(scheme *pqkem.Scheme) {
	pk, sk, err := scheme.GenerateKeyPair(nil)
	if err != nil {
		fatal("generate key pair: %v", err)
	}
	defer sk.Destroy()

	writeJSON(map[string]string{
		"parameterSet": scheme.ParameterSet().String(),
		"publicKey":    hex.EncodeToString(pk.Bytes()),
		"secretKey":    hex.EncodeToString(sk.Bytes()),
	})
}

func encap(scheme *pqkem.Scheme) {
	var in struct {
		PublicKey string `json:"publicKey"`
	}
	readJSON(&in)

	pk, err := scheme.ParsePublicKey(mustHex("publicKey", in.PublicKey))
	if err != nil {
		fatal("parse public key: %v", err)
	}
	ct, ss, err := scheme.Encapsulate(pk, nil)
	if err != nil {
		fatal("encapsulate: %v", err)
	}

	writeJSON(map[string]string{
		"ciphertext":   hex.EncodeToString(ct),
		"sharedSecret": hex.EncodeToString(ss),
	})
}

func decap(scheme *pqkem.Scheme) {
	var in struct {
		SecretKey  string `json:"secretKey"`
		Ciphertext string `json:"ciphertext"`
	}
	readJSON(&in)

	sk, err := scheme.ParseSecretKey(mustHex("secretKey", in.SecretKey))
	if err != nil {
		fatal("parse secret key: %v", err)
	}
	defer sk.Destroy()

	ss, err := scheme.Decapsulate(mustHex("ciphertext", in.Ciphertext), sk)
	if err != nil {
		fatal("decapsulate: %v", err)
	}

	writeJSON(map[string]string{"sharedSecret": hex.EncodeToString(ss)})
}

func combine() {
	var in struct {
		KEMSecret       string `json:"kemSecret"`
		ClassicalSecret string `json:"classicalSecret"`
		Context         string `json:"context"`
	}
	readJSON(&in)

	session, err := pqkem.Combine(
		mustHex("kemSecret", in.KEMSecret),
		mustHex("classicalSecret", in.ClassicalSecret),
		[]byte(in.Context),
	)
	if err != nil {
		fatal("combine: %v", err)
	}

	writeJSON(map[string]string{"sessionSecret": hex.EncodeToString(session)})
}

func seal() {
	var in struct {
		SharedSecret string `json:"sharedSecret"`
		Plaintext    string `json:"plaintext"`
		AAD          string `json:"aad"`
	}
	readJSON(&in)

	sealed, err := pqkem.Seal(
		mustHex("sharedSecret", in.SharedSecret),
		mustHex("plaintext", in.Plaintext),
		[]byte(in.AAD), nil,
	)
	if err != nil {
		fatal("seal: %v", err)
	}

	writeJSON(map[string]string{"sealed": hex.EncodeToString(sealed)})
}

func unseal() {
	var in struct {
		SharedSecret string `json:"sharedSecret"`
		Sealed       string `json:"sealed"`
		AAD          string `json:"aad"`
	}
	readJSON(&in)

	plaintext, err := pqkem.Open(
		mustHex("sharedSecret", in.SharedSecret),
		mustHex("sealed", in.Sealed),
		[]byte(in.AAD),
	)
	if err != nil {
		fatal("open: %v", err)
	}

	writeJSON(map[string]string{"plaintext": hex.EncodeToString(plaintext)})
}

func readJSON(v any) {
	if err := json.NewDecoder(os.Stdin).Decode(v); err != nil {
		fatal("parse input: %v", err)
	}
}

func writeJSON(v any) {
	if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
		fatal("encode output: %v", err)
	}
}

func mustHex(field, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		fatal("decode %s: %v", field, err)
	}
	return b
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
