package mlkem

// Ring constants shared by every parameter set, from FIPS 203.
const (
	// n is the number of coefficients in a polynomial.
	n = 256

	// q is the modulus: q = 13 * 2^8 + 1 = 3329.
	q = 3329

	// zeta is a primitive 256th root of unity mod q.
	zeta = 17
)

// Sizes that do not depend on the parameter set.
const (
	// SeedSize is the size of the d and z key-generation seed halves and of
	// the matrix seed rho embedded in an encapsulation key.
	SeedSize = 32

	// KeyGenSeedSize is the size of the full key-generation seed (d || z).
	KeyGenSeedSize = 2 * SeedSize

	// MessageSize is the size of the encapsulation randomness m.
	MessageSize = 32

	// SharedKeySize is the size of the derived shared secret.
	SharedKeySize = 32

	// encodingSize12 is the size of one polynomial packed at 12 bits per
	// coefficient, the lossless wire encoding of ring elements.
	encodingSize12 = n * 12 / 8
)

// Params describes one ML-KEM parameter set. Values are fixed by FIPS 203
// and never attacker-controlled.
type Params struct {
	name string

	// k is the module rank: vectors have k ring elements, A is k x k.
	k int

	// eta1 and eta2 are the centered binomial distribution widths for the
	// secret/ephemeral vectors and the error terms respectively.
	eta1 int
	eta2 int

	// du and dv are the ciphertext compression bit widths for the u vector
	// and the v element.
	du int
	dv int
}

// The three standardized parameter sets.
var (
	MLKEM512  = &Params{name: "ML-KEM-512", k: 2, eta1: 3, eta2: 2, du: 10, dv: 4}
	MLKEM768  = &Params{name: "ML-KEM-768", k: 3, eta1: 2, eta2: 2, du: 10, dv: 4}
	MLKEM1024 = &Params{name: "ML-KEM-1024", k: 4, eta1: 2, eta2: 2, du: 11, dv: 5}
)

// Name returns the standard name of the parameter set.
func (p *Params) Name() string { return p.name }

// K returns the module rank.
func (p *Params) K() int { return p.k }

// PublicKeySize returns the byte size of an encapsulation key: the packed
// vector t followed by the matrix seed rho.
func (p *Params) PublicKeySize() int { return p.k*encodingSize12 + SeedSize }

// SecretKeySize returns the byte size of a decapsulation key in expanded
// form: s || ek || H(ek) || z.
func (p *Params) SecretKeySize() int {
	return p.k*encodingSize12 + p.PublicKeySize() + 32 + SeedSize
}

// CiphertextSize returns the byte size of a ciphertext: the compressed
// vector u followed by the compressed element v.
func (p *Params) CiphertextSize() int {
	return p.k*p.du*n/8 + p.dv*n/8
}
