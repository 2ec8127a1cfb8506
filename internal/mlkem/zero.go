package mlkem

// wipe zeroizes a byte slice holding secret material. Called on every exit
// path that drops noise vectors, decrypted messages, or derived
// intermediates.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// wipePoly zeroizes a polynomial holding secret coefficients.
func wipePoly(f *ringElement) {
	for i := range f {
		f[i] = 0
	}
}
