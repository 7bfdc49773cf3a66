package mlkem

// Per-parameter-set constants, matching the conventional 512/768/1024
// security-category labels used throughout this package (see DESIGN.md for
// the naming-convention decision).
const (
	k512  = 2
	k768  = 3
	k1024 = 4

	eta1_512  = 3
	eta1_768  = 2
	eta1_1024 = 2

	eta2_512  = 2
	eta2_768  = 2
	eta2_1024 = 2

	du512  = 10
	du768  = 10
	du1024 = 11

	dv512  = 4
	dv768  = 4
	dv1024 = 5
)

// Sizes in bytes. A ring element's uncompressed encoding is always
// n*12/8 = 384 bytes.
const polyBytes = n * 12 / 8

// PublicKeySize512/768/1024 is the encoded size of a public key: one
// 32-byte seed plus k uncompressed polynomials.
const (
	PublicKeySize512  = k512*polyBytes + 32
	PublicKeySize768  = k768*polyBytes + 32
	PublicKeySize1024 = k1024*polyBytes + 32
)

// PrivateKeySize512/768/1024 is the encoded size of a private key: k
// uncompressed secret-vector polynomials, the encoded public key, the
// public key hash, and the implicit-rejection seed z.
const (
	PrivateKeySize512  = k512*polyBytes + PublicKeySize512 + 32 + 32
	PrivateKeySize768  = k768*polyBytes + PublicKeySize768 + 32 + 32
	PrivateKeySize1024 = k1024*polyBytes + PublicKeySize1024 + 32 + 32
)

// CiphertextSize512/768/1024 is the encoded size of a ciphertext: k
// compressed-at-du polynomials for u, and one compressed-at-dv polynomial
// for v.
const (
	CiphertextSize512  = k512*du512*n/8 + dv512*n/8
	CiphertextSize768  = k768*du768*n/8 + dv768*n/8
	CiphertextSize1024 = k1024*du1024*n/8 + dv1024*n/8
)
