// Package mlkem implements a module-lattice key encapsulation mechanism in
// the style of ML-KEM (FIPS 203): a CPA-secure public-key encryption scheme
// over the ring Z_q[X]/(X^n+1) wrapped in the Fujisaki-Okamoto transform for
// IND-CCA2 security, with implicit rejection on decapsulation failure.
//
// This package supports three parameter sets, named after their classical
// security-equivalent key sizes:
//   - 512:  NIST security category 1
//   - 768:  NIST security category 3
//   - 1024: NIST security category 5
//
// Basic usage:
//
//	key, err := mlkem.GenerateKey768(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	ct, ss, err := key.PublicKey().Encapsulate(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	ss2 := key.Decapsulate(ct)
//	// ss2 == ss
package mlkem

import (
	"crypto/sha3"
	"errors"
)

// Global lattice constants.
const (
	// n is the number of coefficients in a ring element.
	n = 256

	// q is the modulus.
	q = 3329

	// SeedSize is the size in bytes of a key-generation or encapsulation
	// seed, when deterministic construction is used.
	SeedSize = 32

	// SharedKeySize is the size in bytes of the shared secret produced by
	// encapsulation and decapsulation.
	SharedKeySize = 32

	// messageSize is the size in bytes of the plaintext message the
	// IND-CPA scheme encrypts, before the FO transform wraps it.
	messageSize = 32
)

// Sentinel errors returned by the parsing and encapsulation/decapsulation
// entry points. Use errors.Is to test for these.
var (
	ErrInvalidPublicKeyLength  = errors.New("mlkem: invalid public key length")
	ErrInvalidPrivateKeyLength = errors.New("mlkem: invalid private key length")
	ErrInvalidCiphertextLength = errors.New("mlkem: invalid ciphertext length")
	ErrInvalidSeedLength       = errors.New("mlkem: invalid seed length")
)

// hashFO computes SHA3-512(a || b), the FO transform's step for deriving
// (r, noiseSeed) from a message and a public-key hash.
func hashFO(a, b []byte) [64]byte {
	h := sha3.New512()
	h.Write(a)
	h.Write(b)
	var out [64]byte
	h.Sum(out[:0])
	return out
}

// kdf derives the 32-byte shared secret SHAKE-256(r || ctHash), the final
// step of both encapsulation and decapsulation.
func kdf(r, ctHash []byte) [SharedKeySize]byte {
	h := sha3.NewSHAKE256()
	h.Write(r)
	h.Write(ctHash)
	var ss [SharedKeySize]byte
	h.Read(ss[:])
	return ss
}

// zeroize overwrites b in place. It's called on every intermediate buffer
// that carries seed or key material once that buffer is no longer needed,
// matching the handling of sensitive values in the reference construction.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
