package mlkem

import (
	"crypto/sha3"
	"crypto/subtle"
	"io"
)

// PublicKey1024 is an ML-KEM-1024 (k=4) public key: the IND-CPA public key
// (t~, rho), its cached expanded matrix, and the hash H(pk) bound into the
// KDF on every encapsulation and decapsulation.
type PublicKey1024 struct {
	t    [k1024]PolyNTT
	rho  [32]byte
	aHat [k1024 * k1024]PolyNTT
	hash [32]byte
}

// PrivateKey1024 is an ML-KEM-1024 secret key: the IND-CPA secret vector s~
// plus the public key and the implicit-rejection seed z.
type PrivateKey1024 struct {
	s  [k1024]PolyNTT
	pk PublicKey1024
	z  [32]byte
}

// Key1024 is an ML-KEM-1024 key pair.
type Key1024 struct {
	PrivateKey1024
}

// Ciphertext1024 is an ML-KEM-1024 ciphertext: the compressed IND-CPA
// ciphertext (u, v), kept decompressed in memory between operations.
type Ciphertext1024 struct {
	u [k1024]Poly
	v Poly
}

// GenerateKey1024 generates a new ML-KEM-1024 key pair, reading 64 bytes of
// entropy from rand: 32 bytes for the IND-CPA key pair, 32 for the
// implicit-rejection seed.
func GenerateKey1024(rand io.Reader) (*Key1024, error) {
	var seed [64]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	key, err := NewKeyFromSeed1024(seed[:32], seed[32:])
	zeroize(seed[:])
	return key, err
}

// NewKeyFromSeed1024 deterministically derives a key pair from a 32-byte
// IND-CPA seed and a 32-byte implicit-rejection seed.
func NewKeyFromSeed1024(main, reject []byte) (*Key1024, error) {
	if len(main) != SeedSize || len(reject) != SeedSize {
		return nil, ErrInvalidSeedLength
	}

	key := &Key1024{}
	d := make([]byte, SeedSize)
	copy(d, main)
	rho := cpaKeyGen(d, eta1_1024, key.s[:], key.pk.t[:], key.pk.aHat[:])
	zeroize(d)
	key.pk.rho = rho
	copy(key.z[:], reject)

	hash := sha3.Sum256(key.pk.Bytes())
	key.pk.hash = hash

	return key, nil
}

// PublicKey returns the key pair's public key.
func (key *Key1024) PublicKey() *PublicKey1024 {
	return &key.pk
}

// Bytes returns the encoded secret key: sk_cpa || pk_cpa || H(pk) || z.
func (sk *PrivateKey1024) Bytes() []byte {
	b := make([]byte, PrivateKeySize1024)
	offset := 0
	for i := 0; i < k1024; i++ {
		copy(b[offset:], polyToBytes(sk.s[i]))
		offset += polyBytes
	}
	copy(b[offset:], sk.pk.Bytes())
	offset += PublicKeySize1024
	copy(b[offset:], sk.pk.hash[:])
	offset += 32
	copy(b[offset:], sk.z[:])
	return b
}

// NewPrivateKey1024 parses an encoded secret key.
func NewPrivateKey1024(b []byte) (*PrivateKey1024, error) {
	if len(b) != PrivateKeySize1024 {
		return nil, ErrInvalidPrivateKeyLength
	}

	sk := &PrivateKey1024{}
	offset := 0
	for i := 0; i < k1024; i++ {
		sk.s[i] = polyFromBytes[PolyNTT](b[offset:])
		offset += polyBytes
	}

	pk, err := NewPublicKey1024(b[offset : offset+PublicKeySize1024])
	if err != nil {
		return nil, err
	}
	sk.pk = *pk
	offset += PublicKeySize1024
	copy(sk.pk.hash[:], b[offset:offset+32])
	offset += 32
	copy(sk.z[:], b[offset:])

	return sk, nil
}

// Bytes returns the encoded public key: k NTT-domain polynomials at 12
// bits/coefficient, followed by the 32-byte seed rho.
func (pk *PublicKey1024) Bytes() []byte {
	b := make([]byte, PublicKeySize1024)
	offset := 0
	for i := 0; i < k1024; i++ {
		copy(b[offset:], polyToBytes(pk.t[i]))
		offset += polyBytes
	}
	copy(b[offset:], pk.rho[:])
	return b
}

// NewPublicKey1024 parses an encoded public key and re-expands and caches
// its matrix and hash.
func NewPublicKey1024(b []byte) (*PublicKey1024, error) {
	if len(b) != PublicKeySize1024 {
		return nil, ErrInvalidPublicKeyLength
	}

	pk := &PublicKey1024{}
	offset := 0
	for i := 0; i < k1024; i++ {
		pk.t[i] = polyFromBytes[PolyNTT](b[offset:])
		offset += polyBytes
	}
	copy(pk.rho[:], b[offset:])

	for i := 0; i < k1024; i++ {
		for j := 0; j < k1024; j++ {
			pk.aHat[i*k1024+j] = getUniform(pk.rho[:], byte(i), byte(j))
		}
	}

	pk.hash = sha3.Sum256(b)
	return pk, nil
}

// Equal reports whether pk and other are the same public key, defined by
// hash equality.
func (pk *PublicKey1024) Equal(other *PublicKey1024) bool {
	return pk.hash == other.hash
}

// Compare orders pk and other lexicographically by H(pk), returning a
// negative number, zero, or a positive number as pk is less than, equal
// to, or greater than other.
func (pk *PublicKey1024) Compare(other *PublicKey1024) int {
	for i := range pk.hash {
		if pk.hash[i] != other.hash[i] {
			if pk.hash[i] < other.hash[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Encapsulate generates a fresh shared secret and ciphertext for pk, reading
// 32 bytes of entropy from rand.
func (pk *PublicKey1024) Encapsulate(rand io.Reader) (*Ciphertext1024, [SharedKeySize]byte, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, [SharedKeySize]byte{}, err
	}
	ct, ss := pk.EncapsulateFromSeed(seed[:])
	zeroize(seed[:])
	return ct, ss, nil
}

// EncapsulateFromSeed deterministically encapsulates against a 32-byte
// seed, for test-vector reproduction.
func (pk *PublicKey1024) EncapsulateFromSeed(seed []byte) (*Ciphertext1024, [SharedKeySize]byte) {
	m := sha3.Sum256(seed)

	hc := hashFO(m[:], pk.hash[:])
	r, noiseSeed := hc[:32], hc[32:]

	u, v := cpaEncrypt(noiseSeed, m[:], eta1_1024, eta2_1024, pk.t[:], pk.aHat[:])
	ct := &Ciphertext1024{v: v}
	copy(ct.u[:], u)

	ctHash := sha3.Sum256(ct.Bytes())
	ss := kdf(r, ctHash[:])

	zeroize(m[:])
	zeroize(hc[:])
	return ct, ss
}

// Decapsulate recovers the shared secret encapsulated in ct. On a
// ciphertext that was not produced by the matching Encapsulate call, it
// returns a pseudorandom value deterministic in sk's rejection seed and ct,
// rather than an error: callers must treat both outcomes as a usable
// shared secret.
func (sk *PrivateKey1024) Decapsulate(ct *Ciphertext1024) [SharedKeySize]byte {
	mPrime := cpaDecrypt(ct.u[:], ct.v, sk.s[:])

	hc := hashFO(mPrime, sk.pk.hash[:])
	rPrime, noiseSeedPrime := hc[:32], hc[32:]

	u, v := cpaEncrypt(noiseSeedPrime, mPrime, eta1_1024, eta2_1024, sk.pk.t[:], sk.pk.aHat[:])
	ctPrime := &Ciphertext1024{v: v}
	copy(ctPrime.u[:], u)
	ctPrimeBytes := ctPrime.Bytes()

	flag := subtle.ConstantTimeCompare(ct.Bytes(), ctPrimeBytes)
	rStar := make([]byte, SeedSize)
	subtle.ConstantTimeCopy(1, rStar, sk.z[:])
	subtle.ConstantTimeCopy(flag, rStar, rPrime)

	ctHash := sha3.Sum256(ctPrimeBytes)
	ss := kdf(rStar, ctHash[:])

	zeroize(mPrime)
	zeroize(hc[:])
	zeroize(rStar)
	return ss
}

// Bytes returns the encoded ciphertext: u compressed at du bits/coefficient
// followed by v compressed at dv bits/coefficient.
func (ct *Ciphertext1024) Bytes() []byte {
	b := make([]byte, CiphertextSize1024)
	offset := 0
	for i := 0; i < k1024; i++ {
		copy(b[offset:], compress11(ct.u[i]))
		offset += du1024 * n / 8
	}
	copy(b[offset:], compress5(ct.v))
	return b
}

// NewCiphertext1024 parses an encoded ciphertext.
func NewCiphertext1024(b []byte) (*Ciphertext1024, error) {
	if len(b) != CiphertextSize1024 {
		return nil, ErrInvalidCiphertextLength
	}

	ct := &Ciphertext1024{}
	offset := 0
	for i := 0; i < k1024; i++ {
		ct.u[i] = decompress11(b[offset : offset+du1024*n/8])
		offset += du1024 * n / 8
	}
	ct.v = decompress5(b[offset:])
	return ct, nil
}
