package mlkem

import (
	"crypto/sha3"
	"crypto/subtle"
	"io"
)

// PublicKey768 is an ML-KEM-768 (k=3) public key: the IND-CPA public key
// (t~, rho), its cached expanded matrix, and the hash H(pk) bound into the
// KDF on every encapsulation and decapsulation.
type PublicKey768 struct {
	t    [k768]PolyNTT
	rho  [32]byte
	aHat [k768 * k768]PolyNTT
	hash [32]byte
}

// PrivateKey768 is an ML-KEM-768 secret key: the IND-CPA secret vector s~
// plus the public key and the implicit-rejection seed z.
type PrivateKey768 struct {
	s  [k768]PolyNTT
	pk PublicKey768
	z  [32]byte
}

// Key768 is an ML-KEM-768 key pair.
type Key768 struct {
	PrivateKey768
}

// Ciphertext768 is an ML-KEM-768 ciphertext: the compressed IND-CPA
// ciphertext (u, v), kept decompressed in memory between operations.
type Ciphertext768 struct {
	u [k768]Poly
	v Poly
}

// GenerateKey768 generates a new ML-KEM-768 key pair, reading 64 bytes of
// entropy from rand: 32 bytes for the IND-CPA key pair, 32 for the
// implicit-rejection seed.
func GenerateKey768(rand io.Reader) (*Key768, error) {
	var seed [64]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	key, err := NewKeyFromSeed768(seed[:32], seed[32:])
	zeroize(seed[:])
	return key, err
}

// NewKeyFromSeed768 deterministically derives a key pair from a 32-byte
// IND-CPA seed and a 32-byte implicit-rejection seed.
func NewKeyFromSeed768(main, reject []byte) (*Key768, error) {
	if len(main) != SeedSize || len(reject) != SeedSize {
		return nil, ErrInvalidSeedLength
	}

	key := &Key768{}
	d := make([]byte, SeedSize)
	copy(d, main)
	rho := cpaKeyGen(d, eta1_768, key.s[:], key.pk.t[:], key.pk.aHat[:])
	zeroize(d)
	key.pk.rho = rho
	copy(key.z[:], reject)

	hash := sha3.Sum256(key.pk.Bytes())
	key.pk.hash = hash

	return key, nil
}

// PublicKey returns the key pair's public key.
func (key *Key768) PublicKey() *PublicKey768 {
	return &key.pk
}

// Bytes returns the encoded secret key: sk_cpa || pk_cpa || H(pk) || z.
func (sk *PrivateKey768) Bytes() []byte {
	b := make([]byte, PrivateKeySize768)
	offset := 0
	for i := 0; i < k768; i++ {
		copy(b[offset:], polyToBytes(sk.s[i]))
		offset += polyBytes
	}
	copy(b[offset:], sk.pk.Bytes())
	offset += PublicKeySize768
	copy(b[offset:], sk.pk.hash[:])
	offset += 32
	copy(b[offset:], sk.z[:])
	return b
}

// NewPrivateKey768 parses an encoded secret key.
func NewPrivateKey768(b []byte) (*PrivateKey768, error) {
	if len(b) != PrivateKeySize768 {
		return nil, ErrInvalidPrivateKeyLength
	}

	sk := &PrivateKey768{}
	offset := 0
	for i := 0; i < k768; i++ {
		sk.s[i] = polyFromBytes[PolyNTT](b[offset:])
		offset += polyBytes
	}

	pk, err := NewPublicKey768(b[offset : offset+PublicKeySize768])
	if err != nil {
		return nil, err
	}
	sk.pk = *pk
	offset += PublicKeySize768
	copy(sk.pk.hash[:], b[offset:offset+32])
	offset += 32
	copy(sk.z[:], b[offset:])

	return sk, nil
}

// Bytes returns the encoded public key: k NTT-domain polynomials at 12
// bits/coefficient, followed by the 32-byte seed rho.
func (pk *PublicKey768) Bytes() []byte {
	b := make([]byte, PublicKeySize768)
	offset := 0
	for i := 0; i < k768; i++ {
		copy(b[offset:], polyToBytes(pk.t[i]))
		offset += polyBytes
	}
	copy(b[offset:], pk.rho[:])
	return b
}

// NewPublicKey768 parses an encoded public key and re-expands and caches
// its matrix and hash.
func NewPublicKey768(b []byte) (*PublicKey768, error) {
	if len(b) != PublicKeySize768 {
		return nil, ErrInvalidPublicKeyLength
	}

	pk := &PublicKey768{}
	offset := 0
	for i := 0; i < k768; i++ {
		pk.t[i] = polyFromBytes[PolyNTT](b[offset:])
		offset += polyBytes
	}
	copy(pk.rho[:], b[offset:])

	for i := 0; i < k768; i++ {
		for j := 0; j < k768; j++ {
			pk.aHat[i*k768+j] = getUniform(pk.rho[:], byte(i), byte(j))
		}
	}

	pk.hash = sha3.Sum256(b)
	return pk, nil
}

// Equal reports whether pk and other are the same public key, defined by
// hash equality.
func (pk *PublicKey768) Equal(other *PublicKey768) bool {
	return pk.hash == other.hash
}

// Compare orders pk and other lexicographically by H(pk), returning a
// negative number, zero, or a positive number as pk is less than, equal
// to, or greater than other.
func (pk *PublicKey768) Compare(other *PublicKey768) int {
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
func (pk *PublicKey768) Encapsulate(rand io.Reader) (*Ciphertext768, [SharedKeySize]byte, error) {
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
func (pk *PublicKey768) EncapsulateFromSeed(seed []byte) (*Ciphertext768, [SharedKeySize]byte) {
	m := sha3.Sum256(seed)

	hc := hashFO(m[:], pk.hash[:])
	r, noiseSeed := hc[:32], hc[32:]

	u, v := cpaEncrypt(noiseSeed, m[:], eta1_768, eta2_768, pk.t[:], pk.aHat[:])
	ct := &Ciphertext768{v: v}
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
func (sk *PrivateKey768) Decapsulate(ct *Ciphertext768) [SharedKeySize]byte {
	mPrime := cpaDecrypt(ct.u[:], ct.v, sk.s[:])

	hc := hashFO(mPrime, sk.pk.hash[:])
	rPrime, noiseSeedPrime := hc[:32], hc[32:]

	u, v := cpaEncrypt(noiseSeedPrime, mPrime, eta1_768, eta2_768, sk.pk.t[:], sk.pk.aHat[:])
	ctPrime := &Ciphertext768{v: v}
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
func (ct *Ciphertext768) Bytes() []byte {
	b := make([]byte, CiphertextSize768)
	offset := 0
	for i := 0; i < k768; i++ {
		copy(b[offset:], compress10(ct.u[i]))
		offset += du768 * n / 8
	}
	copy(b[offset:], compress4(ct.v))
	return b
}

// NewCiphertext768 parses an encoded ciphertext.
func NewCiphertext768(b []byte) (*Ciphertext768, error) {
	if len(b) != CiphertextSize768 {
		return nil, ErrInvalidCiphertextLength
	}

	ct := &Ciphertext768{}
	offset := 0
	for i := 0; i < k768; i++ {
		ct.u[i] = decompress10(b[offset : offset+du768*n/8])
		offset += du768 * n / 8
	}
	ct.v = decompress4(b[offset:])
	return ct, nil
}
