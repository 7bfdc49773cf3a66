package mlkem

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateKey512(t *testing.T) {
	key, err := GenerateKey512(rand.Reader)
	require.NoError(t, err)
	require.NotNil(t, key)
}

func TestGenerateKey768(t *testing.T) {
	key, err := GenerateKey768(rand.Reader)
	require.NoError(t, err)
	require.NotNil(t, key)
}

func TestGenerateKey1024(t *testing.T) {
	key, err := GenerateKey1024(rand.Reader)
	require.NoError(t, err)
	require.NotNil(t, key)
}

func TestRoundTrip512(t *testing.T) {
	key, err := GenerateKey512(rand.Reader)
	require.NoError(t, err)

	pk := key.PublicKey()
	ct, ss, err := pk.Encapsulate(rand.Reader)
	require.NoError(t, err)
	require.Len(t, ct.Bytes(), CiphertextSize512)

	got := key.Decapsulate(ct)
	require.Equal(t, ss, got)
}

func TestRoundTrip768(t *testing.T) {
	key, err := GenerateKey768(rand.Reader)
	require.NoError(t, err)

	pk := key.PublicKey()
	ct, ss, err := pk.Encapsulate(rand.Reader)
	require.NoError(t, err)
	require.Len(t, ct.Bytes(), CiphertextSize768)

	got := key.Decapsulate(ct)
	require.Equal(t, ss, got)
}

func TestRoundTrip1024(t *testing.T) {
	key, err := GenerateKey1024(rand.Reader)
	require.NoError(t, err)

	pk := key.PublicKey()
	ct, ss, err := pk.Encapsulate(rand.Reader)
	require.NoError(t, err)
	require.Len(t, ct.Bytes(), CiphertextSize1024)

	got := key.Decapsulate(ct)
	require.Equal(t, ss, got)
}

// TestKeySerializationRoundTrip512 checks that encoding and re-parsing a key
// pair preserves encapsulation/decapsulation behavior.
func TestKeySerializationRoundTrip512(t *testing.T) {
	key, err := GenerateKey512(rand.Reader)
	require.NoError(t, err)

	skBytes := key.Bytes()
	require.Len(t, skBytes, PrivateKeySize512)
	sk2, err := NewPrivateKey512(skBytes)
	require.NoError(t, err)

	pkBytes := key.PublicKey().Bytes()
	require.Len(t, pkBytes, PublicKeySize512)
	pk2, err := NewPublicKey512(pkBytes)
	require.NoError(t, err)
	require.True(t, key.PublicKey().Equal(pk2))

	ct, ss, err := pk2.Encapsulate(rand.Reader)
	require.NoError(t, err)
	got := sk2.Decapsulate(ct)
	require.Equal(t, ss, got)
}

func TestEncapsulateDeterministic512(t *testing.T) {
	key, err := GenerateKey512(rand.Reader)
	require.NoError(t, err)

	var seed [SeedSize]byte
	_, err = rand.Read(seed[:])
	require.NoError(t, err)

	pk := key.PublicKey()
	ct1, ss1 := pk.EncapsulateFromSeed(seed[:])
	ct2, ss2 := pk.EncapsulateFromSeed(seed[:])
	require.Equal(t, ct1.Bytes(), ct2.Bytes())
	require.Equal(t, ss1, ss2)
}

func TestCiphertextCorruptionChangesSharedSecret512(t *testing.T) {
	key, err := GenerateKey512(rand.Reader)
	require.NoError(t, err)

	pk := key.PublicKey()
	ct, ss, err := pk.Encapsulate(rand.Reader)
	require.NoError(t, err)

	raw := ct.Bytes()
	raw[0] ^= 0x01
	corrupted, err := NewCiphertext512(raw)
	require.NoError(t, err)

	got := key.Decapsulate(corrupted)
	require.NotEqual(t, ss, got)

	// Implicit rejection is deterministic, not an error.
	got2 := key.Decapsulate(corrupted)
	require.Equal(t, got, got2)
}

func TestDistinctKeyPairsProduceDistinctSharedSecrets(t *testing.T) {
	key1, err := GenerateKey512(rand.Reader)
	require.NoError(t, err)
	key2, err := GenerateKey512(rand.Reader)
	require.NoError(t, err)

	require.False(t, key1.PublicKey().Equal(key2.PublicKey()))

	ct, ss, err := key1.PublicKey().Encapsulate(rand.Reader)
	require.NoError(t, err)

	// Decapsulating key1's ciphertext under key2 must not recover ss: key2
	// falls back to its own implicit-rejection value.
	got := key2.Decapsulate(ct)
	require.NotEqual(t, ss, got)
}

func TestInvalidLengthErrors(t *testing.T) {
	_, err := NewPublicKey512(make([]byte, PublicKeySize512-1))
	require.ErrorIs(t, err, ErrInvalidPublicKeyLength)

	_, err = NewPrivateKey512(make([]byte, PrivateKeySize512-1))
	require.ErrorIs(t, err, ErrInvalidPrivateKeyLength)

	_, err = NewCiphertext512(make([]byte, CiphertextSize512-1))
	require.ErrorIs(t, err, ErrInvalidCiphertextLength)

	_, err = NewKeyFromSeed512(make([]byte, SeedSize-1), make([]byte, SeedSize))
	require.ErrorIs(t, err, ErrInvalidSeedLength)
}

func TestPublicKeyCompareOrdersConsistentlyWithEqual(t *testing.T) {
	key1, err := GenerateKey512(rand.Reader)
	require.NoError(t, err)
	key2, err := GenerateKey512(rand.Reader)
	require.NoError(t, err)

	pk1, pk2 := key1.PublicKey(), key2.PublicKey()
	require.Equal(t, pk1.Equal(pk2), pk1.Compare(pk2) == 0)
	require.Equal(t, 0, pk1.Compare(pk1))
}

func BenchmarkGenerateKey512(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateKey512(rand.Reader)
	}
}

func BenchmarkGenerateKey768(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateKey768(rand.Reader)
	}
}

func BenchmarkGenerateKey1024(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateKey1024(rand.Reader)
	}
}

func BenchmarkEncapsulate512(b *testing.B) {
	key, _ := GenerateKey512(rand.Reader)
	pk := key.PublicKey()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pk.Encapsulate(rand.Reader)
	}
}

func BenchmarkDecapsulate512(b *testing.B) {
	key, _ := GenerateKey512(rand.Reader)
	ct, _, _ := key.PublicKey().Encapsulate(rand.Reader)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key.Decapsulate(ct)
	}
}
