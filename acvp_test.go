package mlkem

import (
	"bytes"
	"compress/gzip"
	"encoding/hex"
	"encoding/json"
	"os"
	"testing"
)

// hexBytes is a helper type for JSON unmarshaling of hex strings.
type hexBytes []byte

func (h *hexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*h = b
	return nil
}

func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// vector is one known-answer test case: a deterministic key pair, a
// deterministic encapsulation against it, and the resulting shared secret.
type vector struct {
	Main   hexBytes `json:"main"`
	Reject hexBytes `json:"reject"`
	Pk     hexBytes `json:"pk"`
	Sk     hexBytes `json:"sk"`
	ESeed  hexBytes `json:"e_seed"`
	Ct     hexBytes `json:"ct"`
	Ss     hexBytes `json:"ss"`
}

func readVectors(t *testing.T, name string) []vector {
	t.Helper()
	data, err := readGzip("testdata/" + name + ".json.gz")
	if err != nil {
		t.Skipf("could not read test data: %v", err)
	}

	var vectors []vector
	if err := json.Unmarshal(data, &vectors); err != nil {
		t.Fatalf("parsing %s: %v", name, err)
	}
	return vectors
}

func TestKnownAnswer512(t *testing.T) {
	vectors := readVectors(t, "mlkem512")
	for i, v := range vectors {
		key, err := NewKeyFromSeed512(v.Main, v.Reject)
		if err != nil {
			t.Fatalf("case %d: NewKeyFromSeed512: %v", i, err)
		}

		pk := key.PublicKey()
		if got := pk.Bytes(); !bytes.Equal(got, v.Pk) {
			t.Errorf("case %d: public key mismatch\ngot:  %x\nwant: %x", i, got, v.Pk)
		}
		if got := key.Bytes(); !bytes.Equal(got, v.Sk) {
			t.Errorf("case %d: private key mismatch\ngot:  %x\nwant: %x", i, got, v.Sk)
		}

		ct, ss := pk.EncapsulateFromSeed(v.ESeed)
		if got := ct.Bytes(); !bytes.Equal(got, v.Ct) {
			t.Errorf("case %d: ciphertext mismatch\ngot:  %x\nwant: %x", i, got, v.Ct)
		}
		if !bytes.Equal(ss[:], v.Ss) {
			t.Errorf("case %d: encapsulated shared secret mismatch\ngot:  %x\nwant: %x", i, ss[:], v.Ss)
		}

		dss := key.Decapsulate(ct)
		if !bytes.Equal(dss[:], v.Ss) {
			t.Errorf("case %d: decapsulated shared secret mismatch\ngot:  %x\nwant: %x", i, dss[:], v.Ss)
		}
	}
}

func TestKnownAnswer768(t *testing.T) {
	vectors := readVectors(t, "mlkem768")
	for i, v := range vectors {
		key, err := NewKeyFromSeed768(v.Main, v.Reject)
		if err != nil {
			t.Fatalf("case %d: NewKeyFromSeed768: %v", i, err)
		}

		pk := key.PublicKey()
		if got := pk.Bytes(); !bytes.Equal(got, v.Pk) {
			t.Errorf("case %d: public key mismatch\ngot:  %x\nwant: %x", i, got, v.Pk)
		}
		if got := key.Bytes(); !bytes.Equal(got, v.Sk) {
			t.Errorf("case %d: private key mismatch\ngot:  %x\nwant: %x", i, got, v.Sk)
		}

		ct, ss := pk.EncapsulateFromSeed(v.ESeed)
		if got := ct.Bytes(); !bytes.Equal(got, v.Ct) {
			t.Errorf("case %d: ciphertext mismatch\ngot:  %x\nwant: %x", i, got, v.Ct)
		}
		if !bytes.Equal(ss[:], v.Ss) {
			t.Errorf("case %d: encapsulated shared secret mismatch\ngot:  %x\nwant: %x", i, ss[:], v.Ss)
		}

		dss := key.Decapsulate(ct)
		if !bytes.Equal(dss[:], v.Ss) {
			t.Errorf("case %d: decapsulated shared secret mismatch\ngot:  %x\nwant: %x", i, dss[:], v.Ss)
		}
	}
}

func TestKnownAnswer1024(t *testing.T) {
	vectors := readVectors(t, "mlkem1024")
	for i, v := range vectors {
		key, err := NewKeyFromSeed1024(v.Main, v.Reject)
		if err != nil {
			t.Fatalf("case %d: NewKeyFromSeed1024: %v", i, err)
		}

		pk := key.PublicKey()
		if got := pk.Bytes(); !bytes.Equal(got, v.Pk) {
			t.Errorf("case %d: public key mismatch\ngot:  %x\nwant: %x", i, got, v.Pk)
		}
		if got := key.Bytes(); !bytes.Equal(got, v.Sk) {
			t.Errorf("case %d: private key mismatch\ngot:  %x\nwant: %x", i, got, v.Sk)
		}

		ct, ss := pk.EncapsulateFromSeed(v.ESeed)
		if got := ct.Bytes(); !bytes.Equal(got, v.Ct) {
			t.Errorf("case %d: ciphertext mismatch\ngot:  %x\nwant: %x", i, got, v.Ct)
		}
		if !bytes.Equal(ss[:], v.Ss) {
			t.Errorf("case %d: encapsulated shared secret mismatch\ngot:  %x\nwant: %x", i, ss[:], v.Ss)
		}

		dss := key.Decapsulate(ct)
		if !bytes.Equal(dss[:], v.Ss) {
			t.Errorf("case %d: decapsulated shared secret mismatch\ngot:  %x\nwant: %x", i, dss[:], v.Ss)
		}
	}
}

// TestImplicitRejectionDeterminism exercises the bit-flip path of the FO
// transform: decapsulating a ciphertext that does not correspond to any
// valid encapsulation must still return a shared secret, deterministic in
// the private key and the corrupted ciphertext, rather than an error.
func TestImplicitRejectionDeterminism(t *testing.T) {
	vectors := readVectors(t, "mlkem512")
	if len(vectors) == 0 {
		t.Skip("no vectors available")
	}
	v := vectors[0]

	key, err := NewKeyFromSeed512(v.Main, v.Reject)
	if err != nil {
		t.Fatalf("NewKeyFromSeed512: %v", err)
	}

	corrupt := make([]byte, len(v.Ct))
	copy(corrupt, v.Ct)
	corrupt[0] ^= 0x01

	ct, err := NewCiphertext512(corrupt)
	if err != nil {
		t.Fatalf("NewCiphertext512: %v", err)
	}

	ss1 := key.Decapsulate(ct)
	ss2 := key.Decapsulate(ct)
	if ss1 != ss2 {
		t.Error("decapsulating the same corrupted ciphertext twice gave different shared secrets")
	}
	if bytes.Equal(ss1[:], v.Ss) {
		t.Error("decapsulating a corrupted ciphertext reproduced the valid shared secret")
	}
}
