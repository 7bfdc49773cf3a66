package mlkem

import (
	"crypto/sha3"
)

// getUniform generates a uniformly random NTT-domain polynomial by
// rejection sampling SHAKE-128 output keyed on the public seed rho and a
// pair of matrix indices. This is the A-hat[i][j] generator.
func getUniform(rho []byte, i, j byte) PolyNTT {
	h := sha3.NewSHAKE128()
	h.Write(rho)
	h.Write([]byte{i, j})

	var buf [168]byte // SHAKE128 rate
	var a PolyNTT
	k := 0

	for {
		h.Read(buf[:])
		for off := 0; off < len(buf) && k < n; off += 3 {
			d1 := uint16(buf[off]) | uint16(buf[off+1]&0x0f)<<8
			d2 := uint16(buf[off+1]>>4) | uint16(buf[off+2])<<4
			if d1 < q {
				a[k] = fieldElement(d1)
				k++
			}
			if d2 < q && k < n {
				a[k] = fieldElement(d2)
				k++
			}
		}
		if k >= n {
			return a
		}
	}
}

// getNoise samples a centered-binomial-noise polynomial keyed on seed and
// nonce, using SHAKE-256 as the PRF. eta must be 2 or 3.
func getNoise(seed []byte, nonce byte, eta int) Poly {
	h := sha3.NewSHAKE256()
	h.Write(seed)
	h.Write([]byte{nonce})

	buf := make([]byte, n*2*eta/8)
	h.Read(buf)

	if eta == 2 {
		return cbd2(buf)
	}
	return cbd3(buf)
}
