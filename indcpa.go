package mlkem

import "crypto/sha3"

// cpaKeyGen runs IND-CPA key generation for a module of rank k = len(sHat)
// with noise width eta. sHat and tHat must already be allocated with length
// k; aHat must be allocated with length k*k and is filled row-major, so that
// aHat[i*k+j] holds Â[i][j]. Returns the public seed rho.
func cpaKeyGen(d []byte, eta int, sHat, tHat, aHat []PolyNTT) (rho [32]byte) {
	k := len(sHat)
	h := sha3.Sum512(d)
	copy(rho[:], h[:32])
	sigma := h[32:64]

	for i := 0; i < k; i++ {
		sHat[i] = getNoise(sigma, byte(i), eta).toNTT()
	}
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			aHat[i*k+j] = getUniform(rho[:], byte(i), byte(j))
		}
	}

	col := make([]PolyNTT, k)
	for i := 0; i < k; i++ {
		eHat := getNoise(sigma, byte(k+i), eta).toNTT()
		// t~_i sums over the transposed column i of Â, not row i: the
		// encrypt side below uses the non-transposed convention.
		for j := 0; j < k; j++ {
			col[j] = aHat[j*k+i]
		}
		acc := toMont(mulFoldMontgomery(col, sHat))
		tHat[i] = polyAdd(acc, eHat)
	}
	zeroize(h[:])
	return rho
}

// cpaEncrypt runs IND-CPA encryption for a module of rank k = len(tHat).
// aHat is row-major as produced by cpaKeyGen. u and v are returned in the
// normal (coefficient) domain, ready for compression into a ciphertext.
func cpaEncrypt(r, msg []byte, eta1, eta2 int, tHat, aHat []PolyNTT) (u []Poly, v Poly) {
	k := len(tHat)

	rHat := make([]PolyNTT, k)
	for i := 0; i < k; i++ {
		rHat[i] = getNoise(r, byte(i), eta1).toNTT()
	}

	u = make([]Poly, k)
	row := make([]PolyNTT, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			row[j] = aHat[i*k+j]
		}
		e1 := getNoise(r, byte(k+i), eta2)
		u[i] = polyAdd(mulFoldMontgomery(row, rHat).fromNTT(), e1)
	}

	e2 := getNoise(r, byte(2*k), eta2)
	v = polyAdd(polyAdd(mulFoldMontgomery(tHat, rHat).fromNTT(), e2), fromMsg(msg))
	return u, v
}

// cpaDecrypt runs IND-CPA decryption for a module of rank k = len(sHat),
// returning the recovered 32-byte message.
func cpaDecrypt(u []Poly, v Poly, sHat []PolyNTT) []byte {
	uHat := make([]PolyNTT, len(u))
	for i, ui := range u {
		uHat[i] = ui.toNTT()
	}
	m := polySub(mulFoldMontgomery(sHat, uHat).fromNTT(), v)
	return toMsg(m)
}
