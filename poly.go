package mlkem

// Poly is a ring element in the normal (coefficient) domain: the
// polynomial sum p[i]*X^i in Z_q[X]/(X^n+1).
type Poly [n]fieldElement

// PolyNTT is a ring element in the NTT domain: 128 pairs of coefficients,
// each pair representing an element of Z_q[X]/(X^2-zeta) for the zeta at
// that pair's position.
type PolyNTT [n]fieldElement

// polyAdd and polySub work over either domain, since addition is computed
// coefficient-wise and commutes with the NTT.
func polyAdd[T ~[n]fieldElement](a, b T) T {
	var r T
	for i := range r {
		r[i] = fieldAdd(a[i], b[i])
	}
	return r
}

func polySub[T ~[n]fieldElement](a, b T) T {
	var r T
	for i := range r {
		r[i] = barrettReduce(fieldSub(a[i], b[i]))
	}
	return r
}

// toNTT and fromNTT move a ring element between domains.
func (p Poly) toNTT() PolyNTT   { return ntt(p) }
func (p PolyNTT) fromNTT() Poly { return invNTT(p) }

// mulMontgomery multiplies two NTT-domain elements pointwise: the product,
// in the NTT domain, of the ring elements a and b represent. Each of the
// 64 groups of 4 coefficients holds two degree-2 base rings, multiplied
// independently using a shared zeta and its negation.
func mulMontgomery(a, b PolyNTT) PolyNTT {
	var r PolyNTT
	for i := 0; i < 64; i++ {
		z := zetas[64+i]
		basemul(r[4*i:4*i+2], a[4*i:4*i+2], b[4*i:4*i+2], z)
		basemul(r[4*i+2:4*i+4], a[4*i+2:4*i+4], b[4*i+2:4*i+4], -z)
	}
	return r
}

// basemul computes (a0+a1*X)*(b0+b1*X) mod (X^2-zeta) and writes the
// result into r.
func basemul(r, a, b []fieldElement, zeta fieldElement) {
	r[0] = fieldAdd(fieldMul(a[0], b[0]), fieldMul(zeta, fieldMul(a[1], b[1])))
	r[1] = fieldAdd(fieldMul(a[0], b[1]), fieldMul(a[1], b[0]))
}

// mulFoldMontgomery computes the dot product sum_i a[i]*b[i] in the NTT
// domain, used for matrix-vector products such as A*s or A^T*r.
func mulFoldMontgomery(a, b []PolyNTT) PolyNTT {
	var r PolyNTT
	for i := range a {
		r = polyAdd(r, mulMontgomery(a[i], b[i]))
	}
	return r
}

// toMont rescales an NTT-domain element left under-scaled by
// mulFoldMontgomery back into proper Montgomery form.
func toMont(p PolyNTT) PolyNTT {
	var r PolyNTT
	for i := range r {
		r[i] = fieldMul(p[i], toMontConstant)
	}
	return r
}

// fromMsg encodes a 32-byte message as a polynomial by expanding each bit
// to a coefficient near 0 or near q/2.
func fromMsg(msg []byte) Poly {
	return decompress1(msg)
}

// toMsg decodes a polynomial back into a 32-byte message, the inverse of
// fromMsg under rounding.
func toMsg(p Poly) []byte {
	return compress1(p)
}
