package mlkem

// zetas holds the Montgomery-domain twiddle factors used by ntt and invNTT,
// indexed by the order they're consumed in (bit-reversed powers of the
// primitive 256th root of unity, zeta=17 mod q). Computed once offline by
// zeta(i, 7) for i in [0,128) and transcribed here as a literal table.
var zetas = [128]fieldElement{
	-1044, -758, -359, -1517, 1493, 1422, 287, 202,
	-171, 622, 1577, 182, 962, -1202, -1474, 1468,
	573, -1325, 264, 383, -829, 1458, -1602, -130,
	-681, 1017, 732, 608, -1542, 411, -205, -1571,
	1223, 652, -552, 1015, -1293, 1491, -282, -1544,
	516, -8, -320, -666, -1618, -1162, 126, 1469,
	-853, -90, -271, 830, 107, -1421, -247, -951,
	-398, 961, -1508, -725, 448, -1065, 677, -1275,
	-1103, 430, 555, 843, -1251, 871, 1550, 105,
	422, 587, 177, -235, -291, -460, 1574, 1653,
	-246, 778, 1159, -147, -777, 1483, -602, 1119,
	-1590, 644, -872, 349, 418, 329, -156, -75,
	817, 1097, 603, 610, 1322, -1285, -1465, 384,
	-1215, -136, 1218, -1335, -874, 220, -1187, -1659,
	-1185, -1530, -1278, 794, -1510, -854, -870, 478,
	-108, -308, 996, 991, 958, -1460, 1522, 1628,
}

// ntt applies the forward, incomplete Cooley-Tukey transform, mapping a
// normal-domain ring element to 128 degree-2 base rings. X^256+1 doesn't
// fully split over F_q, so the recursion stops at length 2 rather than 1:
// the last layer's pairs are left as (a0 + a1*X) bases, later combined
// pointwise by mulMontgomery instead of a final butterfly.
func ntt(f Poly) PolyNTT {
	r := PolyNTT(f)
	k := 1
	for length := 128; length >= 2; length >>= 1 {
		for start := 0; start < n; start += 2 * length {
			zeta := zetas[k]
			k++
			rLo := r[start : start+length]
			rHi := r[start+length : start+2*length]
			for j := 0; j < length; j++ {
				t := fieldMul(zeta, rHi[j])
				rHi[j] = fieldSub(rLo[j], t)
				rLo[j] = fieldAdd(rLo[j], t)
			}
		}
	}
	for i := range r {
		r[i] = barrettReduce(r[i])
	}
	return r
}

// invNTT applies the inverse, Gentleman-Sande transform, returning a
// normal-domain polynomial. The final pass multiplies every coefficient by
// fieldF to undo both the implicit 128x scale left by the incomplete
// transform and the Montgomery factor, in a single multiply.
func invNTT(r PolyNTT) Poly {
	k := 127
	for length := 2; length <= 128; length <<= 1 {
		for start := 0; start < n; start += 2 * length {
			zeta := zetas[k]
			k--
			rLo := r[start : start+length]
			rHi := r[start+length : start+2*length]
			for j := 0; j < length; j++ {
				t := rLo[j]
				rLo[j] = fieldAdd(t, rHi[j])
				rHi[j] = fieldMul(zeta, fieldSub(rHi[j], t))
			}
		}
	}
	var f Poly
	for i := range r {
		f[i] = fieldMul(r[i], fieldF)
	}
	return f
}
