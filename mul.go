package ui512

import (
	"math/bits"
)

// u1024 is a double-width product, limb 0 most significant, like U512.
type u1024 [2 * limbs]uint64

// mul512to1024 is schoolbook long multiplication. Row i multiplies b by
// a[i] and accumulates into the product starting at limb i+1; the carry out
// of the row lands in limb i, which no earlier row has touched.
//
// The largest intermediate is (2^64-1)^2 + 2*(2^64-1) == 2^128-1, so hi never
// overflows when both the accumulated limb and the row carry are added.
func mul512to1024(a, b *U512) (p u1024) {
	for i := limbs - 1; i >= 0; i-- {
		if a[i] == 0 {
			continue
		}
		var carry uint64
		for j := limbs - 1; j >= 0; j-- {
			hi, lo := bits.Mul64(a[i], b[j])
			var c uint64
			lo, c = bits.Add64(lo, p[i+j+1], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			p[i+j+1] = lo
			carry = hi
		}
		p[i] = carry
	}
	return p
}

// Mul computes the full 1024-bit product of a and b. The low half is stored
// in lo and the high half in hi; hi may be nil if it is not wanted. If lo and
// hi are the same buffer it receives the high half.
func (k Kernel) Mul(lo, hi, a, b *U512) {
	p := mul512to1024(a, b)
	copy(lo[:], p[limbs:])
	if hi != nil {
		copy(hi[:], p[:limbs])
	}
}

// MulTrunc stores the low 512 bits of a*b in dest and reports whether any of
// the product was lost.
func (k Kernel) MulTrunc(dest, a, b *U512) (overflow bool) {
	p := mul512to1024(a, b)
	for i := 0; i < limbs; i++ {
		if p[i] != 0 {
			overflow = true
			break
		}
	}
	copy(dest[:], p[limbs:])
	return overflow
}

// MulUint64 stores the low 512 bits of a*v in dest and returns the limb that
// overflowed out of the top.
func (k Kernel) MulUint64(dest, a *U512, v uint64) (carry uint64) {
	for i := limbs - 1; i >= 0; i-- {
		hi, lo := bits.Mul64(a[i], v)
		var c uint64
		dest[i], c = bits.Add64(lo, carry, 0)
		carry = hi + c
	}
	return carry
}
