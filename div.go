package ui512

import (
	"math/bits"
)

// binaryDivisionMaxShift is the largest alignment shift for which the
// shift-and-subtract loop is used instead of Algorithm D. Each step of the
// binary loop costs a compare, a subtract and two shifts, so it only wins
// when the quotient has very few bits.
const binaryDivisionMaxShift = 16

// Divide sets q and r to the quotient and remainder of dividend / divisor, so
// that dividend == q*divisor + r and r < divisor. Either q or r may be nil.
//
// Both results are computed before either is stored, so q and r may alias
// the dividend or the divisor. If q and r are the same buffer it receives the
// remainder.
//
// If divisor is zero, ErrDivideByZero is returned and neither q nor r is
// modified.
func (k Kernel) Divide(q, r, dividend, divisor *U512) error {
	var qv, rv U512
	if err := k.quoRem(&qv, &rv, dividend, divisor); err != nil {
		return err
	}
	if q != nil {
		*q = qv
	}
	if r != nil {
		*r = rv
	}
	return nil
}

// DivideUint64 sets q to dividend / v and returns dividend % v. q may be nil.
func (k Kernel) DivideUint64(q, dividend *U512, v uint64) (rem uint64, err error) {
	if v == 0 {
		return 0, ErrDivideByZero
	}
	var qv U512
	rem = quoRemBy64(&qv, dividend, v)
	if q != nil {
		*q = qv
	}
	return rem, nil
}

// quoRem requires q and r to be distinct from each other and from the
// sources.
func (k Kernel) quoRem(q, r, u, by *U512) error {
	byMSB := k.MostSignificantBit(by)
	if byMSB < 0 {
		return ErrDivideByZero
	}

	if cmp := k.Compare(u, by); cmp < 0 {
		k.Zero(q)
		k.Copy(r, u) // it's 100% remainder
		return nil

	} else if cmp == 0 {
		k.SetUint64(q, 1) // dividend and divisor are the same
		k.Zero(r)
		return nil
	}

	if shift, ok := k.isPow2(by); ok {
		var mask U512
		k.Rsh(q, u, shift)
		k.SubUint64(&mask, by, 1)
		k.And(r, u, &mask)
		return nil
	}

	if byMSB < limbBits {
		k.Zero(r)
		r[limbs-1] = quoRemBy64(q, u, by[limbs-1])
		return nil
	}

	shift := uint(k.MostSignificantBit(u) - byMSB)
	if shift <= binaryDivisionMaxShift {
		k.quoRemBinary(q, r, u, by, shift)
	} else {
		quoRemKnuth(q, r, u, by, byMSB/limbBits+1)
	}
	return nil
}

// quoRemBinary is long division in base 2: the divisor is aligned with the
// dividend's top bit, then subtracted and shifted back down one bit at a
// time.
func (k Kernel) quoRemBinary(q, r, u, by *U512, shift uint) {
	var d U512
	k.Copy(r, u)
	k.Lsh(&d, by, shift)
	k.Zero(q)

	for {
		k.Lsh(q, q, 1)

		if k.Compare(r, &d) >= 0 {
			k.Sub(r, r, &d)
			q[limbs-1] |= 1
		}

		k.Rsh(&d, &d, 1)

		if shift == 0 {
			break
		}
		shift--
	}
}

// quoRemBy64 divides u by a single limb, returning the remainder. q may alias
// u. The running remainder is always less than v, so Div64 cannot panic.
func quoRemBy64(q, u *U512, v uint64) (rem uint64) {
	for i := 0; i < limbs; i++ {
		q[i], rem = bits.Div64(rem, u[i], v)
	}
	return rem
}

// quoRemKnuth is Knuth's Algorithm D (TAOCP vol. 2, 4.3.1) for a divisor of
// n >= 2 significant limbs. Internally it works on little-endian limb slices
// so that limb j of a working value has weight 2^(64*j).
func quoRemKnuth(q, r, u, by *U512, n int) {
	var un [limbs + 1]uint64
	var vn [limbs]uint64
	var qn [limbs]uint64

	// D1: normalise so the divisor's top limb has its high bit set. Shifting
	// both operands by s leaves the quotient unchanged and scales the
	// remainder by 2^s.
	s := uint(bits.LeadingZeros64(by[limbs-n]))
	for i := 0; i < limbs; i++ {
		un[i] = u[limbs-1-i]
	}
	for i := 0; i < n; i++ {
		vn[i] = by[limbs-1-i]
	}
	shlLimbs(un[:], s)
	shlLimbs(vn[:n], s)

	m := limbs - n
	for m > 0 && un[m+n-1] == 0 && un[m+n] == 0 {
		m--
	}

	dh, dl := vn[n-1], vn[n-2]

	// D2-D7
	for j := m; j >= 0; j-- {
		u2, u1, u0 := un[j+n], un[j+n-1], un[j+n-2]

		// D3: estimate qhat from the top two limbs, then refine with the
		// third. The invariant un[j+n] <= dh holds at every step.
		var qhat, rhat uint64
		rhatOverflow := false
		if u2 >= dh {
			qhat = maxUint64
			var c uint64
			rhat, c = bits.Add64(u1, dh, 0)
			rhatOverflow = c != 0
		} else {
			qhat, rhat = bits.Div64(u2, u1, dh)
		}
		for !rhatOverflow {
			ph, pl := bits.Mul64(qhat, dl)
			if ph < rhat || (ph == rhat && pl <= u0) {
				break
			}
			qhat--
			var c uint64
			rhat, c = bits.Add64(rhat, dh, 0)
			rhatOverflow = c != 0
		}

		// D4: multiply and subtract.
		borrow := subMulLimbs(un[j:j+n], vn[:n], qhat)
		var b uint64
		un[j+n], b = bits.Sub64(u2, borrow, 0)

		// D6: qhat was one too large; add the divisor back.
		if b != 0 {
			qhat--
			un[j+n] += addLimbs(un[j:j+n], vn[:n])
		}
		qn[j] = qhat
	}

	// D8: unnormalise the remainder.
	shrLimbs(un[:n], s, un[n])

	for i := 0; i < limbs; i++ {
		q[limbs-1-i] = qn[i]
		if i < n {
			r[limbs-1-i] = un[i]
		} else {
			r[limbs-1-i] = 0
		}
	}
}

// shlLimbs shifts a little-endian limb slice left by s < 64 bits in place.
// Bits shifted out of the top limb are lost; callers leave headroom.
func shlLimbs(z []uint64, s uint) {
	if s == 0 {
		return
	}
	for i := len(z) - 1; i > 0; i-- {
		z[i] = z[i]<<s | z[i-1]>>(limbBits-s)
	}
	z[0] <<= s
}

// shrLimbs shifts a little-endian limb slice right by s < 64 bits in place,
// shifting in the low bits of top.
func shrLimbs(z []uint64, s uint, top uint64) {
	if s == 0 {
		return
	}
	for i := 0; i < len(z)-1; i++ {
		z[i] = z[i]>>s | z[i+1]<<(limbBits-s)
	}
	z[len(z)-1] = z[len(z)-1]>>s | top<<(limbBits-s)
}

// subMulLimbs computes z -= x*y over len(x) limbs and returns the limb that
// must be borrowed from above.
func subMulLimbs(z, x []uint64, y uint64) (borrow uint64) {
	for i := range x {
		hi, lo := bits.Mul64(x[i], y)
		var c uint64
		lo, c = bits.Add64(lo, borrow, 0)
		hi += c
		var b uint64
		z[i], b = bits.Sub64(z[i], lo, 0)
		borrow = hi + b
	}
	return borrow
}

// addLimbs computes z += x over len(x) limbs and returns the carry.
func addLimbs(z, x []uint64) (carry uint64) {
	for i := range x {
		z[i], carry = bits.Add64(z[i], x[i], carry)
	}
	return carry
}
