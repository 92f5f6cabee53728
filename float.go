package ui512

import (
	"math"
)

// U512FromFloat64 creates a U512 from a float64. Any fractional portion
// will be truncated towards zero. Floats outside the bounds of a U512
// may be discarded or clamped.
//
// NaN is treated as 0, inRange is set to false.
func U512FromFloat64(f float64) (out U512, inRange bool) {
	if f == 0 {
		return out, true

	} else if f < 0 {
		return out, false

	} else if f < wrapUint64Float {
		return U512From64(uint64(f)), true

	} else if f < maxU512Float {
		// f == frac * 2^exp with frac in [0.5, 1), so frac * 2^53 is the
		// exact 53-bit mantissa. f > 2^64 here, so exp > 53.
		frac, exp := math.Frexp(f)
		mant := uint64(frac * (1 << 53))
		out = U512From64(mant)
		defaultKernel.Lsh(&out, &out, uint(exp-53))
		return out, true

	} else if f != f { // (f != f) == NaN
		return out, false

	} else {
		return MaxU512, false
	}
}

// AsFloat64 returns the nearest float64 to u, rounding half to even.
func (u U512) AsFloat64() float64 {
	msb := defaultKernel.MostSignificantBit(&u)
	if msb < limbBits {
		return float64(u[limbs-1])
	}

	// Keep the top 64 bits and fold everything below them into a sticky bit;
	// float64 only has 53 bits of mantissa so the conversion rounds once.
	shift := uint(msb - (limbBits - 1))
	var top U512
	defaultKernel.Rsh(&top, &u, shift)
	v := top[limbs-1]
	if defaultKernel.TrailingZeros(&u) < shift {
		v |= 1
	}
	return math.Ldexp(float64(v), int(shift))
}
