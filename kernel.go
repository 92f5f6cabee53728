package ui512

// Kernel is the full operation set: the leaf engines of its Backend plus the
// multiplicative engine, which is built on top of them and shared by every
// backend.
//
// The zero Kernel is not usable; construct one with a Backend:
//
//	k := Kernel{Backend: Scalar}
type Kernel struct {
	Backend
}

// LeadingZeros returns the number of leading zero bits in src; 512 for zero.
func (k Kernel) LeadingZeros(src *U512) uint {
	return uint(bitSize - 1 - k.MostSignificantBit(src))
}

// TrailingZeros returns the number of trailing zero bits in src; 512 for zero.
func (k Kernel) TrailingZeros(src *U512) uint {
	if b := k.LeastSignificantBit(src); b >= 0 {
		return uint(b)
	}
	return bitSize
}

// isPow2 reports whether src has exactly one bit set, and where.
func (k Kernel) isPow2(src *U512) (bit uint, ok bool) {
	lsb := k.LeastSignificantBit(src)
	if lsb < 0 || lsb != k.MostSignificantBit(src) {
		return 0, false
	}
	return uint(lsb), true
}
