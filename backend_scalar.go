package ui512

import (
	"math/bits"
)

// scalarBackend walks the limbs one at a time. Aliasing safety comes from the
// walk order: each destination limb is written only after every source limb
// that still needs it has been read.
type scalarBackend struct{}

func (scalarBackend) Name() string { return "scalar" }

func (scalarBackend) Zero(dest *U512) {
	for i := range dest {
		dest[i] = 0
	}
}

func (scalarBackend) Copy(dest, src *U512) {
	if dest == src {
		return
	}
	for i := range dest {
		dest[i] = src[i]
	}
}

func (scalarBackend) SetUint64(dest *U512, v uint64) {
	for i := 0; i < limbs-1; i++ {
		dest[i] = 0
	}
	dest[limbs-1] = v
}

func (scalarBackend) Compare(a, b *U512) int {
	for i := 0; i < limbs; i++ {
		if a[i] > b[i] {
			return 1
		} else if a[i] < b[i] {
			return -1
		}
	}
	return 0
}

func (scalarBackend) CompareUint64(a *U512, v uint64) int {
	for i := 0; i < limbs-1; i++ {
		if a[i] != 0 {
			return 1
		}
	}
	if a[limbs-1] > v {
		return 1
	} else if a[limbs-1] < v {
		return -1
	}
	return 0
}

func (scalarBackend) Add(dest, a, b *U512) (carry uint64) {
	for i := limbs - 1; i >= 0; i-- {
		dest[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return carry
}

func (scalarBackend) AddUint64(dest, a *U512, v uint64) (carry uint64) {
	dest[limbs-1], carry = bits.Add64(a[limbs-1], v, 0)
	for i := limbs - 2; i >= 0; i-- {
		dest[i], carry = bits.Add64(a[i], 0, carry)
	}
	return carry
}

func (scalarBackend) Sub(dest, a, b *U512) (borrow uint64) {
	for i := limbs - 1; i >= 0; i-- {
		dest[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return borrow
}

func (scalarBackend) SubUint64(dest, a *U512, v uint64) (borrow uint64) {
	dest[limbs-1], borrow = bits.Sub64(a[limbs-1], v, 0)
	for i := limbs - 2; i >= 0; i-- {
		dest[i], borrow = bits.Sub64(a[i], 0, borrow)
	}
	return borrow
}

func (scalarBackend) And(dest, a, b *U512) {
	for i := range dest {
		dest[i] = a[i] & b[i]
	}
}

func (scalarBackend) AndNot(dest, a, b *U512) {
	for i := range dest {
		dest[i] = a[i] &^ b[i]
	}
}

func (scalarBackend) Or(dest, a, b *U512) {
	for i := range dest {
		dest[i] = a[i] | b[i]
	}
}

func (scalarBackend) Xor(dest, a, b *U512) {
	for i := range dest {
		dest[i] = a[i] ^ b[i]
	}
}

func (scalarBackend) Not(dest, a *U512) {
	for i := range dest {
		dest[i] = ^a[i]
	}
}

// Lsh moves data towards limb 0, so it walks from limb 0 upwards: dest[i]
// only needs src[i+w] and src[i+w+1], neither of which has been written yet.
func (scalarBackend) Lsh(dest, src *U512, n uint) {
	if n == 0 {
		scalarBackend{}.Copy(dest, src)
		return
	} else if n >= bitSize {
		scalarBackend{}.Zero(dest)
		return
	}

	w, r := int(n/limbBits), n%limbBits
	for i := 0; i < limbs; i++ {
		var v uint64
		if j := i + w; j < limbs {
			v = src[j] << r
			if r > 0 && j+1 < limbs {
				v |= src[j+1] >> (limbBits - r)
			}
		}
		dest[i] = v
	}
}

// Rsh moves data towards limb 7, so it walks from limb 7 downwards: dest[i]
// only needs src[i-w] and src[i-w-1], neither of which has been written yet.
func (scalarBackend) Rsh(dest, src *U512, n uint) {
	if n == 0 {
		scalarBackend{}.Copy(dest, src)
		return
	} else if n >= bitSize {
		scalarBackend{}.Zero(dest)
		return
	}

	w, r := int(n/limbBits), n%limbBits
	for i := limbs - 1; i >= 0; i-- {
		var v uint64
		if j := i - w; j >= 0 {
			v = src[j] >> r
			if r > 0 && j-1 >= 0 {
				v |= src[j-1] << (limbBits - r)
			}
		}
		dest[i] = v
	}
}

func (scalarBackend) MostSignificantBit(src *U512) int {
	for i := 0; i < limbs; i++ {
		if src[i] != 0 {
			return (limbs-1-i)*limbBits + (limbBits - 1 - bits.LeadingZeros64(src[i]))
		}
	}
	return -1
}

func (scalarBackend) LeastSignificantBit(src *U512) int {
	for i := limbs - 1; i >= 0; i-- {
		if src[i] != 0 {
			return (limbs-1-i)*limbBits + bits.TrailingZeros64(src[i])
		}
	}
	return -1
}
