package ui512

import (
	"math/bits"
)

// wideBackend follows the shape of a 512-bit vector register implementation:
// an operand is loaded into all eight lanes at once, per-lane results are
// reduced to 8-bit lane masks, and anything that crosses lanes (carries,
// scans, shifts) is resolved from those masks instead of by walking limbs.
//
// Lanes are numbered from the least significant limb, so lane j holds limb
// 7-j and bit j of a lane mask refers to lane j.
//
// Sources are always fully loaded before the destination is stored, so every
// operation is alias-safe without any ordering tricks.
type wideBackend struct{}

type lanes [limbs]uint64

func load(src *U512) (l lanes) {
	l[0], l[1], l[2], l[3] = src[7], src[6], src[5], src[4]
	l[4], l[5], l[6], l[7] = src[3], src[2], src[1], src[0]
	return l
}

func (l *lanes) store(dest *U512) {
	dest[0], dest[1], dest[2], dest[3] = l[7], l[6], l[5], l[4]
	dest[4], dest[5], dest[6], dest[7] = l[3], l[2], l[1], l[0]
}

func broadcastLow(v uint64) lanes { return lanes{v} }

// nonzero returns the mask of lanes that hold a nonzero value.
func (l *lanes) nonzero() (m uint8) {
	for j := range l {
		if l[j] != 0 {
			m |= 1 << uint(j)
		}
	}
	return m
}

// cmpMasks returns the masks of lanes where a > b and where a < b.
func cmpMasks(a, b *lanes) (gt, lt uint8) {
	for j := range a {
		if a[j] > b[j] {
			gt |= 1 << uint(j)
		}
		if a[j] < b[j] {
			lt |= 1 << uint(j)
		}
	}
	return gt, lt
}

// resolveCarries turns per-lane generate and propagate masks into the mask of
// lanes that receive a carry (or borrow) from the lane below, plus the carry
// out of the top lane.
//
// A lane generates when its own add overflowed (or its sub underflowed) and
// propagates when an incoming carry would ripple straight through it. The two
// masks never overlap, so adding generate to (generate|propagate) is a plain
// binary addition whose internal carries are exactly the lane carries.
func resolveCarries(generate, propagate uint8) (in uint8, out uint64) {
	s := uint(generate)<<1 + uint(propagate)
	return uint8(s) ^ propagate, uint64(s >> limbs)
}

func (wideBackend) Name() string { return "wide" }

func (wideBackend) Zero(dest *U512) {
	var z lanes
	z.store(dest)
}

func (wideBackend) Copy(dest, src *U512) {
	l := load(src)
	l.store(dest)
}

func (wideBackend) SetUint64(dest *U512, v uint64) {
	l := broadcastLow(v)
	l.store(dest)
}

// The most significant differing lane decides. gt and lt never share a bit,
// so whichever mask has that lane set is also the larger mask.
func (wideBackend) Compare(a, b *U512) int {
	la, lb := load(a), load(b)
	gt, lt := cmpMasks(&la, &lb)
	if gt > lt {
		return 1
	} else if gt < lt {
		return -1
	}
	return 0
}

func (wideBackend) CompareUint64(a *U512, v uint64) int {
	la, lb := load(a), broadcastLow(v)
	gt, lt := cmpMasks(&la, &lb)
	if gt > lt {
		return 1
	} else if gt < lt {
		return -1
	}
	return 0
}

func addLanes(dest *U512, a, b *lanes) (carry uint64) {
	var sum lanes
	var generate, propagate uint8
	for j := range sum {
		sum[j] = a[j] + b[j]
		if sum[j] < a[j] {
			generate |= 1 << uint(j)
		} else if sum[j] == maxUint64 {
			propagate |= 1 << uint(j)
		}
	}

	in, carry := resolveCarries(generate, propagate)
	for j := range sum {
		sum[j] += uint64(in>>uint(j)) & 1
	}
	sum.store(dest)
	return carry
}

func subLanes(dest *U512, a, b *lanes) (borrow uint64) {
	var diff lanes
	var generate, propagate uint8
	for j := range diff {
		diff[j] = a[j] - b[j]
		if a[j] < b[j] {
			generate |= 1 << uint(j)
		} else if diff[j] == 0 {
			propagate |= 1 << uint(j)
		}
	}

	in, borrow := resolveCarries(generate, propagate)
	for j := range diff {
		diff[j] -= uint64(in>>uint(j)) & 1
	}
	diff.store(dest)
	return borrow
}

func (wideBackend) Add(dest, a, b *U512) (carry uint64) {
	la, lb := load(a), load(b)
	return addLanes(dest, &la, &lb)
}

func (wideBackend) AddUint64(dest, a *U512, v uint64) (carry uint64) {
	la, lb := load(a), broadcastLow(v)
	return addLanes(dest, &la, &lb)
}

func (wideBackend) Sub(dest, a, b *U512) (borrow uint64) {
	la, lb := load(a), load(b)
	return subLanes(dest, &la, &lb)
}

func (wideBackend) SubUint64(dest, a *U512, v uint64) (borrow uint64) {
	la, lb := load(a), broadcastLow(v)
	return subLanes(dest, &la, &lb)
}

func (wideBackend) And(dest, a, b *U512) {
	la, lb := load(a), load(b)
	for j := range la {
		la[j] &= lb[j]
	}
	la.store(dest)
}

func (wideBackend) AndNot(dest, a, b *U512) {
	la, lb := load(a), load(b)
	for j := range la {
		la[j] &^= lb[j]
	}
	la.store(dest)
}

func (wideBackend) Or(dest, a, b *U512) {
	la, lb := load(a), load(b)
	for j := range la {
		la[j] |= lb[j]
	}
	la.store(dest)
}

func (wideBackend) Xor(dest, a, b *U512) {
	la, lb := load(a), load(b)
	for j := range la {
		la[j] ^= lb[j]
	}
	la.store(dest)
}

func (wideBackend) Not(dest, a *U512) {
	la := load(a)
	for j := range la {
		la[j] = ^la[j]
	}
	la.store(dest)
}

// lane returns lane j, or 0 for lanes outside the register.
func (l *lanes) lane(j int) uint64 {
	if j < 0 || j >= limbs {
		return 0
	}
	return l[j]
}

// Shifts permute whole lanes first (w), then funnel the residual bits (r)
// between neighbouring lanes. Go defines x<<64 and x>>64 as 0, which covers
// r == 0 without a branch.
func (wideBackend) Lsh(dest, src *U512, n uint) {
	if n >= bitSize {
		var z lanes
		z.store(dest)
		return
	}
	in := load(src)
	w, r := int(n/limbBits), n%limbBits

	var out lanes
	for j := range out {
		out[j] = in.lane(j-w)<<r | in.lane(j-w-1)>>(limbBits-r)
	}
	out.store(dest)
}

func (wideBackend) Rsh(dest, src *U512, n uint) {
	if n >= bitSize {
		var z lanes
		z.store(dest)
		return
	}
	in := load(src)
	w, r := int(n/limbBits), n%limbBits

	var out lanes
	for j := range out {
		out[j] = in.lane(j+w)>>r | in.lane(j+w+1)<<(limbBits-r)
	}
	out.store(dest)
}

func (wideBackend) MostSignificantBit(src *U512) int {
	l := load(src)
	m := l.nonzero()
	if m == 0 {
		return -1
	}
	j := 7 - bits.LeadingZeros8(m)
	return j*limbBits + (limbBits - 1 - bits.LeadingZeros64(l[j]))
}

func (wideBackend) LeastSignificantBit(src *U512) int {
	l := load(src)
	m := l.nonzero()
	if m == 0 {
		return -1
	}
	j := bits.TrailingZeros8(m)
	return j*limbBits + bits.TrailingZeros64(l[j])
}
