package ui512

type RandSource interface {
	Uint64() uint64
}

// DifferenceU512 subtracts the smaller of a and b from the larger.
func DifferenceU512(a, b U512) U512 {
	if a.Cmp(b) >= 0 {
		return a.Sub(b)
	}
	return b.Sub(a)
}

func LargerU512(a, b U512) U512 {
	if b.GreaterThan(a) {
		return b
	}
	return a
}

func SmallerU512(a, b U512) U512 {
	if b.LessThan(a) {
		return b
	}
	return a
}

const (
	lcgModulus    = 1<<63 - 1   // Mersenne prime
	lcgMultiplier = 68719476721 // closest prime below 2^36
	lcgIncrement  = 268435399   // closest prime below 2^28
	lcgSeed       = 4294967291  // closest prime below 2^32
)

// LCG is a Knuth-style linear congruential generator. It is not suitable for
// anything but producing the same test operands on every run and every
// machine. Each output is below 2^63.
//
// The zero LCG is ready to use and seeds itself on first use.
type LCG struct {
	state uint64
}

var _ RandSource = &LCG{}

// NewLCG returns an LCG starting from seed. A zero seed selects the default.
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Uint64 advances the generator and returns the new state. The multiply wraps
// at 2^64 before the modulus is taken, so sequences are stable across
// platforms.
func (l *LCG) Uint64() uint64 {
	if l.state == 0 {
		l.state = lcgSeed
	}
	l.state = (lcgMultiplier*l.state + lcgIncrement) % lcgModulus
	return l.state
}
