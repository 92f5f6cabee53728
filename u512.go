package ui512

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// U512 is an unsigned 512-bit integer stored as eight 64-bit limbs, most
// significant limb first. The zero value is 0.
type U512 [limbs]uint64

func U512From64(v uint64) U512           { return U512{limbs - 1: v} }
func U512From32(v uint32) U512           { return U512{limbs - 1: uint64(v)} }
func U512FromRaw(raw [limbs]uint64) U512 { return U512(raw) }

// U512FromString creates a U512 from a string. Overflow truncates to MaxU512
// and sets accurate to 'false'. Decimal is the default; "0x", "0o" and "0b"
// prefixes select hex, octal and binary. Signs and '_' digit separators are
// rejected.
func U512FromString(s string) (out U512, accurate bool, err error) {
	if strings.ContainsAny(s, "+-_") {
		return out, false, fmt.Errorf("ui512: u512 string %q invalid", s)
	}
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return out, false, fmt.Errorf("ui512: u512 string %q invalid", s)
	}
	out, accurate = U512FromBigInt(b)
	return out, accurate, nil
}

// MustU512FromString is U512FromString for hard-coded constants; it panics on
// invalid or inaccurate input.
func MustU512FromString(s string) U512 {
	out, accurate, err := U512FromString(s)
	if err != nil {
		panic(err)
	}
	if !accurate {
		panic(fmt.Errorf("ui512: u512 string %q overflows", s))
	}
	return out
}

// U512FromBigInt creates a U512 from a big.Int. Overflow truncates to MaxU512
// and sets accurate to 'false'.
func U512FromBigInt(v *big.Int) (out U512, accurate bool) {
	if v.Sign() < 0 {
		return out, false
	}

	words := v.Bits()

	switch intSize {
	case 64:
		if len(words) > limbs {
			return MaxU512, false
		}
		for i, w := range words {
			out[limbs-1-i] = uint64(w)
		}
		return out, true

	case 32:
		if len(words) > limbs*2 {
			return MaxU512, false
		}
		for i, w := range words {
			out[limbs-1-i/2] |= uint64(w) << (32 * uint(i%2))
		}
		return out, true

	default:
		panic("ui512: unsupported bit size")
	}
}

// RandU512 generates an unsigned 512-bit random integer from an external source.
func RandU512(source RandSource) (out U512) {
	for i := range out {
		out[i] = source.Uint64()
	}
	return out
}

func (u U512) IsZero() bool { return u == ZeroU512 }

// Raw returns the limbs, most significant first. See U512FromRaw() for the
// counterpart.
func (u U512) Raw() [limbs]uint64 { return [limbs]uint64(u) }

// IsUint64 reports whether u can be represented as a uint64.
func (u U512) IsUint64() bool { return defaultKernel.MostSignificantBit(&u) < limbBits }

// AsUint64 truncates the U512 to fit in a uint64. Values outside the range
// will over/underflow. See IsUint64() if you want to check before you convert.
func (u U512) AsUint64() uint64 { return u[limbs-1] }

func (u U512) String() string {
	if u.IsUint64() {
		return strconv.FormatUint(u[limbs-1], 10)
	}
	return u.AsBigInt().String()
}

func (u U512) Format(s fmt.State, c rune) {
	u.AsBigInt().Format(s, c)
}

func (u U512) IntoBigInt(b *big.Int) {
	switch intSize {
	case 64:
		words := b.Bits()
		if cap(words) < limbs {
			words = make([]big.Word, limbs)
		}
		words = words[:limbs]
		for i := range words {
			words[i] = big.Word(u[limbs-1-i])
		}
		b.SetBits(words)

	case 32:
		words := b.Bits()
		if cap(words) < limbs*2 {
			words = make([]big.Word, limbs*2)
		}
		words = words[:limbs*2]
		for i := range words {
			words[i] = big.Word(u[limbs-1-i/2] >> (32 * uint(i%2)))
		}
		b.SetBits(words)

	default:
		panic("ui512: unsupported bit size")
	}
}

func (u U512) AsBigInt() (b *big.Int) {
	var v big.Int
	u.IntoBigInt(&v)
	return &v
}

func (u U512) AsBigFloat() (b *big.Float) {
	return new(big.Float).SetInt(u.AsBigInt())
}

func (u U512) Cmp(n U512) int        { return defaultKernel.Compare(&u, &n) }
func (u U512) Cmp64(n uint64) int    { return defaultKernel.CompareUint64(&u, n) }
func (u U512) Equal(n U512) bool     { return u == n }
func (u U512) Equal64(n uint64) bool { return defaultKernel.CompareUint64(&u, n) == 0 }

func (u U512) GreaterThan(n U512) bool      { return u.Cmp(n) > 0 }
func (u U512) GreaterOrEqualTo(n U512) bool { return u.Cmp(n) >= 0 }
func (u U512) LessThan(n U512) bool         { return u.Cmp(n) < 0 }
func (u U512) LessOrEqualTo(n U512) bool    { return u.Cmp(n) <= 0 }

func (u U512) Add(n U512) (v U512) {
	defaultKernel.Add(&v, &u, &n)
	return v
}

func (u U512) Add64(n uint64) (v U512) {
	defaultKernel.AddUint64(&v, &u, n)
	return v
}

func (u U512) Sub(n U512) (v U512) {
	defaultKernel.Sub(&v, &u, &n)
	return v
}

func (u U512) Sub64(n uint64) (v U512) {
	defaultKernel.SubUint64(&v, &u, n)
	return v
}

func (u U512) Inc() (v U512) { return u.Add64(1) }
func (u U512) Dec() (v U512) { return u.Sub64(1) }

// Mul returns u*n modulo 2^512. See MulFull if you need the high half.
func (u U512) Mul(n U512) (v U512) {
	defaultKernel.MulTrunc(&v, &u, &n)
	return v
}

func (u U512) Mul64(n uint64) (v U512) {
	defaultKernel.MulUint64(&v, &u, n)
	return v
}

// MulFull returns the full 1024-bit product of u and n as two halves.
func (u U512) MulFull(n U512) (hi, lo U512) {
	defaultKernel.Mul(&lo, &hi, &u, &n)
	return hi, lo
}

// Quo returns the quotient u/by for by != 0. If by == 0, a division-by-zero
// run-time panic occurs.
func (u U512) Quo(by U512) (q U512) {
	q, _ = u.QuoRem(by)
	return q
}

// QuoRem returns the quotient q and remainder r for by != 0. If by == 0, a
// division-by-zero run-time panic occurs. See Divide for the error-returning
// form.
//
// As both values are unsigned, this is simultaneously T-division and
// Euclidean division:
//
//	q = u/by
//	r = u - by*q
func (u U512) QuoRem(by U512) (q, r U512) {
	if err := defaultKernel.Divide(&q, &r, &u, &by); err != nil {
		panic(err.Error())
	}
	return q, r
}

// Rem returns the remainder of u%by for by != 0. If by == 0, a
// division-by-zero run-time panic occurs.
func (u U512) Rem(by U512) (r U512) {
	_, r = u.QuoRem(by)
	return r
}

func (u U512) And(n U512) (v U512) {
	defaultKernel.And(&v, &u, &n)
	return v
}

func (u U512) AndNot(n U512) (v U512) {
	defaultKernel.AndNot(&v, &u, &n)
	return v
}

func (u U512) Or(n U512) (v U512) {
	defaultKernel.Or(&v, &u, &n)
	return v
}

func (u U512) Xor(n U512) (v U512) {
	defaultKernel.Xor(&v, &u, &n)
	return v
}

func (u U512) Not() (v U512) {
	defaultKernel.Not(&v, &u)
	return v
}

func (u U512) Lsh(n uint) (v U512) {
	defaultKernel.Lsh(&v, &u, n)
	return v
}

func (u U512) Rsh(n uint) (v U512) {
	defaultKernel.Rsh(&v, &u, n)
	return v
}

func (u U512) LeadingZeros() uint  { return defaultKernel.LeadingZeros(&u) }
func (u U512) TrailingZeros() uint { return defaultKernel.TrailingZeros(&u) }

// BitLen returns the length of the absolute value of u in bits. The bit
// length of 0 is 0.
func (u U512) BitLen() int { return defaultKernel.MostSignificantBit(&u) + 1 }

// Bit returns the value of the i'th bit of u. The bit index must be in
// [0, 511], or Bit will panic.
func (u U512) Bit(i int) uint {
	if i < 0 || i >= bitSize {
		panic("ui512: bit out of range")
	}
	return uint(u[limbs-1-i/limbBits]>>uint(i%limbBits)) & 1
}

// SetBit returns a copy of u with u's i'th bit set to b (0 or 1). If b is not
// 0 or 1, SetBit will panic. If i < 0 or i >= 512, SetBit will panic.
func (u U512) SetBit(i int, b uint) (out U512) {
	if i < 0 || i >= bitSize {
		panic("ui512: bit out of range")
	}
	out = u
	limb, bit := limbs-1-i/limbBits, uint(i%limbBits)
	switch b {
	case 0:
		out[limb] &^= 1 << bit
	case 1:
		out[limb] |= 1 << bit
	default:
		panic("ui512: bit value not 0 or 1")
	}
	return out
}

func (u U512) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *U512) UnmarshalText(bts []byte) (err error) {
	v, accurate, err := U512FromString(string(bts))
	if err != nil {
		return err
	}
	if !accurate {
		return fmt.Errorf("ui512: u512 string %q overflows", string(bts))
	}
	*u = v
	return nil
}

func (u U512) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

func (u *U512) UnmarshalJSON(bts []byte) (err error) {
	if len(bts) > 0 && bts[0] == '"' {
		ln := len(bts)
		if ln < 2 || bts[ln-1] != '"' {
			return fmt.Errorf("ui512: u512 invalid JSON %q", string(bts))
		}
		bts = bts[1 : ln-1]
	}
	return u.UnmarshalText(bts)
}
