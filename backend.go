package ui512

import (
	"golang.org/x/sys/cpu"
)

// Backend implements the leaf engines of the kernel: primitives, addition and
// subtraction, logical ops, shifts and bit scans. All backends produce
// identical results for identical inputs; they differ only in how the work is
// laid out.
//
// Every destination may alias any source.
type Backend interface {
	Name() string

	Zero(dest *U512)
	Copy(dest, src *U512)
	SetUint64(dest *U512, v uint64)
	Compare(a, b *U512) int
	CompareUint64(a *U512, v uint64) int

	// Add and Sub return the carry (or borrow) out of limb 0, either 0 or 1.
	// dest always receives the result modulo 2^512.
	Add(dest, a, b *U512) (carry uint64)
	AddUint64(dest, a *U512, v uint64) (carry uint64)
	Sub(dest, a, b *U512) (borrow uint64)
	SubUint64(dest, a *U512, v uint64) (borrow uint64)

	And(dest, a, b *U512)
	AndNot(dest, a, b *U512)
	Or(dest, a, b *U512)
	Xor(dest, a, b *U512)
	Not(dest, a *U512)

	// Shifts by 512 or more produce zero.
	Lsh(dest, src *U512, n uint)
	Rsh(dest, src *U512, n uint)

	// MostSignificantBit and LeastSignificantBit return a bit position in
	// [0, 511], or -1 if src is zero.
	MostSignificantBit(src *U512) int
	LeastSignificantBit(src *U512) int
}

var (
	Scalar Backend = scalarBackend{}
	Wide   Backend = wideBackend{}
)

var defaultKernel = Kernel{Backend: selectBackend()}

func selectBackend() Backend {
	if forceScalar {
		return Scalar
	}
	if cpu.X86.HasAVX512F {
		return Wide
	}
	return Scalar
}

// DefaultBackend returns the backend used by the package-level functions.
func DefaultBackend() Backend { return defaultKernel.Backend }

// DefaultKernel returns the kernel used by the package-level functions.
func DefaultKernel() Kernel { return defaultKernel }

// Backends lists every backend compiled into the package.
func Backends() []Backend { return []Backend{Scalar, Wide} }

// BackendByName finds a backend by its Name, or returns nil.
func BackendByName(name string) Backend {
	for _, b := range Backends() {
		if b.Name() == name {
			return b
		}
	}
	return nil
}

// CPUFeatures reports the processor features the backend selection looked at.
func CPUFeatures() map[string]bool {
	return map[string]bool{
		"avx2":     cpu.X86.HasAVX2,
		"avx512f":  cpu.X86.HasAVX512F,
		"avx512dq": cpu.X86.HasAVX512DQ,
		"bmi2":     cpu.X86.HasBMI2,
		"adx":      cpu.X86.HasADX,
	}
}

func Zero(dest *U512)                                  { defaultKernel.Zero(dest) }
func Copy(dest, src *U512)                             { defaultKernel.Copy(dest, src) }
func SetUint64(dest *U512, v uint64)                   { defaultKernel.SetUint64(dest, v) }
func Compare(a, b *U512) int                           { return defaultKernel.Compare(a, b) }
func CompareUint64(a *U512, v uint64) int              { return defaultKernel.CompareUint64(a, v) }
func Add(dest, a, b *U512) (carry uint64)              { return defaultKernel.Add(dest, a, b) }
func AddUint64(dest, a *U512, v uint64) (carry uint64) { return defaultKernel.AddUint64(dest, a, v) }
func Sub(dest, a, b *U512) (borrow uint64)             { return defaultKernel.Sub(dest, a, b) }
func SubUint64(dest, a *U512, v uint64) (borrow uint64) {
	return defaultKernel.SubUint64(dest, a, v)
}
func And(dest, a, b *U512)              { defaultKernel.And(dest, a, b) }
func AndNot(dest, a, b *U512)           { defaultKernel.AndNot(dest, a, b) }
func Or(dest, a, b *U512)               { defaultKernel.Or(dest, a, b) }
func Xor(dest, a, b *U512)              { defaultKernel.Xor(dest, a, b) }
func Not(dest, a *U512)                 { defaultKernel.Not(dest, a) }
func Lsh(dest, src *U512, n uint)       { defaultKernel.Lsh(dest, src, n) }
func Rsh(dest, src *U512, n uint)       { defaultKernel.Rsh(dest, src, n) }
func MostSignificantBit(src *U512) int  { return defaultKernel.MostSignificantBit(src) }
func LeastSignificantBit(src *U512) int { return defaultKernel.LeastSignificantBit(src) }
func LeadingZeros(src *U512) uint       { return defaultKernel.LeadingZeros(src) }
func TrailingZeros(src *U512) uint      { return defaultKernel.TrailingZeros(src) }
func Mul(lo, hi, a, b *U512)            { defaultKernel.Mul(lo, hi, a, b) }
func MulTrunc(dest, a, b *U512) bool    { return defaultKernel.MulTrunc(dest, a, b) }
func MulUint64(dest, a *U512, v uint64) uint64 {
	return defaultKernel.MulUint64(dest, a, v)
}

// Divide sets q and r to the quotient and remainder of dividend / divisor.
// Either q or r may be nil. If divisor is zero, ErrDivideByZero is returned and
// neither q nor r is modified.
func Divide(q, r, dividend, divisor *U512) error {
	return defaultKernel.Divide(q, r, dividend, divisor)
}

// DivideUint64 sets q to dividend / v and returns dividend % v.
func DivideUint64(q, dividend *U512, v uint64) (rem uint64, err error) {
	return defaultKernel.DivideUint64(q, dividend, v)
}
