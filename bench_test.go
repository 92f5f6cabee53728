package ui512

import (
	"fmt"
	"math/big"
	"testing"
)

var (
	BenchBigIntResult *big.Int
	BenchBoolResult   bool
	BenchFloatResult  float64
	BenchIntResult    int
	BenchStringResult string
	BenchU512Result   U512
	BenchUint64Result uint64
)

// benchOperands are fixed so results are comparable between runs; they come
// from the LCG with its default seed.
func benchOperands() (a, b U512) {
	src := NewLCG(0)
	a, b = RandU512(src), RandU512(src)
	b[0], b[1] = 0, 0 // keep the divisor shorter than the dividend
	return a, b
}

func benchBackends(b *testing.B, fn func(b *testing.B, k Kernel)) {
	for _, be := range Backends() {
		k := Kernel{Backend: be}
		b.Run(be.Name(), func(b *testing.B) { fn(b, k) })
	}
}

func BenchmarkAdd(b *testing.B) {
	x, y := benchOperands()
	benchBackends(b, func(b *testing.B, k Kernel) {
		var d U512
		for i := 0; i < b.N; i++ {
			BenchUint64Result = k.Add(&d, &x, &y)
		}
	})
}

func BenchmarkSub(b *testing.B) {
	x, y := benchOperands()
	benchBackends(b, func(b *testing.B, k Kernel) {
		var d U512
		for i := 0; i < b.N; i++ {
			BenchUint64Result = k.Sub(&d, &x, &y)
		}
	})
}

func BenchmarkCompare(b *testing.B) {
	x := MaxU512
	y := MaxU512
	benchBackends(b, func(b *testing.B, k Kernel) {
		for i := 0; i < b.N; i++ {
			BenchIntResult = k.Compare(&x, &y)
		}
	})
}

func BenchmarkShift(b *testing.B) {
	x, _ := benchOperands()
	for _, n := range []uint{1, 64, 100, 448} {
		b.Run(fmt.Sprintf("lsh/%d", n), func(b *testing.B) {
			benchBackends(b, func(b *testing.B, k Kernel) {
				var d U512
				for i := 0; i < b.N; i++ {
					k.Lsh(&d, &x, n)
				}
				BenchU512Result = d
			})
		})
		b.Run(fmt.Sprintf("rsh/%d", n), func(b *testing.B) {
			benchBackends(b, func(b *testing.B, k Kernel) {
				var d U512
				for i := 0; i < b.N; i++ {
					k.Rsh(&d, &x, n)
				}
				BenchU512Result = d
			})
		})
	}
}

func BenchmarkBitScan(b *testing.B) {
	x := U512{5: 1 << 40}
	benchBackends(b, func(b *testing.B, k Kernel) {
		for i := 0; i < b.N; i++ {
			BenchIntResult = k.MostSignificantBit(&x) + k.LeastSignificantBit(&x)
		}
	})
}

func BenchmarkMul(b *testing.B) {
	x, y := benchOperands()
	var lo, hi U512
	for i := 0; i < b.N; i++ {
		Mul(&lo, &hi, &x, &y)
	}
	BenchU512Result = hi
}

func BenchmarkDivide(b *testing.B) {
	x, y := benchOperands()
	for _, tc := range []struct {
		name string
		by   U512
	}{
		{"limb", U512{7: 121525124}},
		{"pow2", U512{3: 1 << 17}},
		{"binary", x.Rsh(5)},
		{"knuth", y},
	} {
		b.Run(tc.name, func(b *testing.B) {
			benchBackends(b, func(b *testing.B, k Kernel) {
				var q, r U512
				for i := 0; i < b.N; i++ {
					_ = k.Divide(&q, &r, &x, &tc.by)
				}
				BenchU512Result = q
			})
		})
	}
}

func BenchmarkU512String(b *testing.B) {
	x, _ := benchOperands()
	for i := 0; i < b.N; i++ {
		BenchStringResult = x.String()
	}
}

func BenchmarkU512AsFloat64(b *testing.B) {
	x, _ := benchOperands()
	for i := 0; i < b.N; i++ {
		BenchFloatResult = x.AsFloat64()
	}
}

func BenchmarkBigIntAdd(b *testing.B) {
	x, y := benchOperands()
	bx, by := x.AsBigInt(), y.AsBigInt()
	var dest big.Int
	for i := 0; i < b.N; i++ {
		dest.Add(bx, by)
	}
	BenchBigIntResult = &dest
}

func BenchmarkBigIntMul(b *testing.B) {
	x, y := benchOperands()
	bx, by := x.AsBigInt(), y.AsBigInt()
	var dest big.Int
	for i := 0; i < b.N; i++ {
		dest.Mul(bx, by)
	}
	BenchBigIntResult = &dest
}

func BenchmarkBigIntDiv(b *testing.B) {
	x, y := benchOperands()
	u, by := x.AsBigInt(), y.AsBigInt()
	var q, r big.Int
	for i := 0; i < b.N; i++ {
		q.QuoRem(u, by, &r)
	}
	BenchBigIntResult = &q
}

func BenchmarkBigIntCmpEqual(b *testing.B) {
	v1, v2 := MaxU512.AsBigInt(), MaxU512.AsBigInt()
	for i := 0; i < b.N; i++ {
		BenchIntResult = v1.Cmp(v2)
	}
}
