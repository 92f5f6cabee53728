package ui512

import (
	"math/big"
)

const (
	limbs    = 8
	limbBits = 64
	bitSize  = limbs * limbBits

	maxUint64 = 1<<64 - 1

	maxUint64Float  = float64(maxUint64)     // (1<<64) - 1
	wrapUint64Float = float64(maxUint64) + 1 // 1 << 64

	intSize = 32 << (^uint(0) >> 63)
)

var (
	MaxU512  = U512{maxUint64, maxUint64, maxUint64, maxUint64, maxUint64, maxUint64, maxUint64, maxUint64}
	ZeroU512 U512

	big0 = new(big.Int).SetInt64(0)
	big1 = new(big.Int).SetInt64(1)

	maxBigUint64 = new(big.Int).SetUint64(maxUint64)

	// wrapBigU512 is 1 << 512, used to simulate over/underflow:
	wrapBigU512 = new(big.Int).Lsh(big1, bitSize)

	// maxBigU512 is (1 << 512) - 1:
	maxBigU512 = new(big.Int).Sub(wrapBigU512, big1)

	// maxU512Float is the smallest float64 that no longer fits, 1 << 512.
	maxU512Float, _ = new(big.Float).SetInt(wrapBigU512).Float64()

	// This specifies the maximum error allowed between the float64 version of
	// a 512-bit uint and the result of the same operation performed by
	// big.Float.
	//
	// Calculate like so:
	//	return math.Nextafter(1.0, 2.0) - 1.0
	//
	floatDiffLimit, _ = new(big.Float).SetString("2.220446049250313080847263336181640625e-16")
)
