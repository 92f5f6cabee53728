/*
Package ui512 provides a fixed-width 512-bit unsigned integer (U512) and the
zero-allocation kernel that operates on it.

A U512 is eight 64-bit limbs. Limb 0 holds the most significant 64 bits and
limb 7 the least significant:

	value = u[0]<<448 | u[1]<<384 | ... | u[6]<<64 | u[7]

Bits are numbered 0 (bit 0 of u[7]) to 511 (bit 63 of u[0]).

The kernel functions work on caller-owned buffers and report overflow
explicitly. Every destination may alias any source:

	var a, b, sum U512
	SetUint64(&a, math.MaxUint64)
	SetUint64(&b, 1)
	carry := Add(&sum, &a, &b) // sum == 1<<64, carry == 0

	var q, r U512
	if err := Divide(&q, &r, &sum, &b); err != nil { ... }

The kernel is implemented by interchangeable backends (see Backend). The
package picks one at init; results never depend on which one was picked.
Build with the ui512_scalar tag to force the scalar backend.

U512 is also usable as a value type, in the same style as math/big but without
the pointers; all value methods return new values:

	u1 := U512From64(math.MaxUint64)
	u2 := U512From64(math.MaxUint64)
	fmt.Println(u1.Mul(u2))
	// Output: 340282366920938463426481119284349108225

U512 can be created from a variety of sources:

	U512From64(v uint64) U512
	U512FromRaw(limbs [8]uint64) U512
	U512FromString(s string) (out U512, accurate bool, err error)
	U512FromBigInt(v *big.Int) (out U512, accurate bool)
	U512FromFloat64(f float64) (out U512, inRange bool)
	RandU512(source RandSource) U512

U512 supports the following formatting and marshalling interfaces:

  - fmt.Formatter
  - fmt.Stringer
  - json.Marshaler
  - json.Unmarshaler
  - encoding.TextMarshaler
  - encoding.TextUnmarshaler
*/
package ui512
