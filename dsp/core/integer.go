package core

import (
	"math/bits"
	"unsafe"
)

// Signed is the set of signed integer sample types a fixed-point filter can
// run on. Right shifts on these types are arithmetic (sign-extending).
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// BitWidth returns the number of bits in T, sign bit included.
func BitWidth[T Signed]() uint {
	var zero T
	return uint(unsafe.Sizeof(zero)) * 8
}

// MinMax returns the smallest and largest values representable by T.
func MinMax[T Signed]() (lo, hi int64) {
	w := BitWidth[T]()
	hi = int64(uint64(1)<<(w-1) - 1)
	return -hi - 1, hi
}

// BitsFor returns the number of magnitude bits needed to hold |v|,
// excluding the sign bit. BitsFor(0) is 0 and BitsFor(1023) is 10.
func BitsFor(v int64) uint {
	m := uint64(v)
	if v < 0 {
		m = uint64(-(v + 1)) + 1
	}
	return uint(bits.Len64(m))
}
