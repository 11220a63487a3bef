package bloom

import "math/bits"

// fibMultiplier is 2^64/phi, the mixing constant used throughout the
// kernel (position advance, cross-round subfilter re-seed, hash post-mix).
const fibMultiplier = 0x9E3779B97F4A7C15

// mulx64 performs the extended 64x64->128 bit unsigned multiply the kernel's
// position strategy and mixing steps are built on. bits.Mul64 is already
// intrinsified by the compiler to the native wide-multiply instruction on
// every architecture it supports, and falls back to the 32x32 decomposition
// elsewhere, so there is no separate portable path to hand-write here.
func mulx64(x, y uint64) (lo, hi uint64) {
	hi, lo = bits.Mul64(x, y)
	return lo, hi
}

// mix64 folds a 64x64->128 multiply by the golden-ratio constant into a
// single 64-bit value. Used both to re-seed a subfilter's rolling sub-state
// once it has consumed more entropy than one hash word provides, and
// (optionally) to post-mix a caller's hash that isn't already avalanching.
func mix64(h uint64) uint64 {
	lo, hi := mulx64(h, fibMultiplier)
	return lo ^ hi
}
