package block

import "github.com/klauspost/cpuid/v2"

// FastMultiBlock32 is the no-AVX2 fallback for an eight-lane, 32-bit-word
// multiblock: without a portable Go intrinsic for lane-parallel SIMD
// compare/or, it reproduces MultiBlock[uint32] bit-for-bit rather than
// inventing a separate scalar algorithm that could diverge from it for the
// same (hash, K'). HasAVX2 is exposed only so callers and benchmarks can
// report whether the running CPU has the hardware a real SIMD build would
// use; it never changes the result.
type FastMultiBlock32 struct {
	inner MultiBlock[uint32]
}

// NewFastMultiBlock32 builds an 8-lane-capable discipline using kPrime
// (<=8) of the lanes. kPrime>8 is silently clamped to 8 rather than
// rejected - the original rejects K>8 with a static_assert at compile
// time, which Go's runtime-valued kPrime has no equivalent of; callers
// that need a hard error on an out-of-range kPrime should check
// f.K() != kPrime after construction.
func NewFastMultiBlock32(kPrime int) FastMultiBlock32 {
	if kPrime > 8 {
		kPrime = 8
	}
	return FastMultiBlock32{inner: NewMultiBlock[uint32](kPrime)}
}

// HasAVX2 reports whether the running CPU has the instruction set a
// lane-parallel SIMD build would require; informational only.
func HasAVX2() bool {
	return cpuid.CPU.Supports(cpuid.AVX2)
}

func (f FastMultiBlock32) K() int { return f.inner.K() }

func (f FastMultiBlock32) BlockSize() int { return f.inner.BlockSize() }

func (f FastMultiBlock32) UsedSize() int { return f.inner.UsedSize() }

func (f FastMultiBlock32) Mark(block []byte, hash uint64) { f.inner.Mark(block, hash) }

func (f FastMultiBlock32) Check(block []byte, hash uint64) bool { return f.inner.Check(block, hash) }

func (f FastMultiBlock32) FPR(i int, win float64) float64 { return f.inner.FPR(i, win) }
