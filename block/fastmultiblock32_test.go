package block

import "testing"

func TestFastMultiBlock32MarkAndCheck(t *testing.T) {
	f := NewFastMultiBlock32(6)
	buf := make([]byte, f.BlockSize())

	f.Mark(buf, 0xabcdef0123456789)
	if !f.Check(buf, 0xabcdef0123456789) {
		t.Error("expected marked hash to check true")
	}
}

func TestFastMultiBlock32ClampsKPrime(t *testing.T) {
	f := NewFastMultiBlock32(20)
	if f.K() != 8 {
		t.Errorf("expected K() clamped to 8, got %d", f.K())
	}
}

func TestFastMultiBlock32SizesMatchKPrime(t *testing.T) {
	f := NewFastMultiBlock32(3)
	if f.UsedSize() != 12 {
		t.Errorf("expected UsedSize()==12 for K'==3, got %d", f.UsedSize())
	}
	if f.BlockSize() != 12 {
		t.Errorf("expected BlockSize()==12 for K'==3, got %d", f.BlockSize())
	}
}

func TestHasAVX2DoesNotPanic(t *testing.T) {
	_ = HasAVX2()
}

// TestFastMultiBlock32MatchesMultiBlock is the no-AVX2-fallback identity:
// fast_multiblock32<K> and multiblock<uint32_t,K> must produce the same
// bits for the same (hash, K'), since the former literally is the latter
// when there's no SIMD register to pack lanes into.
func TestFastMultiBlock32MatchesMultiBlock(t *testing.T) {
	for kPrime := 1; kPrime <= 8; kPrime++ {
		fast := NewFastMultiBlock32(kPrime)
		wide := NewMultiBlock[uint32](kPrime)

		hashes := []uint64{0, 1, 0xdeadbeefcafebabe, 0xffffffffffffffff, 0x1122334455667788}
		for _, h := range hashes {
			bufFast := make([]byte, fast.BlockSize())
			bufWide := make([]byte, wide.BlockSize())

			fast.Mark(bufFast, h)
			wide.Mark(bufWide, h)

			if len(bufFast) != len(bufWide) {
				t.Fatalf("K'=%d: block size mismatch: fast=%d wide=%d", kPrime, len(bufFast), len(bufWide))
			}
			for i := range bufFast {
				if bufFast[i] != bufWide[i] {
					t.Fatalf("K'=%d hash=%#x: byte %d differs: fast=%08b wide=%08b", kPrime, h, i, bufFast[i], bufWide[i])
				}
			}
			if !fast.Check(bufFast, h) || !wide.Check(bufWide, h) {
				t.Fatalf("K'=%d hash=%#x: expected both to check true on their own marks", kPrime, h)
			}
		}
	}
}
