package bloom

import (
	"testing"

	"bloomkernel/block"
)

func TestRequestedRangeSkipsSubtractionBelowOverhang(t *testing.T) {
	// usedBlockSize=16, bucketSize=4: a 96-bit overhang. mBits at or below
	// that pins the skip branch (m <= overhang keeps m unchanged).
	if got := requestedRange(64, 16, 4); got != 2 {
		t.Errorf("requestedRange(64, 16, 4) = %d, want 2 (skip path, m unchanged)", got)
	}
	// mBits above the overhang pins the subtract branch.
	if got := requestedRange(200, 16, 4); got != 4 {
		t.Errorf("requestedRange(200, 16, 4) = %d, want 4 (subtract path, overhang removed)", got)
	}
}

func TestCapacityStableAcrossOverlappingBuckets(t *testing.T) {
	// MultiBlock[uint32](4) has a 16-byte block; forcing a 4-byte bucket
	// stride makes usedBlockSize > bucketSize, the only configuration that
	// gives requestedRange a nonzero overhang to subtract or skip.
	sub := block.NewMultiBlock[uint32](4)
	f, err := NewFilter[string](64, StringHash, WithSubfilter(sub), WithBucketSize(4))
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	cap1 := f.Capacity()

	f2, err := NewFilter[string](cap1, StringHash, WithSubfilter(sub), WithBucketSize(4))
	if err != nil {
		t.Fatalf("NewFilter (second): %v", err)
	}
	if cap2 := f2.Capacity(); cap2 != cap1 {
		t.Errorf("NewFilter(f.Capacity()).Capacity() = %d, want %d (capacity-stability invariant)", cap2, cap1)
	}
}
