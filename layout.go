package bloom

import (
	"sync"
	"unsafe"
)

// cacheLine is the assumed CPU cache line size in bytes, used both to align
// the backing buffer (so a bucket access touches as few lines as possible)
// and to size prefetch hints.
const cacheLine = 64

// emptyRange is the effective MCG range every zero-capacity filter uses:
// adjustRange(0), the smallest range congruent to +-3 (mod 8) that is >= 0.
var emptyRange = adjustRange(0)

// dummyCache holds one shared, read-only, all-ones buffer per distinct
// (bucketSize, tailSize) shape. A filter's bit array is never actually
// allocated for zero capacity - every such filter's MayContain reads are
// served from the entry here matching its subfilter's layout, which is
// what lets MayContain on an empty filter return true (the Bloom invariant:
// no false negatives) without a nil check on the read path. Entries are
// built lazily, once per shape, and never written to after construction -
// mutating paths detect "doesn't own storage" via bitArray.raw == nil and
// skip the write instead.
var (
	dummyMu    sync.Mutex
	dummyCache = map[[2]int][]byte{}
)

func dummyBuckets(bucketSize, tailSize int) []byte {
	key := [2]int{bucketSize, tailSize}

	dummyMu.Lock()
	defer dummyMu.Unlock()
	if b, ok := dummyCache[key]; ok {
		return b
	}
	b := make([]byte, spaceFor(emptyRange, bucketSize, tailSize))
	for i := range b {
		b[i] = 0xFF
	}
	dummyCache[key] = b
	return b
}

// bitArray is the kernel's raw bit storage. raw is the allocation this
// filter owns (nil for an empty or moved-from filter); buckets is the
// cacheline-aligned working window used for bucket addressing, long enough
// that a full block read at the last bucket position stays in bounds.
// used is the byte count significant to Capacity/Clear/Equal/combine - the
// rest is tail overhang past the last bucket.
type bitArray struct {
	raw     []byte
	buckets []byte
	used    int
}

// spaceFor returns the number of bytes to allocate for rng buckets of
// bucketSize bytes each, plus cacheline alignment slack and tailSize
// overhang past the last bucket.
func spaceFor(rng uint64, bucketSize, tailSize int) int {
	return (cacheLine - 1) + int(rng)*bucketSize + tailSize
}

// usedArraySize returns the byte count significant to Capacity/Clear/Equal:
// one full bucketSize stride per position, plus whatever of the subfilter's
// used value size spills past the last bucket's stride.
func usedArraySize(rng uint64, bucketSize, usedBlockSize int) int {
	if rng == 0 {
		return 0
	}
	return int(rng)*bucketSize + (usedBlockSize - bucketSize)
}

// newBitArray allocates (or, for rng==0, aliases the shared dummy) the
// backing storage for rng buckets.
func newBitArray(rng uint64, bucketSize, usedBlockSize, tailSize int) bitArray {
	if rng == 0 {
		return bitArray{raw: nil, buckets: dummyBuckets(bucketSize, tailSize), used: 0}
	}
	raw := make([]byte, spaceFor(rng, bucketSize, tailSize))
	off := alignOffset(raw, cacheLine)
	used := usedArraySize(rng, bucketSize, usedBlockSize)
	return bitArray{raw: raw, buckets: raw[off:], used: used}
}

// alignOffset returns the smallest non-negative shift such that
// &b[off] is a multiple of align. align must be a power of two.
func alignOffset(b []byte, align int) int {
	if len(b) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(&b[0]))
	return int((uintptr(align) - addr%uintptr(align)) % uintptr(align))
}

// block returns the blockSize-byte window starting at bucket position pos.
func (a *bitArray) block(pos uint64, bucketSize, blockSize int) []byte {
	p := int(pos) * bucketSize
	return a.buckets[p : p+blockSize]
}

func (a *bitArray) clearBytes() {
	clear(a.buckets[:a.used])
}

func (a *bitArray) copyBytesFrom(x *bitArray) {
	copy(a.buckets[:a.used], x.buckets[:x.used])
}

func (a *bitArray) equalBytes(x *bitArray) bool {
	if a.used != x.used {
		return false
	}
	if a.raw == nil {
		return true // both are empty; used==0 already checked above
	}
	for i := 0; i < a.used; i++ {
		if a.buckets[i] != x.buckets[i] {
			return false
		}
	}
	return true
}
