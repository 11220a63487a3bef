package bloom

// Subfilter is the capability set a bit-marking discipline must implement:
// how K' bits get set/tested inside one addressable bucket, and the
// per-round false-positive estimate the calibrator needs. Block and Check
// operate on the bucket's blockSize-byte window directly rather than a
// typed value, since Go generics cannot parameterize a fixed-size array
// type by a runtime K', and the kernel already falls back to raw byte
// access whenever bucket and block alignment disagree - so byte windows
// are the uniform representation rather than a special case.
//
// Implementations are value types with no mutable state beyond what's fixed
// at construction (K', word width); the kernel calls their methods directly,
// once per round, never per bit.
type Subfilter interface {
	// K reports K', the number of bits this discipline sets per round.
	K() int

	// BlockSize reports the discipline's block width in bytes.
	BlockSize() int

	// UsedSize reports how many of BlockSize's bytes Mark/Check actually
	// touch; equal to BlockSize except for disciplines that only operate
	// on a prefix of their block (e.g. FastMultiBlock32 with K' < 8).
	UsedSize() int

	// Mark sets this round's K' bits into block, which is exactly
	// BlockSize bytes long, using hash as the entropy source.
	Mark(block []byte, hash uint64)

	// Check reports whether this round's K' bits are all set in block.
	Check(block []byte, hash uint64) bool

	// FPR estimates the probability that a fresh round's K' target bits
	// are all already set, given i prior insertions into a shared
	// w-bit-wide window (which may be wider than BlockSize when adjacent
	// buckets overlap).
	FPR(i int, w float64) float64
}

// filterCore is the K-round insert/may-contain engine shared by every
// element type: the hash-mixing pipeline, position strategy, and subfilter
// dispatch. It knows nothing about the element type T; Filter[T] layers
// hashing of T on top of it.
type filterCore struct {
	k          int
	sub        Subfilter
	bucketSize int
	blockSize  int
	usedSize   int
	tailSize   int

	hs mcgFastrange
	ar bitArray
}

// newFilterCore builds a core sized to hold at least mBits bits, using the
// given subfilter discipline for k outer rounds (distinct from the
// subfilter's own K'). bucketSize of 0 means "use the subfilter's used
// byte width" (no inter-bucket overlap).
func newFilterCore(mBits, k int, sub Subfilter, bucketSize int) (*filterCore, error) {
	if k < 1 || sub.K() < 1 {
		return nil, ErrInvalidParameter
	}
	blockSize := sub.BlockSize()
	usedSize := sub.UsedSize()
	if usedSize == 0 {
		usedSize = blockSize
	}
	if bucketSize == 0 {
		bucketSize = usedSize
	}
	if bucketSize > usedSize {
		return nil, ErrInvalidParameter
	}

	c := &filterCore{
		k:          k,
		sub:        sub,
		bucketSize: bucketSize,
		blockSize:  blockSize,
		usedSize:   usedSize,
		tailSize:   blockSize - bucketSize,
	}
	c.reinit(mBits)
	return c, nil
}

func (c *filterCore) reinit(mBits int) {
	c.hs = newMCGFastrange(requestedRange(mBits, c.usedSize, c.bucketSize))
	rng := uint64(0)
	if mBits > 0 {
		rng = c.hs.rangeValue()
	}
	c.ar = newBitArray(rng, c.bucketSize, c.usedSize, c.tailSize)
}

// requestedRange converts a requested bit capacity into the bucket count to
// request from the MCG/fastrange strategy, subtracting the overhang a
// single subfilter access can read past its own bucket stride so that
// NewFilter(f.Capacity()).Capacity() == f.Capacity(). The subtraction is
// skipped when m is too small to absorb it, which only matters for tiny
// capacities well under one bucket's width.
func requestedRange(mBits, usedBlockSize, bucketSize int) uint64 {
	overhang := (usedBlockSize - bucketSize) * 8
	m := mBits
	if m > overhang {
		m -= overhang
	}
	bucketBits := bucketSize * 8
	if m <= 0 {
		return 0
	}
	return uint64((m + bucketBits - 1) / bucketBits)
}

func (c *filterCore) capacity() int {
	return c.ar.used * 8
}

// range0 reports the effective MCG range, or 0 for an empty filter.
func (c *filterCore) range0() uint64 {
	if c.ar.raw == nil {
		return 0
	}
	return c.hs.rangeValue()
}

func (c *filterCore) insert(hash uint64) {
	c.hs.prepareHash(&hash)
	for n := 0; n < c.k; n++ {
		p := c.nextBlock(&hash)
		if n == 0 && c.ar.raw == nil {
			return
		}
		c.sub.Mark(p, hash)
	}
}

func (c *filterCore) mayContain(hash uint64) bool {
	c.hs.prepareHash(&hash)
	for n := 0; n < c.k; n++ {
		p := c.nextBlock(&hash)
		if !c.sub.Check(p, hash) {
			return false
		}
	}
	return true
}

// nextBlock advances hash to the next round's position and returns the
// block window at that position, having issued (a no-op, see prefetch.go)
// prefetch hints for it first.
func (c *filterCore) nextBlock(hash *uint64) []byte {
	pos := c.hs.nextPosition(hash)
	block := c.ar.block(pos, c.bucketSize, c.blockSize)
	prefetch(block, prefetchedCachelines(c.bucketSize, c.blockSize))
	return block
}

func (c *filterCore) clear() {
	c.ar.clearBytes()
}

func (c *filterCore) reset(mBits int) {
	newRange := requestedRange(mBits, c.usedSize, c.bucketSize)
	rng := uint64(0)
	if mBits > 0 {
		rng = newMCGFastrange(newRange).rangeValue()
	}
	if rng != c.range0() {
		c.hs = newMCGFastrange(newRange)
		c.ar = newBitArray(rng, c.bucketSize, c.usedSize, c.tailSize)
		return
	}
	c.clear()
}

func (c *filterCore) cloneInto(dst *filterCore) error {
	if c.range0() != dst.range0() {
		return ErrIncompatibleCapacity
	}
	dst.ar.copyBytesFrom(&c.ar)
	return nil
}

func (c *filterCore) clone() *filterCore {
	d := &filterCore{
		k: c.k, sub: c.sub, bucketSize: c.bucketSize,
		blockSize: c.blockSize, usedSize: c.usedSize, tailSize: c.tailSize,
		hs: c.hs,
	}
	rng := c.range0()
	d.ar = newBitArray(rng, c.bucketSize, c.usedSize, c.tailSize)
	d.ar.copyBytesFrom(&c.ar)
	return d
}

func (c *filterCore) swap(x *filterCore) {
	*c, *x = *x, *c
}

func (c *filterCore) combine(x *filterCore, op func(a, b byte) byte) error {
	if c.range0() != x.range0() {
		return ErrIncompatibleCapacity
	}
	for i := 0; i < c.ar.used; i++ {
		c.ar.buckets[i] = op(c.ar.buckets[i], x.ar.buckets[i])
	}
	return nil
}

func (c *filterCore) equal(x *filterCore) bool {
	if c.range0() != x.range0() {
		return false
	}
	return c.ar.equalBytes(&x.ar)
}

func (c *filterCore) bytes() []byte {
	return c.ar.buckets[:c.ar.used]
}
