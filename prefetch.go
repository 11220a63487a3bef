package bloom

// prefetchedCachelines is the number of cachelines a round's block access
// spans: one cacheline for the first bucketSize-aligned access, plus
// however many more the block's width spills into.
func prefetchedCachelines(bucketSize, blockSize int) int {
	stride := gcdPow2(bucketSize, cacheLine)
	return 1 + (blockSize+cacheLine-1-stride)/cacheLine
}

// gcdPow2 returns gcd(x, p) for p a power of two and x > 0.
func gcdPow2(x, p int) int {
	lowBit := x & -x
	if lowBit < p {
		return lowBit
	}
	return p
}

// prefetch is a documented no-op: the standard library has no portable
// cacheline-prefetch intrinsic, and none of this module's neighboring
// libraries reach for cgo or inline assembly to get one, so there is
// nothing to hint the CPU with on the portable build. The call site is
// kept before the nil check on the insert path so that a future
// assembly-backed build tag can slot in without restructuring the round
// loop.
func prefetch(_ []byte, _ int) {}
