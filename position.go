package bloom

// mcgFastrange derives a sequence of near-uniform bucket positions from a
// single 64-bit hash. position = high64(hash * rng) is uniform in
// [0, rng) (fastrange, see https://arxiv.org/abs/1805.10941); hash is
// simultaneously replaced by low64(hash * rng), an MCG step that carries
// fresh entropy into the next round.
//
// rng is adjusted from the requested range so that rng = +-3 (mod 8); an MCG
// of this form started from an odd seed has the full period mod 2^64, which
// is why prepareHash forces the low bit of the hash to one before the first
// round.
type mcgFastrange struct {
	rng uint64
}

func newMCGFastrange(requested uint64) mcgFastrange {
	return mcgFastrange{rng: adjustRange(requested)}
}

// adjustRange returns the smallest value >= m congruent to +-3 (mod 8).
func adjustRange(m uint64) uint64 {
	switch r := m % 8; {
	case r <= 3:
		return m + (3 - r)
	case r <= 5:
		return m + (5 - r)
	default:
		return m + (8-r)%8 + 3
	}
}

// range reports the effective range callers actually get, which may exceed
// the value requested at construction.
func (s mcgFastrange) rangeValue() uint64 {
	return s.rng
}

// prepareHash forces the low bit of hash to one, a precondition for the
// MCG's cycle-length guarantee. Must be called once, before the first round.
func (s mcgFastrange) prepareHash(hash *uint64) {
	*hash |= 1
}

// nextPosition returns the next bucket index in [0, rng) and advances hash
// in place for the following round.
func (s mcgFastrange) nextPosition(hash *uint64) uint64 {
	lo, hi := mulx64(*hash, s.rng)
	*hash = lo
	return hi
}
