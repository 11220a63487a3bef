package bloom

import (
	"math/bits"
	"runtime"
	"sync/atomic"
)

// AtomicFilter is a concurrency-safe Bloom filter restricted to the
// classical one-bit-per-round discipline: its storage is a slice of
// atomic.Uint64 words rather than the byte-windowed bit array filterCore
// uses, since sync/atomic has no sub-word atomic OR to build a
// Subfilter-compatible byte-level Mark out of. Multiple goroutines may
// call Insert and MayContain concurrently without further
// synchronization; Clear, Clone and friends are deliberately not
// provided here, since none of them could be made safe to call alongside
// a concurrent Insert without additional locking that would defeat the
// point of this type.
type AtomicFilter[T any] struct {
	hs    mcgFastrange
	words []atomic.Uint64
	k     int
	hash  Hash[T]
	mix   func(uint64) uint64
}

// NewAtomicFilter builds an atomic filter sized to hold at least mBits
// bits, using k rounds of one bit each.
func NewAtomicFilter[T any](mBits, k int, hash Hash[T], avalanching bool) (*AtomicFilter[T], error) {
	if k < 1 {
		return nil, ErrInvalidParameter
	}
	rng := requestedRange(mBits, 8, 8)
	hs := newMCGFastrange(rng)
	n := uint64(0)
	if mBits > 0 {
		n = hs.rangeValue()
	}
	return &AtomicFilter[T]{
		hs:    hs,
		words: make([]atomic.Uint64, n),
		k:     k,
		hash:  hash,
		mix:   resolveMix(avalanching),
	}, nil
}

// Capacity reports the filter's bit capacity.
func (f *AtomicFilter[T]) Capacity() int { return len(f.words) * 64 }

// Insert adds v to the filter. Safe for concurrent use.
func (f *AtomicFilter[T]) Insert(v T) {
	f.insertHash(f.mix(f.hash(v)))
}

// MayContain reports whether v might have been inserted. Safe for
// concurrent use, including alongside concurrent Insert.
func (f *AtomicFilter[T]) MayContain(v T) bool {
	return f.mayContainHash(f.mix(f.hash(v)))
}

func (f *AtomicFilter[T]) insertHash(hash uint64) {
	if len(f.words) == 0 {
		return
	}
	f.hs.prepareHash(&hash)
	for n := 0; n < f.k; n++ {
		pos := f.hs.nextPosition(&hash)
		bit := hash & 63
		mask := uint64(1) << bit
		word := &f.words[pos]
		for {
			old := word.Load()
			if old&mask != 0 {
				break
			}
			if word.CompareAndSwap(old, old|mask) {
				break
			}
		}
	}
}

func (f *AtomicFilter[T]) mayContainHash(hash uint64) bool {
	if len(f.words) == 0 {
		return true
	}
	f.hs.prepareHash(&hash)
	for n := 0; n < f.k; n++ {
		pos := f.hs.nextPosition(&hash)
		bit := hash & 63
		if f.words[pos].Load()&(uint64(1)<<bit) == 0 {
			return false
		}
	}
	return true
}

// ShardedAtomicFilter spreads its storage across independent AtomicFilter
// shards, each with its own cacheline range, so concurrent writers to
// different keys rarely contend on the same word. Shard selection uses a
// key's own hash, so a key's lookups always land on the same shard its
// inserts did. The shard count is always a power of two so shardFor can
// select with a mask instead of a division.
type ShardedAtomicFilter[T any] struct {
	shards []*AtomicFilter[T]
	hash   Hash[T]
	mix    func(uint64) uint64
	mask   uint64
	shift  uint
}

// NewShardedAtomicFilter builds AtomicFilter shards, each sized to
// mBitsPerShard. numShards is rounded up to the next power of two.
func NewShardedAtomicFilter[T any](numShards, mBitsPerShard, k int, hash Hash[T], avalanching bool) (*ShardedAtomicFilter[T], error) {
	if numShards < 1 {
		return nil, ErrInvalidParameter
	}
	n := nextPowerOf2(uint64(numShards))
	shards := make([]*AtomicFilter[T], n)
	for i := range shards {
		s, err := NewAtomicFilter[T](mBitsPerShard, k, hash, avalanching)
		if err != nil {
			return nil, err
		}
		shards[i] = s
	}
	mask := n - 1
	return &ShardedAtomicFilter[T]{
		shards: shards,
		hash:   hash,
		mix:    resolveMix(avalanching),
		mask:   mask,
		shift:  uint(bits.Len64(mask)),
	}, nil
}

// NewShardedAtomicDefault builds a sharded filter with a shard count tuned
// to the current GOMAXPROCS value, rounded up to a power of two, rather
// than requiring the caller to pick one.
func NewShardedAtomicDefault[T any](mBitsPerShard, k int, hash Hash[T], avalanching bool) (*ShardedAtomicFilter[T], error) {
	numShards := max(runtime.GOMAXPROCS(0), 4)
	return NewShardedAtomicFilter[T](numShards, mBitsPerShard, k, hash, avalanching)
}

// nextPowerOf2 returns the smallest power of 2 >= n (n==0 returns 1).
func nextPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

func (f *ShardedAtomicFilter[T]) shardFor(hash uint64) (*AtomicFilter[T], uint64) {
	idx := hash & f.mask
	return f.shards[idx], hash >> f.shift
}

// Capacity reports the combined bit capacity across all shards.
func (f *ShardedAtomicFilter[T]) Capacity() int {
	total := 0
	for _, s := range f.shards {
		total += s.Capacity()
	}
	return total
}

// Insert adds v to the filter. Safe for concurrent use.
func (f *ShardedAtomicFilter[T]) Insert(v T) {
	hash := f.mix(f.hash(v))
	shard, rest := f.shardFor(hash)
	shard.insertHash(rest)
}

// MayContain reports whether v might have been inserted. Safe for
// concurrent use, including alongside concurrent Insert.
func (f *ShardedAtomicFilter[T]) MayContain(v T) bool {
	hash := f.mix(f.hash(v))
	shard, rest := f.shardFor(hash)
	return shard.mayContainHash(rest)
}
