package bloom

import (
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// Hash computes a 64-bit digest for a value of type T. Implementations
// are free to be non-avalanching (e.g. an identity hash over an already
// well-distributed key) - pair them with WithAvalanchingHash(false) so
// the filter core adds its own mixing step rather than trusting bits
// that might cluster.
type Hash[T any] func(T) uint64

// BytesHash adapts xxh3 (already avalanching across its full 64-bit
// output) for []byte-keyed filters.
func BytesHash(b []byte) uint64 { return xxh3.Hash(b) }

// StringHash is BytesHash's string counterpart, avoiding the copy a
// []byte(s) conversion would force.
func StringHash(s string) uint64 { return xxh3.HashString(s) }

// XXHashBytes adapts cespare/xxhash (xxHash64) as an alternative digest
// for []byte keys; also avalanching.
func XXHashBytes(b []byte) uint64 { return xxhash.Sum64(b) }

// XXHashString is XXHashBytes's string counterpart.
func XXHashString(s string) uint64 { return xxhash.Sum64String(s) }

// resolveMix folds the avalanching flag into a single closure once, at
// construction, rather than branching on it inside every Insert/MayContain
// call: avalanching hashes skip straight to the position strategy, and
// everything else first passes through mix64.
func resolveMix(avalanching bool) func(uint64) uint64 {
	if avalanching {
		return func(h uint64) uint64 { return h }
	}
	return mix64
}
