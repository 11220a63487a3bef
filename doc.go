// Package bloom provides a configurable, in-memory approximate-membership
// filter: a family of Bloom-style filters that trade a tunable false-positive
// rate for space savings over exact sets.
//
// # Architecture
//
// The kernel separates five concerns, each swappable independently:
//
// Hash mixing ([Hash], mix.go): promotes a caller-supplied hash to 64 bits
// and re-mixes it with [mix64] unless the caller declares the hash
// avalanching.
//
// Position strategy (position.go): a multiplicative congruential generator
// combined with fastrange ([arxiv.org/abs/1805.10941]) derives a near-uniform
// bucket index from the hash state and advances the state for the next
// round, in one fused step.
//
// Subfilter disciplines (package [bloomkernel/block]): pluggable strategies
// for marking/checking K' bits inside one addressable bucket -
// [block.NewClassical], [block.NewBlock], [block.NewMultiBlock] and
// [block.NewFastMultiBlock32].
//
// Bit-array layout (layout.go): sizing, cacheline alignment, tail padding
// past the last bucket, and a shared read-only all-ones region for filters
// of zero capacity.
//
// Capacity/FPR calibration (calibrate.go): converts between "hold N items at
// FPR <= p" and a bit budget, and estimates the FPR a given budget achieves.
//
// # Choosing a configuration
//
//	f, err := bloom.NewFilterForFPR[string](1_000_000, 0.01, bloom.StringHash)
//	f.Insert("apple")
//	f.MayContain("apple") // true
//
// [Filter] is not safe for concurrent Insert. Use [AtomicFilter] for
// lock-free concurrent Insert/MayContain, or [ShardedAtomicFilter] to reduce
// write contention across many goroutines.
//
// # False positive rate
//
// The achieved false-positive rate depends on capacity, K, the subfilter's
// K', and the number of items inserted relative to the filter's intended
// capacity. Use [FPRFor] to estimate it for a given (n, m) pair.
package bloom
