package bloom

import "bloomkernel/block"

// Filter is an approximate-membership set of elements of type T: Insert
// never fails to stick, and MayContain never returns false for something
// that was inserted, but it can return true for something that never was
// (a false positive, at a rate the filter's capacity and round count were
// sized to bound). The zero value is not usable; build one with NewFilter
// or NewFilterForFPR.
type Filter[T any] struct {
	core *filterCore
	hash Hash[T]
	mix  func(uint64) uint64
}

type filterConfig struct {
	k           int
	sub         Subfilter
	bucketSize  int
	avalanching bool
}

// Option configures a Filter at construction time.
type Option func(*filterConfig)

// WithRounds sets K, the number of subfilter rounds each Insert/MayContain
// performs. Defaults to 7, a reasonable general-purpose value for the
// classical discipline.
func WithRounds(k int) Option {
	return func(c *filterConfig) { c.k = k }
}

// WithSubfilter selects the bit-marking discipline. Defaults to
// block.NewClassical(), one bit per round in a 64-bit bucket.
func WithSubfilter(sub Subfilter) Option {
	return func(c *filterConfig) { c.sub = sub }
}

// WithBucketSize overrides the stride between addressable buckets, in
// bytes. Zero (the default) means buckets don't overlap; a value smaller
// than the subfilter's used size lets adjacent buckets share bytes, which
// raises the effective window a false positive estimate has to account
// for but packs more buckets into the same storage.
func WithBucketSize(n int) Option {
	return func(c *filterConfig) { c.bucketSize = n }
}

// WithAvalanchingHash tells the filter whether Hash already avalanches
// (every output bit depends on every input bit with no detectable bias).
// Defaults to true, matching this package's own BytesHash/StringHash/
// XXHashBytes/XXHashString. Set it to false for a hash you don't trust to
// avalanche on its own; the filter will mix it once per lookup instead.
func WithAvalanchingHash(avalanching bool) Option {
	return func(c *filterConfig) { c.avalanching = avalanching }
}

func defaultConfig() filterConfig {
	return filterConfig{k: 7, sub: block.NewClassical(), bucketSize: 0, avalanching: true}
}

func buildConfig(opts []Option) filterConfig {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewFilter builds a filter sized to hold at least mBits bits of storage.
func NewFilter[T any](mBits int, hash Hash[T], opts ...Option) (*Filter[T], error) {
	c := buildConfig(opts)
	core, err := newFilterCore(mBits, c.k, c.sub, c.bucketSize)
	if err != nil {
		return nil, err
	}
	return &Filter[T]{core: core, hash: hash, mix: resolveMix(c.avalanching)}, nil
}

// NewFilterForFPR builds a filter calibrated to hold n elements at no more
// than fpr false positive probability.
func NewFilterForFPR[T any](n int, fpr float64, hash Hash[T], opts ...Option) (*Filter[T], error) {
	c := buildConfig(opts)
	mBits := CapacityFor(n, fpr, c.k, c.sub, c.bucketSize)
	return NewFilter[T](mBits, hash, opts...)
}

// NewFilterFromSeq builds a filter holding at least mBits of capacity and
// inserts every element of items into it.
func NewFilterFromSeq[T any](items []T, mBits int, hash Hash[T], opts ...Option) (*Filter[T], error) {
	f, err := NewFilter[T](mBits, hash, opts...)
	if err != nil {
		return nil, err
	}
	for _, v := range items {
		f.Insert(v)
	}
	return f, nil
}

// Insert adds v to the filter.
func (f *Filter[T]) Insert(v T) {
	f.core.insert(f.mix(f.hash(v)))
}

// MayContain reports whether v might have been inserted. False negatives
// never happen; false positives happen at roughly the rate the filter was
// calibrated for.
func (f *Filter[T]) MayContain(v T) bool {
	return f.core.mayContain(f.mix(f.hash(v)))
}

// Capacity reports the filter's actual bit capacity, which may be larger
// than what was requested (rounded up to a whole number of buckets).
func (f *Filter[T]) Capacity() int { return f.core.capacity() }

// Clear zeroes every bit without changing capacity.
func (f *Filter[T]) Clear() { f.core.clear() }

// Reset re-sizes the filter to hold at least mBits bits, clearing it in
// the process. If mBits resolves to the same effective capacity, this is
// equivalent to Clear and keeps the existing storage.
func (f *Filter[T]) Reset(mBits int) { f.core.reset(mBits) }

// Swap exchanges f and x's storage and configuration in place.
func (f *Filter[T]) Swap(x *Filter[T]) {
	f.core.swap(x.core)
	f.hash, x.hash = x.hash, f.hash
	f.mix, x.mix = x.mix, f.mix
}

// Clone returns an independent copy of f with its own storage.
func (f *Filter[T]) Clone() *Filter[T] {
	return &Filter[T]{core: f.core.clone(), hash: f.hash, mix: f.mix}
}

// CloneInto copies f's bits into dst, which must have been built with the
// same effective capacity (ErrIncompatibleCapacity otherwise).
func (f *Filter[T]) CloneInto(dst *Filter[T]) error {
	return f.core.cloneInto(dst.core)
}

// And intersects f with x in place. The result may answer false for keys
// f actually holds; only a filter's own, un-intersected bits guarantee no
// false negatives.
func (f *Filter[T]) And(x *Filter[T]) error {
	return f.core.combine(x.core, func(a, b byte) byte { return a & b })
}

// Or unions f with x in place: MayContain on f afterward returns true for
// anything either filter would have.
func (f *Filter[T]) Or(x *Filter[T]) error {
	return f.core.combine(x.core, func(a, b byte) byte { return a | b })
}

// Equal reports whether f and x hold identical bits over the same
// capacity.
func (f *Filter[T]) Equal(x *Filter[T]) bool {
	return f.core.equal(x.core)
}

// Bytes exposes the filter's underlying bit storage, not including
// cacheline alignment padding. The returned slice aliases the filter's
// storage; callers must not retain it past the next mutating call.
func (f *Filter[T]) Bytes() []byte { return f.core.bytes() }
