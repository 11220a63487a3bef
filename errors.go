package bloom

import "errors"

var (
	// ErrIncompatibleCapacity is returned by And/Or when the two filters
	// were not built with the same effective capacity.
	ErrIncompatibleCapacity = errors.New("bloom: incompatible filter capacities")

	// ErrInvalidData is returned by UnmarshalFilter when the encoded data
	// is malformed or its declared length disagrees with what was supplied.
	ErrInvalidData = errors.New("bloom: invalid serialized data")

	// ErrUnsupportedVersion is returned by UnmarshalFilter when the
	// encoding version byte isn't one this build knows how to read.
	ErrUnsupportedVersion = errors.New("bloom: unsupported serialization version")

	// ErrDisciplineMismatch is returned by UnmarshalFilter when the caller
	// asks to decode into a subfilter discipline other than the one the
	// data was encoded with.
	ErrDisciplineMismatch = errors.New("bloom: subfilter discipline mismatch")

	// ErrInvalidParameter is returned by constructors when K, K', or
	// BucketSize fail basic sanity checks (e.g. K < 1, or a bucket size
	// larger than the subfilter's own used width).
	ErrInvalidParameter = errors.New("bloom: invalid filter parameter")
)
