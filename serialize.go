package bloom

import (
	"encoding/binary"
	"fmt"
)

// encoding version 1 layout:
//
//	byte 0:    version (1)
//	byte 1:    discipline tag (see disciplineTag)
//	bytes 2-3: K, little-endian uint16
//	bytes 4-11: capacity in bits, little-endian uint64
//	bytes 12-: raw bucket bytes, len == Bytes() at encode time
const (
	encodingVersion = 1
	headerSize      = 12
)

// disciplineTag records the bit-marking discipline a filter was built
// with, so UnmarshalFilter can refuse to decode into a mismatched one
// rather than silently reinterpreting bits under a different layout.
type disciplineTag byte

const (
	TagClassical disciplineTag = iota
	TagBlock
	TagMultiBlock
	TagFastMultiBlock32
)

// MarshalBinary encodes f's configuration and bits. tag must match the
// discipline f was built with; callers construct it via the discipline's
// own package (e.g. bloom.TagBlock for any block.Block[W]).
func (f *Filter[T]) MarshalBinary(tag disciplineTag) ([]byte, error) {
	bits := f.Bytes()
	out := make([]byte, headerSize+len(bits))
	out[0] = encodingVersion
	out[1] = byte(tag)
	binary.LittleEndian.PutUint16(out[2:4], uint16(f.core.k))
	binary.LittleEndian.PutUint64(out[4:12], uint64(f.Capacity()))
	copy(out[headerSize:], bits)
	return out, nil
}

// UnmarshalFilter decodes data into a new filter using sub as the
// subfilter discipline, which must agree with the encoded tag.
func UnmarshalFilter[T any](data []byte, tag disciplineTag, sub Subfilter, hash Hash[T], opts ...Option) (*Filter[T], error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: short header", ErrInvalidData)
	}
	if data[0] != encodingVersion {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedVersion, data[0])
	}
	if disciplineTag(data[1]) != tag {
		return nil, ErrDisciplineMismatch
	}
	k := int(binary.LittleEndian.Uint16(data[2:4]))
	mBits := int(binary.LittleEndian.Uint64(data[4:12]))

	opts = append([]Option{WithSubfilter(sub), WithRounds(k)}, opts...)
	f, err := NewFilter[T](mBits, hash, opts...)
	if err != nil {
		return nil, err
	}
	body := data[headerSize:]
	if len(body) != len(f.Bytes()) {
		return nil, fmt.Errorf("%w: body length %d, want %d", ErrInvalidData, len(body), len(f.Bytes()))
	}
	copy(f.Bytes(), body)
	return f, nil
}
