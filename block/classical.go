package block

// NewClassical builds the textbook single-bit-per-byte discipline: each
// round sets exactly one bit, `1 << (hash & 7)`, inside a single-byte
// bucket - the degenerate case of Block with K'==1. Kept as a named
// constructor rather than requiring callers to spell out
// NewBlock[uint8](1), since it's the default most reach for.
func NewClassical() Block[uint8] {
	return NewBlock[uint8](1)
}
