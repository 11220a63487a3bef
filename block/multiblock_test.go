package block

import "testing"

func TestMultiBlockMarkAndCheck(t *testing.T) {
	m := NewMultiBlock[uint32](4)
	buf := make([]byte, m.BlockSize())

	m.Mark(buf, 0x1122334455667788)
	if !m.Check(buf, 0x1122334455667788) {
		t.Error("expected marked hash to check true")
	}
}

func TestMultiBlockSizeIsKPrimeWords(t *testing.T) {
	m := NewMultiBlock[uint32](5)
	if got, want := m.BlockSize(), 5*4; got != want {
		t.Errorf("BlockSize() = %d, want %d", got, want)
	}
}

func TestMultiBlockUnrelatedBitsUnset(t *testing.T) {
	m := NewMultiBlock[uint32](3)
	buf := make([]byte, m.BlockSize())
	m.Mark(buf, 42)

	other := NewMultiBlock[uint32](3)
	if other.Check(buf, 0xffffffffffffffff) {
		t.Log("warning: unrelated hash happened to check true (possible but unlikely)")
	}
}
