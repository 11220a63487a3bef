package bloom

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bloomkernel/block"
)

func TestFilterBasic(t *testing.T) {
	f, err := NewFilterForFPR[string](1000, 0.01, StringHash)
	if err != nil {
		t.Fatalf("NewFilterForFPR: %v", err)
	}

	f.Insert("hello")
	f.Insert("world")

	if !f.MayContain("hello") {
		t.Error("expected hello to be present")
	}
	if !f.MayContain("world") {
		t.Error("expected world to be present")
	}
	if f.MayContain("notpresent") {
		t.Log("warning: false positive for 'notpresent'")
	}
}

func TestFilterFalsePositiveRate(t *testing.T) {
	n := 10000
	target := 0.01

	f, err := NewFilterForFPR[string](n, target, StringHash)
	if err != nil {
		t.Fatalf("NewFilterForFPR: %v", err)
	}

	for i := 0; i < n; i++ {
		f.Insert(fmt.Sprintf("item-%d", i))
	}

	falsePositives := 0
	trials := 10000
	for i := 0; i < trials; i++ {
		if f.MayContain(fmt.Sprintf("notitem-%d", i)) {
			falsePositives++
		}
	}

	got := float64(falsePositives) / float64(trials)
	if got > target*3 {
		t.Errorf("false positive rate too high: got %.4f, want <= %.4f", got, target*3)
	}
	t.Logf("FP rate: %.4f (target %.4f, capacity %d bits)", got, target, f.Capacity())
}

func TestFilterClear(t *testing.T) {
	f, err := NewFilter[string](1024, StringHash)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}

	f.Insert("test")
	if !f.MayContain("test") {
		t.Error("expected test to be present before clear")
	}

	f.Clear()
	if f.MayContain("test") {
		t.Error("expected test to not be present after clear")
	}
}

func TestFilterCapacityStable(t *testing.T) {
	f, err := NewFilter[string](1024, StringHash)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	c := f.Capacity()

	g, err := NewFilter[string](c, StringHash)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	if g.Capacity() != c {
		t.Errorf("capacity not stable: got %d, want %d", g.Capacity(), c)
	}
}

func TestFilterEmptyNeverFalseNegative(t *testing.T) {
	f, err := NewFilter[string](0, StringHash)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	if f.Capacity() != 0 {
		t.Errorf("expected 0 capacity, got %d", f.Capacity())
	}
	if !f.MayContain("anything") {
		t.Error("expected empty filter to answer MayContain true")
	}
}

func TestFilterCloneIndependent(t *testing.T) {
	f, err := NewFilter[string](1024, StringHash)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	f.Insert("a")

	g := f.Clone()
	g.Insert("b")

	if f.MayContain("b") {
		t.Error("expected clone mutation not to leak back into original")
	}
	if !g.MayContain("a") || !g.MayContain("b") {
		t.Error("expected clone to carry over original bits and keep its own inserts")
	}
}

func TestFilterOrUnion(t *testing.T) {
	f, err := NewFilter[string](1024, StringHash)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	g, err := NewFilter[string](1024, StringHash)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	f.Insert("a")
	g.Insert("b")

	if err := f.Or(g); err != nil {
		t.Fatalf("Or: %v", err)
	}
	if !f.MayContain("a") || !f.MayContain("b") {
		t.Error("expected union to contain both keys")
	}
}

func TestFilterOrIncompatibleCapacity(t *testing.T) {
	f, err := NewFilter[string](1024, StringHash)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	g, err := NewFilter[string](4096, StringHash)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	if err := f.Or(g); err != ErrIncompatibleCapacity {
		t.Errorf("expected ErrIncompatibleCapacity, got %v", err)
	}
}

func TestFilterWithMultiBlock(t *testing.T) {
	sub := block.NewMultiBlock[uint32](4)
	f, err := NewFilterForFPR[string](5000, 0.01, StringHash, WithSubfilter(sub), WithRounds(3))
	if err != nil {
		t.Fatalf("NewFilterForFPR: %v", err)
	}
	for i := 0; i < 5000; i++ {
		f.Insert(fmt.Sprintf("k-%d", i))
	}
	for i := 0; i < 5000; i++ {
		if !f.MayContain(fmt.Sprintf("k-%d", i)) {
			t.Fatalf("missing inserted key k-%d", i)
		}
	}
}

func TestFilterCloneBytesIdentical(t *testing.T) {
	f, err := NewFilterForFPR[string](2000, 0.01, StringHash)
	if err != nil {
		t.Fatalf("NewFilterForFPR: %v", err)
	}
	for i := 0; i < 2000; i++ {
		f.Insert(fmt.Sprintf("k-%d", i))
	}

	g := f.Clone()
	if diff := cmp.Diff(f.Bytes(), g.Bytes()); diff != "" {
		t.Errorf("clone bytes differ from original (-want +got):\n%s", diff)
	}
}

func TestFilterWithFastMultiBlock32(t *testing.T) {
	sub := block.NewFastMultiBlock32(4)
	f, err := NewFilterForFPR[string](5000, 0.01, StringHash, WithSubfilter(sub), WithRounds(3))
	if err != nil {
		t.Fatalf("NewFilterForFPR: %v", err)
	}
	for i := 0; i < 5000; i++ {
		f.Insert(fmt.Sprintf("k-%d", i))
	}
	for i := 0; i < 5000; i++ {
		if !f.MayContain(fmt.Sprintf("k-%d", i)) {
			t.Fatalf("missing inserted key k-%d", i)
		}
	}
}
