// Command analysis prints the bit capacity and false positive rate this
// kernel's disciplines would need or achieve for a given load, so a
// caller picking WithSubfilter/WithRounds has real numbers instead of
// reading the formulas in calibrate.go directly.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"bloomkernel"
	"bloomkernel/block"
)

func main() {
	n := flag.Int("n", 1_000_000, "expected number of inserted items")
	fpr := flag.Float64("fpr", 0.01, "target false positive rate")
	flag.Parse()

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "discipline\tK\tbits\tbytes\tachieved fpr\n")

	disciplines := []struct {
		name string
		k    int
		sub  bloom.Subfilter
	}{
		{"classical", 7, block.NewClassical()},
		{"block[uint64]/4", 4, block.NewBlock[uint64](4)},
		{"multiblock[uint32]/4", 4, block.NewMultiBlock[uint32](4)},
		{"fastmultiblock32/6", 4, block.NewFastMultiBlock32(6)},
	}

	for _, d := range disciplines {
		m := bloom.CapacityFor(*n, *fpr, d.k, d.sub, 0)
		achieved := bloom.FPRFor(*n, m, d.k, d.sub, 0)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.5f\n",
			d.name, d.k, humanize.Comma(int64(m)), humanize.Bytes(uint64(m/8)), achieved)
	}
	w.Flush()

	fmt.Printf("\nAVX2 available: %v (informational only; FastMultiBlock32 runs scalar either way)\n", block.HasAVX2())
}
