package bloom

import "math"

// resolvedSizes mirrors filterCore's own size resolution so calibration can
// run without building a core.
func resolvedSizes(sub Subfilter, bucketSize int) (usedBlockSize, resolvedBucket int) {
	usedBlockSize = sub.UsedSize()
	if usedBlockSize == 0 {
		usedBlockSize = sub.BlockSize()
	}
	resolvedBucket = bucketSize
	if resolvedBucket == 0 {
		resolvedBucket = usedBlockSize
	}
	return usedBlockSize, resolvedBucket
}

// CapacityFor computes the smallest bit capacity whose estimated false
// positive rate, for k rounds of sub inserting n items, is <= fpr. fpr must
// be in [0, 1]; values outside that range are a precondition violation and
// panic, since that's a programming error rather than a runtime condition
// a caller should be expected to handle.
func CapacityFor(n int, fpr float64, k int, sub Subfilter, bucketSize int) int {
	if fpr < 0 || fpr > 1 {
		panic("bloom: fpr out of range [0, 1]")
	}
	if n <= 0 {
		return 0
	}
	usedBlockSize, resolvedBucket := resolvedSizes(sub, bucketSize)
	m := unadjustedCapacityFor(n, fpr, k, sub, usedBlockSize, resolvedBucket)
	if m == 0 {
		return 0
	}
	rng := newMCGFastrange(requestedRange(m, usedBlockSize, resolvedBucket)).rangeValue()
	return usedArraySize(rng, resolvedBucket, usedBlockSize) * 8
}

// FPRFor estimates the false positive rate for k rounds of sub holding n
// items in a filter of m bits.
func FPRFor(n, m int, k int, sub Subfilter, bucketSize int) float64 {
	if n == 0 {
		return 0
	}
	if m == 0 {
		return 1
	}
	usedBlockSize, resolvedBucket := resolvedSizes(sub, bucketSize)
	c := float64(m) / float64(n)
	return fprForC(c, k, sub, usedBlockSize, resolvedBucket)
}

func unadjustedCapacityFor(n int, fpr float64, k int, sub Subfilter, usedBlockSize, bucketSize int) int {
	kTotal := float64(k * sub.K())
	cMax := float64(math.MaxInt) / float64(n)

	// Classical Bloom capacity as a starting lower bound: c = kTotal / -ln(1 - fpr^(1/kTotal)).
	d := 1.0 - math.Pow(fpr, 1.0/kTotal)
	if d == 0 { // fpr ~ 1
		return 0
	}
	l := math.Log(d)
	if l == 0 { // fpr ~ 0
		return int(cMax * float64(n))
	}
	c0 := math.Min(kTotal/-l, cMax)

	// Bracket the target fpr between c0 and c1.
	c1 := c0
	if fprForC(c1, k, sub, usedBlockSize, bucketSize) > fpr {
		for {
			cn := c1 * 1.5
			if cn > cMax {
				return int(cMax * float64(n))
			}
			c0 = c1
			c1 = cn
			if fprForC(c1, k, sub, usedBlockSize, bucketSize) <= fpr {
				break
			}
		}
	} else {
		for {
			cn := c0 / 1.5
			c1 = c0
			c0 = cn
			if fprForC(c0, k, sub, usedBlockSize, bucketSize) >= fpr {
				break
			}
		}
	}

	// Bisect.
	const eps = 1.0 / float64(math.MaxInt)
	var cm float64
	for {
		cm = c0 + (c1-c0)/2
		if !(cm > c0 && cm < c1 && c1-c0 >= eps) {
			break
		}
		if fprForC(cm, k, sub, usedBlockSize, bucketSize) > fpr {
			c0 = cm
		} else {
			c1 = cm
		}
	}
	return int(cm * float64(n))
}

// fprForC estimates the achieved FPR for capacity ratio c = m/n, modeling
// one round as a Poisson-distributed number of colliding insertions into a
// w-bit window (the block plus its overhang into the next bucket, since
// adjacent buckets can overlap), weighted by the subfilter's own per-round
// FPR formula, then raised to the k-round power. The classical Bloom
// closed form is always a valid lower bound and protects against
// truncation error in the Poisson sum for small c.
func fprForC(c float64, k int, sub Subfilter, usedBlockSize, bucketSize int) float64 {
	kPrime := sub.K()
	kTotal := float64(k * kPrime)
	w := float64((2*usedBlockSize - bucketSize) * 8)
	lambda := w * float64(k) / c
	logLambda := math.Log(lambda)

	res := 0.0
	deltaPrev := 0.0
	logFact := 0.0
	for i := 0; i < 1000; i++ {
		if i > 0 {
			logFact += math.Log(float64(i))
		}
		poisson := math.Exp(float64(i)*logLambda - lambda - logFact)
		delta := poisson * sub.FPR(i, w)
		resN := res + delta
		if delta < deltaPrev && resN == res {
			break
		}
		deltaPrev = delta
		res = resN
	}

	classicalLowerBound := math.Pow(1.0-math.Exp(-kTotal/c), kTotal)
	return math.Max(math.Pow(res, float64(k)), classicalLowerBound)
}
