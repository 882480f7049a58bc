package bloom

import (
	"math"
	"math/bits"
)

// SetBits returns the number of set bits.
func (f *Filter) SetBits() uint64 {
	var n uint64
	for _, w := range f.words {
		n += uint64(bits.OnesCount32(w))
	}
	return n
}

// FillRatio returns the fraction of bits that are set.
func (f *Filter) FillRatio() float64 {
	return float64(f.SetBits()) / float64(f.m)
}

// EstimateCount estimates how many distinct values have been added, from the
// number of set bits X:
//
//	n = -m ln(1 - X/m) / k
//
// A saturated filter (every bit set) returns +Inf.
func (f *Filter) EstimateCount() float64 {
	x := f.SetBits()
	if x == f.m {
		return math.Inf(1)
	}
	m := float64(f.m)
	return -m * math.Log(1-float64(x)/m) / float64(f.k)
}

// FalsePositiveRate returns the probability that Test reports true for a
// value that was never added, given the current fill: (X/m)^k.
func (f *Filter) FalsePositiveRate() float64 {
	return math.Pow(f.FillRatio(), float64(f.k))
}
