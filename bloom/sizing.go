package bloom

import (
	"fmt"
	"math"
)

// WordsFor returns ceil(bits/32).
func WordsFor(bits uint64) uint64 {
	return bits/WordBits + min(bits%WordBits, 1)
}

// FalsePositiveRate returns the expected false positive probability of a
// filter with mBits bits and k hash functions after n insertions:
//
//	(1 - e^(-k*n/m))^k
//
// It is the large m approximation and is not enforced at runtime. It is here
// for capacity planning.
func FalsePositiveRate(mBits uint64, k int, n uint64) float64 {
	if mBits == 0 || k <= 0 {
		return 1
	}
	kf := float64(k)
	return math.Pow(1-math.Exp(-kf*float64(n)/float64(mBits)), kf)
}

// OptimalBits returns the number of bits needed to hold n values at false
// positive rate p:
//
//	m = -n ln(p) / ln(2)^2
func OptimalBits(n uint64, p float64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: expected element count must be positive", ErrInvalidArgument)
	}
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("%w: false positive rate must be in (0, 1), got %v", ErrInvalidArgument, p)
	}
	return uint64(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2))), nil
}

// OptimalHashFunctions returns the k that minimizes the false positive rate
// for mBits bits holding n values:
//
//	k = (m/n) ln(2)
//
// The result is at least 1.
func OptimalHashFunctions(mBits uint64, n uint64) int {
	if n == 0 {
		return 1
	}
	k := int(math.Round(float64(mBits) / float64(n) * math.Ln2))
	return max(k, 1)
}

// NewWithEstimates creates a filter sized to hold n values at false positive
// rate p.
func NewWithEstimates(n uint64, p float64) (*Filter, error) {
	mBits, err := OptimalBits(n, p)
	if err != nil {
		return nil, err
	}
	if mBits > MaxWords*WordBits || mBits > math.MaxInt {
		return nil, fmt.Errorf("%w: %d bits exceeds the supported range", ErrInvalidArgument, mBits)
	}
	return New(int(mBits), OptimalHashFunctions(WordsFor(mBits)*WordBits, n))
}
