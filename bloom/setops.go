package bloom

import "fmt"

// Union returns a new filter holding every value either f or other holds.
// The storage is the word-wise OR of the two inputs, neither of which is
// modified.
//
// Only the bit counts must match. The hash function count is not compared
// and the result takes f's k, so combining filters with different k yields a
// filter whose false positive rate no longer follows the usual formula.
func (f *Filter) Union(other *Filter) (*Filter, error) {
	return f.combine(other, func(a, b uint32) uint32 { return a | b })
}

// Intersection returns a new filter whose storage is the word-wise AND of f
// and other. A value added to both tests true. A value added to only one may
// still test true if the other happens to have all of its bits set. The same
// geometry rules as Union apply.
func (f *Filter) Intersection(other *Filter) (*Filter, error) {
	return f.combine(other, func(a, b uint32) uint32 { return a & b })
}

func (f *Filter) combine(other *Filter, op func(a, b uint32) uint32) (*Filter, error) {
	if err := f.checkCompatible(other); err != nil {
		return nil, err
	}
	out := &Filter{
		m:     f.m,
		k:     f.k,
		words: make([]uint32, len(f.words)),
	}
	for i := range f.words {
		out.words[i] = op(f.words[i], other.words[i])
	}
	return out, nil
}

func (f *Filter) checkCompatible(other *Filter) error {
	if other == nil {
		return fmt.Errorf("%w: other filter is nil", ErrIncompatibleFilter)
	}
	if other.m != f.m {
		return fmt.Errorf("%w: %d bits vs %d bits", ErrIncompatibleFilter, f.m, other.m)
	}
	return nil
}

// Clone returns an independent copy of f.
func (f *Filter) Clone() *Filter {
	return &Filter{
		m:     f.m,
		k:     f.k,
		words: f.Words(),
	}
}

// Equal reports whether f and other have the same geometry and bits.
func (f *Filter) Equal(other *Filter) bool {
	if other == nil || f.m != other.m || f.k != other.k {
		return false
	}
	for i := range f.words {
		if f.words[i] != other.words[i] {
			return false
		}
	}
	return true
}
