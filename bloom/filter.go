package bloom

import (
	"fmt"

	"github.com/forestrie/go-bloomfilter/fnvindex"
)

// Filter is a Bloom filter over m bits packed into 32 bit words, consulting k
// positions per value.
//
// A Filter is not safe for concurrent mutation. Add is k independent
// read-modify-write operations on the word array, so concurrent writers must
// be serialized by the caller, and a reader racing a writer may see only some
// of an in-flight Add's bits. Test, Union, Intersection and the other read
// only methods are safe to call concurrently on filters nobody is mutating.
type Filter struct {
	m     uint64
	k     int
	words []uint32
}

// New creates a zeroed filter of at least bits bits using hashFunctions
// positions per value. The bit count is rounded up to a multiple of 32.
func New(bits int, hashFunctions int) (*Filter, error) {
	if bits <= 0 {
		return nil, fmt.Errorf("%w: bits must be positive, got %d", ErrInvalidArgument, bits)
	}
	if hashFunctions <= 0 {
		return nil, fmt.Errorf("%w: hashFunctions must be positive, got %d", ErrInvalidArgument, hashFunctions)
	}
	nwords := WordsFor(uint64(bits))
	if err := checkGeometry(nwords, hashFunctions); err != nil {
		return nil, err
	}
	return &Filter{
		m:     nwords * WordBits,
		k:     hashFunctions,
		words: make([]uint32, nwords),
	}, nil
}

// FromWords creates a filter over a copy of words. It is the inverse of
// Words and is how persisted storage is brought back into a Filter.
func FromWords(words []uint32, hashFunctions int) (*Filter, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: at least one storage word is required", ErrInvalidArgument)
	}
	if hashFunctions <= 0 {
		return nil, fmt.Errorf("%w: hashFunctions must be positive, got %d", ErrInvalidArgument, hashFunctions)
	}
	if err := checkGeometry(uint64(len(words)), hashFunctions); err != nil {
		return nil, err
	}
	f := &Filter{
		m:     uint64(len(words)) * WordBits,
		k:     hashFunctions,
		words: make([]uint32, len(words)),
	}
	copy(f.words, words)
	return f, nil
}

func checkGeometry(nwords uint64, hashFunctions int) error {
	if nwords > MaxWords {
		return fmt.Errorf("%w: %d words exceeds the maximum of %d", ErrInvalidArgument, nwords, MaxWords)
	}
	if uint64(hashFunctions) > uint64(^uint32(0)) {
		return fmt.Errorf("%w: hashFunctions %d exceeds the uint32 range", ErrInvalidArgument, hashFunctions)
	}
	return nil
}

// Bits returns m, the number of addressable bits. Always a multiple of 32.
func (f *Filter) Bits() uint64 { return f.m }

// HashFunctions returns k.
func (f *Filter) HashFunctions() int { return f.k }

// Words returns a copy of the storage words.
func (f *Filter) Words() []uint32 {
	out := make([]uint32, len(f.words))
	copy(out, f.words)
	return out
}

// Add inserts v. Values are reduced to fnvindex.Canonical before hashing, so
// Add(1) and Add("1") set the same bits. Adding a value twice is a no-op.
func (f *Filter) Add(v any) {
	h1, h2 := fnvindex.Pair(fnvindex.Canonical(v))
	setBitsLSB0(f.words, f.m, f.k, h1, h2)
}

// Test reports whether v may have been added.
//
// false means "definitely not added". true means "maybe added": a false
// positive is possible, a false negative is not.
func (f *Filter) Test(v any) bool {
	h1, h2 := fnvindex.Pair(fnvindex.Canonical(v))
	return testBitsLSB0(f.words, f.m, f.k, h1, h2)
}

// Indices returns the k positions Add sets and Test reads for v.
func (f *Filter) Indices(v any) []uint64 {
	return fnvindex.Indices(fnvindex.Canonical(v), f.k, f.m)
}

func setBitsLSB0(words []uint32, mBits uint64, k int, h1, h2 uint32) {
	st := fnvindex.NewStepper(h1, h2, mBits)
	for i := 0; i < k; i++ {
		j := st.Next()
		words[j>>5] |= 1 << (j & 31)
	}
}

func testBitsLSB0(words []uint32, mBits uint64, k int, h1, h2 uint32) bool {
	st := fnvindex.NewStepper(h1, h2, mBits)
	for i := 0; i < k; i++ {
		j := st.Next()
		if words[j>>5]&(1<<(j&31)) == 0 {
			return false
		}
	}
	return true
}
