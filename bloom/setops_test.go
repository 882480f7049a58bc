package bloom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// halves returns two filters, one holding the first half of the poem's words
// and one the second half.
func halves(t *testing.T) (*Filter, *Filter, []string) {
	t.Helper()
	words := jabberWords()
	mid := len(words) / 2

	f1 := newTestFilter(t, testBits, testHashFunctions)
	f2 := newTestFilter(t, testBits, testHashFunctions)
	for _, w := range words[:mid] {
		f1.Add(w)
	}
	for _, w := range words[mid:] {
		f2.Add(w)
	}
	return f1, f2, words
}

func TestUnion(t *testing.T) {
	f1, f2, words := halves(t)
	before1, before2 := f1.Clone(), f2.Clone()

	u, err := f1.Union(f2)
	require.NoError(t, err)

	for _, w := range words {
		assert.True(t, u.Test(w), w)
	}
	assert.False(t, u.Test("asdf"))
	assert.False(t, u.Test("brilligs"))

	assert.Equal(t, f1.Bits(), u.Bits())
	assert.Equal(t, f1.HashFunctions(), u.HashFunctions())

	assert.True(t, f1.Equal(before1), "union must not modify its receiver")
	assert.True(t, f2.Equal(before2), "union must not modify its argument")

	w1, w2, wu := f1.Words(), f2.Words(), u.Words()
	for i := range wu {
		assert.Equal(t, w1[i]|w2[i], wu[i])
	}
}

func TestIntersection(t *testing.T) {
	f1, f2, words := halves(t)
	before1, before2 := f1.Clone(), f2.Clone()

	in, err := f1.Intersection(f2)
	require.NoError(t, err)

	// gimble appears in both stanzas that bracket the poem
	assert.True(t, in.Test("gimble"))
	assert.False(t, in.Test("frumious"))
	assert.False(t, in.Test("asdf"))

	assert.True(t, f1.Equal(before1))
	assert.True(t, f2.Equal(before2))

	// testing the intersection is testing both inputs' bits at the same
	// positions
	for _, w := range words {
		assert.Equal(t, f1.Test(w) && f2.Test(w), in.Test(w), w)
	}

	w1, w2, wi := f1.Words(), f2.Words(), in.Words()
	for i := range wi {
		assert.Equal(t, w1[i]&w2[i], wi[i])
	}
}

func TestSetOpsRejectIncompatibleFilters(t *testing.T) {
	f1 := newTestFilter(t, 1000, 5)
	f2 := newTestFilter(t, 2000, 5)

	u, err := f1.Union(f2)
	assert.ErrorIs(t, err, ErrIncompatibleFilter)
	assert.Nil(t, u)

	in, err := f1.Intersection(f2)
	assert.ErrorIs(t, err, ErrIncompatibleFilter)
	assert.Nil(t, in)

	_, err = f1.Union(nil)
	assert.ErrorIs(t, err, ErrIncompatibleFilter)
}

func TestSetOpsCompareRoundedBits(t *testing.T) {
	// 1000 and 1010 both round up to 1024
	f1 := newTestFilter(t, 1000, 5)
	f2 := newTestFilter(t, 1010, 5)
	_, err := f1.Union(f2)
	assert.NoError(t, err)
}

func TestSetOpsIgnoreHashFunctionCount(t *testing.T) {
	f1 := newTestFilter(t, 1000, 5)
	f2 := newTestFilter(t, 1000, 3)
	f1.Add("Bess")

	u, err := f1.Union(f2)
	require.NoError(t, err)
	assert.Equal(t, 5, u.HashFunctions())
	assert.True(t, u.Test("Bess"))

	u, err = f2.Union(f1)
	require.NoError(t, err)
	assert.Equal(t, 3, u.HashFunctions())
}

func TestCloneAndEqual(t *testing.T) {
	f := newTestFilter(t, testBits, testHashFunctions)
	f.Add("Bess")

	c := f.Clone()
	assert.True(t, c.Equal(f))

	c.Add("Jane")
	assert.False(t, c.Equal(f))
	assert.False(t, f.Test("Jane"))

	other := newTestFilter(t, testBits, testHashFunctions+1)
	assert.False(t, other.Equal(newTestFilter(t, testBits, testHashFunctions)))
	assert.False(t, f.Equal(nil))
}
