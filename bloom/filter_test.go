package bloom

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBits          = 1000
	testHashFunctions = 5
)

const jabberwocky = "`Twas brillig, and the slithy toves\n  Did gyre and gimble in the wabe:\nAll mimsy were the borogoves,\n  And the mome raths outgrabe.\n\n\"Beware the Jabberwock, my son!\n  The jaws that bite, the claws that catch!\nBeware the Jubjub bird, and shun\n  The frumious Bandersnatch!\"\n\nHe took his vorpal sword in hand:\n  Long time the manxome foe he sought --\nSo rested he by the Tumtum tree,\n  And stood awhile in thought.\n\nAnd, as in uffish thought he stood,\n  The Jabberwock, with eyes of flame,\nCame whiffling through the tulgey wood,\n  And burbled as it came!\n\nOne, two! One, two! And through and through\n  The vorpal blade went snicker-snack!\nHe left it dead, and with its head\n  He went galumphing back.\n\n\"And, has thou slain the Jabberwock?\n  Come to my arms, my beamish boy!\nO frabjous day! Callooh! Callay!'\n  He chortled in his joy.\n\n`Twas brillig, and the slithy toves\n  Did gyre and gimble in the wabe;\nAll mimsy were the borogoves,\n  And the mome raths outgrabe."

// jabberWords splits the poem on whitespace and strips punctuation.
func jabberWords() []string {
	var words []string
	for _, w := range strings.Fields(jabberwocky) {
		w = strings.Map(func(r rune) rune {
			if strings.ContainsRune(".`\"',;!-", r) {
				return -1
			}
			return r
		}, w)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func newTestFilter(t *testing.T, bits, k int) *Filter {
	t.Helper()
	f, err := New(bits, k)
	require.NoError(t, err)
	return f
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		bits     int
		k        int
		wantBits uint64
		wantErr  error
	}{
		{"rounds up to a word", 1000, 5, 1024, nil},
		{"exact multiple", 64, 3, 64, nil},
		{"single bit", 1, 1, 32, nil},
		{"twenty bits", 20, 10, 32, nil},
		{"zero bits", 0, 5, 0, ErrInvalidArgument},
		{"negative bits", -1, 5, 0, ErrInvalidArgument},
		{"zero hash functions", 1000, 0, 0, ErrInvalidArgument},
		{"negative hash functions", 1000, -3, 0, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.bits, tt.k)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBits, f.Bits())
			assert.Zero(t, f.Bits()%WordBits)
			assert.Equal(t, tt.k, f.HashFunctions())
			assert.Len(t, f.Words(), int(tt.wantBits/WordBits))
		})
	}
}

func TestNewStartsEmpty(t *testing.T) {
	f := newTestFilter(t, testBits, testHashFunctions)
	for _, w := range f.Words() {
		assert.Zero(t, w)
	}
	assert.Zero(t, f.SetBits())
}

func TestIndicesOneHash(t *testing.T) {
	f := newTestFilter(t, testBits, 1)
	indices := f.Indices(jabberwocky)
	require.Len(t, indices, 1)
	assert.Equal(t, []uint64{611}, indices)
}

func TestIndicesUniqueForJabberwocky(t *testing.T) {
	for _, k := range []int{2, testHashFunctions} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			f := newTestFilter(t, testBits, k)
			indices := f.Indices(jabberwocky)
			require.Len(t, indices, k)

			seen := map[uint64]bool{}
			for _, j := range indices {
				assert.Less(t, j, f.Bits())
				seen[j] = true
			}
			assert.Len(t, seen, k)
		})
	}
	f := newTestFilter(t, testBits, testHashFunctions)
	assert.Equal(t, []uint64{611, 61, 535, 1009, 459}, f.Indices(jabberwocky))
}

func TestIndicesCountRangeAndDeterminism(t *testing.T) {
	for _, geom := range []struct{ bits, k int }{{1, 1}, {20, 10}, {1000, 5}, {4096, 13}} {
		f := newTestFilter(t, geom.bits, geom.k)
		for _, v := range []any{"Bess", "Jane", 1, 2, jabberwocky, "😀"} {
			got := f.Indices(v)
			require.Len(t, got, geom.k)
			for _, j := range got {
				assert.Less(t, j, f.Bits())
			}
			assert.Equal(t, got, f.Indices(v))
		}
	}
}

func TestAddTest(t *testing.T) {
	tests := []struct {
		name    string
		bits    int
		k       int
		add     any
		present []any
		absent  []any
	}{
		{"basic", testBits, testHashFunctions, "Bess", []any{"Bess"}, []any{"Jane"}},
		{"jabberwocky", testBits, testHashFunctions, jabberwocky, []any{jabberwocky}, []any{jabberwocky + "\n"}},
		{"wtf", 20, 10, "abc", []any{"abc"}, []any{"wtf"}},
		{"uint32 code units", testBits, testHashFunctions, "Ā", []any{"Ā"}, []any{"ā", "ă"}},
		{"integers", testBits, testHashFunctions, 1, []any{1, "1", int64(1), 1.0}, []any{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFilter(t, tt.bits, tt.k)
			f.Add(tt.add)
			for _, v := range tt.present {
				assert.True(t, f.Test(v), "expected %v present", v)
			}
			for _, v := range tt.absent {
				assert.False(t, f.Test(v), "expected %v absent", v)
			}
		})
	}
}

func TestEmptyFilterIsDefinitelyNotPresent(t *testing.T) {
	f := newTestFilter(t, testBits, testHashFunctions)
	for _, w := range jabberWords() {
		assert.False(t, f.Test(w))
	}
}

func TestNoFalseNegatives(t *testing.T) {
	for _, geom := range []struct{ bits, k int }{{1, 1}, {20, 10}, {100, 3}, {1000, 5}, {10000, 7}} {
		t.Run(fmt.Sprintf("m=%d k=%d", geom.bits, geom.k), func(t *testing.T) {
			f := newTestFilter(t, geom.bits, geom.k)
			words := jabberWords()
			for _, w := range words {
				f.Add(w)
			}
			for i := 0; i < 200; i++ {
				f.Add(i)
			}
			for _, w := range words {
				assert.True(t, f.Test(w), w)
			}
			for i := 0; i < 200; i++ {
				assert.True(t, f.Test(i), i)
			}
		})
	}
}

func TestAddIsIdempotent(t *testing.T) {
	f := newTestFilter(t, testBits, testHashFunctions)
	f.Add("Bess")
	once := f.Words()
	f.Add("Bess")
	assert.Equal(t, once, f.Words())
	assert.Equal(t, uint64(5), f.SetBits())
}

func TestAddSetsExactlyTheIndexedBits(t *testing.T) {
	f := newTestFilter(t, 32, 1)
	f.Add("a")
	assert.Equal(t, []uint64{12}, f.Indices("a"))
	assert.Equal(t, []uint32{1 << 12}, f.Words())
}

func TestWordsIsACopy(t *testing.T) {
	f := newTestFilter(t, 64, 2)
	words := f.Words()
	words[0] = 0xffffffff
	assert.Zero(t, f.SetBits())
}

func TestFromWords(t *testing.T) {
	src := newTestFilter(t, testBits, testHashFunctions)
	src.Add("Bess")

	words := src.Words()
	f, err := FromWords(words, testHashFunctions)
	require.NoError(t, err)
	assert.True(t, f.Equal(src))
	assert.True(t, f.Test("Bess"))

	// the filter owns its storage
	words[0] = 0xffffffff
	assert.True(t, f.Equal(src))

	_, err = FromWords(nil, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = FromWords([]uint32{0}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
