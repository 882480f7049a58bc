package fnvindex

import "unicode/utf16"

const (
	// OffsetBasis32 is the FNV-1a 32 bit offset basis.
	OffsetBasis32 uint32 = 0x811c9dc5
	// Prime32 is the FNV 32 bit prime. Multiply implements it with shifts.
	Prime32 uint32 = 16777619
)

// Multiply returns a*16777619 mod 2^32, spelled as the shift identity
//
//	a + a<<1 + a<<4 + a<<7 + a<<8 + a<<24
func Multiply(a uint32) uint32 {
	return a + (a << 1) + (a << 4) + (a << 7) + (a << 8) + (a << 24)
}

// Hash32 computes FNV-1a over the UTF-16 code units of s.
//
// s is read as UTF-8. Runes above U+FFFF contribute their surrogate pair and
// invalid bytes contribute U+FFFD, which is what a UTF-16 string holding the
// same text would contain.
func Hash32(s string) uint32 {
	a := OffsetBasis32
	for _, r := range s {
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			a = Multiply(a ^ uint32(r1))
			a = Multiply(a ^ uint32(r2))
			continue
		}
		a = Multiply(a ^ uint32(r))
	}
	return a
}

// Remix derives the second hash from the first. It applies one further FNV
// multiply then an avalanche mix so that h2 does not track h1 linearly.
func Remix(a uint32) uint32 {
	a = Multiply(a)
	a += a << 13
	a ^= a >> 7
	a += a << 3
	a ^= a >> 17
	a += a << 5
	return a
}

// Pair returns the two base hashes for s.
func Pair(s string) (h1 uint32, h2 uint32) {
	h1 = Hash32(s)
	return h1, Remix(h1)
}
