/*
Package fnvindex derives Bloom filter bit positions from a value.

Two 32 bit hashes are computed per value and combined linearly to simulate k
independent hash functions:

	h1 = FNV-1a(value)           over UTF-16 code units
	h2 = Remix(h1)               one more FNV multiply, then an avalanche mix
	pos[i] = (h1 + i*h2) mod m   for i in [0, k)

The exact arithmetic is a compatibility contract. Filters built elsewhere with
the same scheme (notably the javascript bloomfilter.js family) can only be
combined with, or tested against, filters built here if every step below
reproduces their 32 bit wraparound behavior bit for bit:

  - the FNV prime multiply is the shift identity
    a + a<<1 + a<<4 + a<<7 + a<<8 + a<<24 (mod 2^32)
  - all right shifts are logical
  - the linear combination is evaluated exactly, it is not wrapped to 32 bits

Positions are not deduplicated. A repeated position just sets the same bit
twice.

None of this is cryptographic. The hashes exist to scatter positions, not to
resist adversarial input.
*/
package fnvindex
