package bloom

/*

# Bloom filters over packed 32 bit words

This package provides a plain in-memory Bloom filter: m bits of storage, k
positions consulted per value, and word-wise union and intersection between
filters of the same size.

## What Bloom filters are (and are not)

Bloom filters provide a *probabilistic prefilter*:

- If Test says false, the value was never added.
- If Test says true, the value may or may not have been added (false
  positives are possible, false negatives are not).

The filter keeps no record of the values themselves, only bits. There is no
delete and no exact count.

## Storage

m is rounded up to a multiple of 32 and stored as m/32 uint32 words. Bit p is
bit p%32 of word p/32, least significant bit first:

	word 0                          word 1
	+--------------------------------+--------------------------------+
	| 31 30 ...                 1  0 | 63 62 ...                33 32 |
	+--------------------------------+--------------------------------+

## Indexing

Positions come from package fnvindex: two 32 bit hashes h1, h2 of the value's
canonical string, combined as (h1 + i*h2) mod m for i in [0, k). Positions
are not deduplicated.

## Set operations

Union and Intersection require equal m. The hash function count is not
compared; the result takes the receiver's k. Both return new filters and
leave their inputs untouched.

## Capacity planning

For m bits, k hash functions and n distinct values the false positive rate
approaches

	(1 - e^(-k*n/m))^k

FalsePositiveRate, OptimalBits, OptimalHashFunctions and NewWithEstimates
apply this. EstimateCount inverts it from the number of set bits.

## Encoding: why the `V1` suffix exists

MarshalBinary writes a 16 byte header (see HeaderV1) followed by the words
big endian. The `V1` names pin the header layout, bit order and index
derivation, so an incompatible change can be added as `V2` side-by-side
without silently misreading previously persisted filters.

*/
