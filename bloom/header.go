package bloom

import (
	"fmt"
	"math"
)

// HeaderV1 describes the fixed header of the binary filter encoding:
//
//	[0:4]   magic "BLF1"
//	[4]     version (1)
//	[5]     bit order (0, LSB0)
//	[6:8]   reserved, zero
//	[8:12]  k, uint32 big endian
//	[12:16] word count, uint32 big endian
//
// The header is followed by the storage words, each uint32 big endian.
type HeaderV1 struct {
	BitOrder uint8
	K        uint32
	Words    uint32
}

// EncodedBytesV1 returns the size of the binary encoding of a filter with
// nwords storage words.
func EncodedBytesV1(nwords uint64) uint64 {
	return HeaderBytesV1 + nwords*4
}

// DecodeHeaderV1 decodes a V1 header from the start of data.
func DecodeHeaderV1(data []byte) (HeaderV1, error) {
	if len(data) < HeaderBytesV1 {
		return HeaderV1{}, ErrBadEncodingSize
	}
	if string(data[0:4]) != MagicV1 {
		return HeaderV1{}, ErrBadMagic
	}
	if data[4] != VersionV1 {
		return HeaderV1{}, ErrBadVersion
	}

	h := HeaderV1{
		BitOrder: data[5],
		K:        readU32BE(data[8:12]),
		Words:    readU32BE(data[12:16]),
	}
	if h.BitOrder != BitOrderLSB0 {
		return HeaderV1{}, ErrBadBitOrder
	}
	if h.K == 0 {
		return HeaderV1{}, fmt.Errorf("%w: header k is zero", ErrInvalidArgument)
	}
	if h.Words == 0 {
		return HeaderV1{}, fmt.Errorf("%w: header word count is zero", ErrInvalidArgument)
	}
	return h, nil
}

// EncodeHeaderV1 writes a V1 header into the start of data.
func EncodeHeaderV1(data []byte, h HeaderV1) error {
	if len(data) < HeaderBytesV1 {
		return ErrBadEncodingSize
	}
	if h.BitOrder != BitOrderLSB0 {
		return ErrBadBitOrder
	}
	if h.K == 0 || h.Words == 0 {
		return fmt.Errorf("%w: k and word count must be positive", ErrInvalidArgument)
	}

	copy(data[0:4], MagicV1)
	data[4] = VersionV1
	data[5] = h.BitOrder
	clear(data[6:8])
	writeU32BE(data[8:12], h.K)
	writeU32BE(data[12:16], h.Words)
	return nil
}

// MarshalBinary encodes the filter geometry and storage words.
func (f *Filter) MarshalBinary() ([]byte, error) {
	data := make([]byte, EncodedBytesV1(uint64(len(f.words))))
	err := EncodeHeaderV1(data, HeaderV1{
		BitOrder: BitOrderLSB0,
		K:        uint32(f.k),
		Words:    uint32(len(f.words)),
	})
	if err != nil {
		return nil, err
	}
	off := HeaderBytesV1
	for _, w := range f.words {
		writeU32BE(data[off:off+4], w)
		off += 4
	}
	return data, nil
}

// UnmarshalBinary replaces f with the filter encoded in data.
func (f *Filter) UnmarshalBinary(data []byte) error {
	h, err := DecodeHeaderV1(data)
	if err != nil {
		return err
	}
	if uint64(len(data)) != EncodedBytesV1(uint64(h.Words)) {
		return fmt.Errorf(
			"%w: %d bytes for %d words", ErrBadEncodingSize, len(data), h.Words)
	}
	if uint64(h.K) > uint64(math.MaxInt) {
		return fmt.Errorf("%w: header k %d overflows int", ErrInvalidArgument, h.K)
	}

	words := make([]uint32, h.Words)
	off := HeaderBytesV1
	for i := range words {
		words[i] = readU32BE(data[off : off+4])
		off += 4
	}
	f.m = uint64(h.Words) * WordBits
	f.k = int(h.K)
	f.words = words
	return nil
}
