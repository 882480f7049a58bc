package bloom

import "errors"

const (
	// WordBits is the width of one storage word. Filter sizes are rounded up
	// to a multiple of it.
	WordBits = 32

	// MaxWords bounds the storage so the word count fits the uint32 field of
	// the binary encoding.
	MaxWords = uint64(^uint32(0))

	// HeaderBytesV1 is the fixed header size of the binary encoding.
	HeaderBytesV1 = 16

	MagicV1         = "BLF1"
	VersionV1 uint8 = 1

	// BitOrderLSB0 means bit p is bit p%32 (least significant first) of word
	// p/32.
	BitOrderLSB0 uint8 = 0
)

var (
	ErrInvalidArgument    = errors.New("bloom: invalid argument")
	ErrIncompatibleFilter = errors.New("bloom: filters have different sizes")

	ErrBadEncodingSize = errors.New("bloom: encoded filter has the wrong length")
	ErrBadMagic        = errors.New("bloom: header magic invalid")
	ErrBadVersion      = errors.New("bloom: header version invalid")
	ErrBadBitOrder     = errors.New("bloom: header bitOrder unsupported")
)
