package filterstore

import "errors"

const (
	// DefaultPathPrefix is used when StoreConfig.PathPrefix is empty.
	DefaultPathPrefix = "v1/blooms"

	// BlobExtension is appended to every filter blob path.
	BlobExtension = ".bloom"

	TagKeyFormat        = "bloomformat"
	TagKeyBits          = "bloombits"
	TagKeyHashFunctions = "bloomk"

	FormatCBOR   = "cbor"
	FormatSealed = "sealed"

	formatUnknown = "unknown"

	// cose_Sign1 is cbor tag 18, which encodes as the single byte 0xd2. A
	// plain FilterState is a cbor map and never starts with it.
	coseSign1TagByte = 0xd2
)

var (
	ErrEtagRequired         = errors.New("filterstore: etag is required when updating a filter blob")
	ErrFilterNotProvided    = errors.New("filterstore: the filter context has no filter")
	ErrBlobStoreNotProvided = errors.New("filterstore: a blob store was required but not provided")
	ErrIDMismatch           = errors.New("filterstore: the blob holds a different filter id")
)
