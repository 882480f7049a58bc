package snapshot

import (
	"math"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/fxamacker/cbor/v2"
)

// MaxStateWords is the largest word array a FilterState may carry. The cbor
// decoder rejects anything longer.
const MaxStateWords = math.MaxInt32

// StateDecOptions returns the deterministic decoding options with the array
// limit raised to MaxStateWords. The library default (131072 elements) caps
// filters at 4Mi bits.
func StateDecOptions() cbor.DecOptions {
	opts := dtcbor.NewDeterministicDecOpts()
	opts.MaxArrayElements = MaxStateWords
	return opts
}

// NewStateCodec returns the codec used for FilterState payloads, both plain
// and sealed. Encoding is deterministic so a decoded state re-encodes to the
// exact bytes that were signed.
func NewStateCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(dtcbor.NewDeterministicEncOpts(), StateDecOptions())
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}

// EncodeState validates and encodes s.
func EncodeState(codec *dtcbor.CBORCodec, s FilterState) ([]byte, error) {
	if codec == nil {
		return nil, ErrCBORCodecNotProvided
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return codec.MarshalCBOR(s)
}

// DecodeState decodes and validates a FilterState.
func DecodeState(codec *dtcbor.CBORCodec, data []byte) (FilterState, error) {
	if codec == nil {
		return FilterState{}, ErrCBORCodecNotProvided
	}
	var s FilterState
	if err := codec.UnmarshalInto(data, &s); err != nil {
		return FilterState{}, err
	}
	if err := s.Validate(); err != nil {
		return FilterState{}, err
	}
	return s, nil
}
