package snapshot

import (
	"fmt"
	"time"

	"github.com/forestrie/go-bloomfilter/bloom"
	"github.com/google/uuid"
)

// FilterState is the CBOR form of a filter. It carries everything needed to
// rebuild the filter, plus an identity and the time it was taken.
type FilterState struct {
	// ID identifies the filter across snapshots. It is a 16 byte uuid.
	ID []byte `cbor:"1,keyasint"`

	// Bits is m. It is redundant with len(Words)*32 and checked against it on
	// decode so a truncated word array is caught.
	Bits          uint64   `cbor:"2,keyasint"`
	HashFunctions uint32   `cbor:"3,keyasint"`
	Words         []uint32 `cbor:"4,keyasint"`

	// Timestamp is the unix time (milliseconds) at which the snapshot was
	// taken. Including it allows the same filter contents to be re-sealed.
	Timestamp int64 `cbor:"5,keyasint"`
}

// NewFilterState captures f under the given id.
func NewFilterState(id uuid.UUID, f *bloom.Filter, at time.Time) FilterState {
	return FilterState{
		ID:            id[:],
		Bits:          f.Bits(),
		HashFunctions: uint32(f.HashFunctions()),
		Words:         f.Words(),
		Timestamp:     at.UnixMilli(),
	}
}

// FilterID returns the snapshot's filter identity.
func (s FilterState) FilterID() (uuid.UUID, error) {
	id, err := uuid.FromBytes(s.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrStateInvalid, err)
	}
	return id, nil
}

// Validate checks the state describes a filter that can be rebuilt.
func (s FilterState) Validate() error {
	if len(s.ID) != len(uuid.UUID{}) {
		return fmt.Errorf("%w: id must be %d bytes, got %d", ErrStateInvalid, len(uuid.UUID{}), len(s.ID))
	}
	if len(s.Words) == 0 {
		return fmt.Errorf("%w: no storage words", ErrStateInvalid)
	}
	if s.Bits != uint64(len(s.Words))*bloom.WordBits {
		return fmt.Errorf(
			"%w: %d bits does not match %d words", ErrStateInvalid, s.Bits, len(s.Words))
	}
	if s.HashFunctions == 0 {
		return fmt.Errorf("%w: hash function count is zero", ErrStateInvalid)
	}
	return nil
}

// Filter rebuilds the filter captured by the state.
func (s FilterState) Filter() (*bloom.Filter, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return bloom.FromWords(s.Words, int(s.HashFunctions))
}
