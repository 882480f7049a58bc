package filterstore

import (
	"time"

	"github.com/forestrie/go-bloomfilter/bloom"
	"github.com/forestrie/go-bloomfilter/snapshot"
	"github.com/google/uuid"
)

// FilterContext carries a filter together with the blob metadata needed to
// write it back safely.
//
// A context is either Creating (no blob exists yet, the commit must not
// overwrite one) or holds the ETag of the blob it was read from (the commit
// must not overwrite a concurrent update).
type FilterContext struct {
	ID           uuid.UUID
	BlobPath     string
	ETag         string
	Tags         map[string]string
	LastRead     time.Time
	LastModified time.Time
	Creating     bool

	Filter *bloom.Filter

	// State is the snapshot last read or committed.
	State snapshot.FilterState
	// Sealed is set when the blob read was a sealed snapshot.
	Sealed *snapshot.SealedState
}

// CopyTags returns an independent copy of the blob tags.
func (fc *FilterContext) CopyTags() map[string]string {
	if fc.Tags == nil {
		return nil
	}
	tags := make(map[string]string, len(fc.Tags))
	for k, v := range fc.Tags {
		tags[k] = v
	}
	return tags
}
