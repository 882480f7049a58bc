package filterstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-bloomfilter/bloom"
	"github.com/forestrie/go-bloomfilter/snapshot"
	"github.com/google/uuid"
)

type StoreConfig struct {
	// PathPrefix is the blob path every filter is stored under. Defaults to
	// DefaultPathPrefix.
	PathPrefix string
}

// Store persists filters as blobs, one blob per filter id.
//
// Blobs hold either a plain cbor FilterState or, when the store has a signer,
// a COSE Sign1 message sealing it. Reads accept both. Writes use etag
// conditions so a concurrent writer's update is never silently lost.
//
// A Store has no mutable state of its own and may be shared.
type Store struct {
	Cfg   StoreConfig
	Log   logger.Logger
	Store BlobStore

	opts    StoreOptions
	sealer  *snapshot.Sealer
	metrics *storeMetrics
}

func NewStore(cfg StoreConfig, log logger.Logger, store BlobStore, opts ...StoreOption) (*Store, error) {
	if store == nil {
		return nil, ErrBlobStoreNotProvided
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultPathPrefix
	}
	cfg.PathPrefix = strings.TrimSuffix(cfg.PathPrefix, "/")
	if log == nil {
		log = logger.Sugar.WithServiceName("filterstore")
	}

	s := &Store{
		Cfg:   cfg,
		Log:   log,
		Store: store,
	}
	for _, o := range opts {
		o(&s.opts)
	}
	if s.opts.codec == nil {
		codec, err := snapshot.NewStateCodec()
		if err != nil {
			return nil, err
		}
		s.opts.codec = &codec
	}
	if s.opts.now == nil {
		s.opts.now = time.Now
	}
	if s.opts.signer != nil {
		sealer := snapshot.NewSealer(s.opts.issuer, *s.opts.codec)
		s.sealer = &sealer
	}
	s.metrics = newStoreMetrics(s.opts.registerer)
	return s, nil
}

// BlobPath returns the blob path for the filter id.
func (s *Store) BlobPath(id uuid.UUID) string {
	return fmt.Sprintf("%s/%s%s", s.Cfg.PathPrefix, id, BlobExtension)
}

// NewFilterContext prepares a context for committing a filter that has never
// been stored.
func (s *Store) NewFilterContext(id uuid.UUID, f *bloom.Filter) *FilterContext {
	return &FilterContext{
		ID:       id,
		BlobPath: s.BlobPath(id),
		Creating: true,
		Filter:   f,
		Tags:     map[string]string{},
	}
}

// CommitContext writes fc.Filter to its blob.
//
// When fc.Creating is set the write fails if the blob already exists.
// Otherwise fc.ETag must be set, and the write fails if the blob changed
// since it was read. On success fc.State holds what was written and Creating
// is cleared. The new etag is on the returned response. Callers wanting to
// commit the same context again should Read it first.
func (s *Store) CommitContext(ctx context.Context, fc *FilterContext) (*azblob.WriteResponse, error) {
	if fc.Filter == nil {
		return nil, ErrFilterNotProvided
	}

	format := FormatCBOR
	if s.sealer != nil {
		format = FormatSealed
	}

	wr, err := s.commit(ctx, fc, format)
	if err != nil {
		s.metrics.commits.WithLabelValues(format, statusFailure).Inc()
		return wr, err
	}
	s.metrics.commits.WithLabelValues(format, statusSuccess).Inc()
	s.metrics.fillRatio.Observe(fc.Filter.FillRatio())
	return wr, nil
}

func (s *Store) commit(ctx context.Context, fc *FilterContext, format string) (*azblob.WriteResponse, error) {
	state := snapshot.NewFilterState(fc.ID, fc.Filter, s.opts.now())

	var data []byte
	var err error
	if format == FormatSealed {
		data, err = s.sealer.Seal(s.opts.signer, fc.BlobPath, state)
	} else {
		data, err = snapshot.EncodeState(s.opts.codec, state)
	}
	if err != nil {
		return nil, err
	}

	tags := fc.CopyTags()
	if tags == nil {
		tags = map[string]string{}
	}
	tags[TagKeyFormat] = format
	tags[TagKeyBits] = strconv.FormatUint(state.Bits, 10)
	tags[TagKeyHashFunctions] = strconv.FormatUint(uint64(state.HashFunctions), 10)

	opts := []azblob.Option{azblob.WithTags(tags)}
	// The etag guards against racy updates. It will be absent only when
	// creating the blob.
	if fc.ETag != "" {
		opts = append(opts, azblob.WithEtagMatch(fc.ETag))
	} else {
		if !fc.Creating {
			return nil, ErrEtagRequired
		}
	}
	// When creating, require that no blob matches *any* etag, so we don't
	// racily overwrite a filter created concurrently.
	if fc.Creating {
		opts = append(opts, azblob.WithEtagNoneMatch("*"))
	}

	s.Log.Debugf(
		"commit: path=%s, format=%s, creating=%v, bits=%d, k=%d, setbits=%d",
		fc.BlobPath, format, fc.Creating, state.Bits, state.HashFunctions, fc.Filter.SetBits())

	wr, err := s.Store.Put(ctx, fc.BlobPath, azblob.NewBytesReaderCloser(data), opts...)
	if err != nil {
		return wr, err
	}
	s.metrics.blobBytes.WithLabelValues("write").Add(float64(len(data)))

	fc.State = state
	fc.Tags = tags
	fc.Creating = false
	return wr, nil
}

// Read loads the filter stored for id. Sealed blobs are verified before the
// filter is returned.
func (s *Store) Read(ctx context.Context, id uuid.UUID) (*FilterContext, error) {
	fc := &FilterContext{
		ID:       id,
		BlobPath: s.BlobPath(id),
	}
	format, err := s.read(ctx, fc)
	if err != nil {
		s.metrics.reads.WithLabelValues(format, statusFailure).Inc()
		return nil, err
	}
	s.metrics.reads.WithLabelValues(format, statusSuccess).Inc()
	s.metrics.fillRatio.Observe(fc.Filter.FillRatio())
	return fc, nil
}

func (s *Store) read(ctx context.Context, fc *FilterContext) (string, error) {
	opts := append([]azblob.Option{azblob.WithGetTags()}, s.opts.remoteReadOpts...)
	rr, data, err := blobRead(ctx, fc.BlobPath, s.Store, opts...)
	if err != nil {
		return formatUnknown, err
	}
	s.metrics.blobBytes.WithLabelValues("read").Add(float64(len(data)))

	format := FormatCBOR
	if len(data) > 0 && data[0] == coseSign1TagByte {
		format = FormatSealed
	}

	var state snapshot.FilterState
	if format == FormatSealed {
		signed, unverified, err := snapshot.DecodeSealed(*s.opts.codec, data)
		if err != nil {
			return format, err
		}
		err = snapshot.VerifySealedWithKey(*s.opts.codec, signed, unverified, s.opts.trustedSealerKey)
		if err != nil {
			return format, err
		}
		state = unverified
		fc.Sealed = &snapshot.SealedState{Sign1Message: *signed, FilterState: state}
	} else {
		state, err = snapshot.DecodeState(s.opts.codec, data)
		if err != nil {
			return format, err
		}
	}

	stateID, err := state.FilterID()
	if err != nil {
		return format, err
	}
	if stateID != fc.ID {
		return format, fmt.Errorf("%w: %s holds %s", ErrIDMismatch, fc.BlobPath, stateID)
	}

	fc.Filter, err = state.Filter()
	if err != nil {
		return format, err
	}
	fc.State = state
	fc.Tags = rr.Tags
	if rr.ETag != nil {
		fc.ETag = *rr.ETag
	}
	if rr.LastModified != nil {
		fc.LastModified = *rr.LastModified
	}
	fc.LastRead = time.Now()

	s.Log.Debugf(
		"read: path=%s, format=%s, bits=%d, k=%d, etag=%s",
		fc.BlobPath, format, state.Bits, state.HashFunctions, fc.ETag)
	return format, nil
}
