package filterstore

import (
	"crypto/ecdsa"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-bloomfilter/snapshot"
	"github.com/prometheus/client_golang/prometheus"
)

// StoreOptions holds the optional configuration of a Store. Stores are
// configured with StoreOption funcs, the values are private.
type StoreOptions struct {
	codec *dtcbor.CBORCodec

	// When a signer is provided every commit is sealed.
	signer snapshot.IdentifiableCoseSigner
	issuer string

	// When set, sealed filters only read successfully if their sealing key
	// is this key.
	trustedSealerKey *ecdsa.PublicKey

	registerer prometheus.Registerer

	// options that are forwarded when issuing a read blob call
	remoteReadOpts []azblob.Option

	now func() time.Time
}

type StoreOption func(*StoreOptions)

func WithCBORCodec(codec *dtcbor.CBORCodec) StoreOption {
	return func(opts *StoreOptions) {
		opts.codec = codec
	}
}

// WithSigner seals every committed filter with signer. issuer is recorded in
// the seal's CWT claims.
func WithSigner(issuer string, signer snapshot.IdentifiableCoseSigner) StoreOption {
	return func(opts *StoreOptions) {
		opts.issuer = issuer
		opts.signer = signer
	}
}

// WithTrustedSealerKey requires sealed filters to be sealed by key.
func WithTrustedSealerKey(key *ecdsa.PublicKey) StoreOption {
	return func(opts *StoreOptions) {
		opts.trustedSealerKey = key
	}
}

// WithRegisterer registers the store metrics with registerer. Without it the
// metrics are collected but not registered.
func WithRegisterer(registerer prometheus.Registerer) StoreOption {
	return func(opts *StoreOptions) {
		opts.registerer = registerer
	}
}

// WithReadOptions forwards opts on every blob read.
func WithReadOptions(opts ...azblob.Option) StoreOption {
	return func(o *StoreOptions) {
		o.remoteReadOpts = append(o.remoteReadOpts, opts...)
	}
}

// WithClock sets the source of snapshot timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(opts *StoreOptions) {
		opts.now = now
	}
}
