package filterstore

import (
	"context"
	"io"

	"github.com/datatrails/go-datatrails-common/azblob"
)

type blobReader interface {
	Reader(
		ctx context.Context,
		identity string,
		opts ...azblob.Option,
	) (*azblob.ReaderResponse, error)
}

type blobWriter interface {
	Put(
		ctx context.Context,
		identity string,
		source io.ReadSeekCloser,
		opts ...azblob.Option,
	) (*azblob.WriteResponse, error)
}

// BlobStore is the subset of the azblob storer a Store needs.
type BlobStore interface {
	blobReader
	blobWriter
}

// blobRead reads the whole blob and returns the underlying azblob response as
// the most consistent way to propagate the blob metadata to the caller. On
// return, regardless of error, the response reader has been closed.
func blobRead(
	ctx context.Context, blobPath string, store blobReader, opts ...azblob.Option,
) (*azblob.ReaderResponse, []byte, error) {
	rr, err := store.Reader(ctx, blobPath, opts...)
	if err != nil {
		return nil, nil, err
	}
	defer rr.Reader.Close()

	data, err := io.ReadAll(rr.Reader)
	if err != nil {
		return nil, nil, err
	}
	return rr, data, nil
}
