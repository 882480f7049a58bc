package filterstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
)

var errBlobNotFound = errors.New("blob not found")

type memBlob struct {
	data         []byte
	etag         string
	lastModified time.Time
}

// memBlobs is an in memory BlobStore. It ignores the azblob options, the etag
// conditions are the real store's job.
type memBlobs struct {
	blobs   map[string]memBlob
	puts    int
	putErr  error
	nextTag int
}

func newMemBlobs() *memBlobs {
	return &memBlobs{blobs: map[string]memBlob{}}
}

func (m *memBlobs) Put(
	ctx context.Context, identity string, source io.ReadSeekCloser, opts ...azblob.Option,
) (*azblob.WriteResponse, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	defer source.Close()
	data, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	m.puts++
	m.nextTag++
	m.blobs[identity] = memBlob{
		data:         data,
		etag:         fmt.Sprintf("etag-%d", m.nextTag),
		lastModified: time.UnixMilli(int64(1700000000000 + m.nextTag)),
	}
	return &azblob.WriteResponse{}, nil
}

func (m *memBlobs) Reader(
	ctx context.Context, identity string, opts ...azblob.Option,
) (*azblob.ReaderResponse, error) {
	b, ok := m.blobs[identity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errBlobNotFound, identity)
	}
	etag := b.etag
	lastModified := b.lastModified
	return &azblob.ReaderResponse{
		Reader:        io.NopCloser(bytes.NewReader(b.data)),
		ETag:          &etag,
		LastModified:  &lastModified,
		ContentLength: int64(len(b.data)),
	}, nil
}
