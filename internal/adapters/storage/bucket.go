package storage

import (
	"context"
	"io"
	"strings"

	perr "pixivrank/internal/platform/errors"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// Bucket is a Sink over a gocloud blob bucket
type Bucket struct {
	b      *blob.Bucket
	prefix string
}

// OpenBucket opens a bucket by URL, e.g. "s3://my-bucket?region=us-east-1" or "mem://"
func OpenBucket(ctx context.Context, bucketURL, prefix string) (*Bucket, error) {
	b, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "open bucket %s", bucketURL)
	}
	return NewBucket(b, prefix), nil
}

// NewBucket wraps an already open bucket; keys are prefix+name
func NewBucket(b *blob.Bucket, prefix string) *Bucket {
	return &Bucket{b: b, prefix: prefix}
}

// Put streams r into the object prefix+name. A failed stream aborts the
// writer so no partial object is committed
func (s *Bucket) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.b.NewWriter(wctx, s.prefix+name, &blob.WriterOptions{ContentType: contentType(name)})
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, r)
	if err != nil {
		// cancelling before Close discards the upload
		cancel()
		_ = w.Close()
		return n, err
	}
	return n, w.Close()
}

// Close releases the bucket
func (s *Bucket) Close() error { return s.b.Close() }

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".jpg"):
		return "image/jpeg"
	}
	return "application/octet-stream"
}
