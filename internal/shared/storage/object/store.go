package object

import (
	"context"
	"io"
)

// Store is a small binary cache keyed by caller-chosen names. The mail
// dispatcher writes fetched resumes through it and reads back the cached
// copy when the origin link stops serving.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
