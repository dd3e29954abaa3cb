package ports

import (
	"context"
	"io"
)

// Meta describes an opened dataset stream.
type Meta struct {
	Source      string
	ContentType string
	Size        int64
	Bucket      string
	Key         string
}

// FileOpener resolves a dataset path (local file, https URL, or s3 key)
// into a readable stream.
type FileOpener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, Meta, error)
}
