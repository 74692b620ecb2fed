package storage

import (
	"context"
	"io"
	"time"
)

// Storage persists uploaded post attachments.
type Storage interface {
	// Write stores content from the reader under the given key.
	// size is the expected content length (-1 if unknown).
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Read retrieves content for the given key. The caller closes the
	// returned ReadCloser.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content with the given key. Missing keys are not
	// an error.
	Delete(ctx context.Context, key string) error

	// Exists checks whether content with the given key is stored.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a URL the client can fetch the content from. For S3
	// this is a presigned URL valid for expires.
	GetURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
