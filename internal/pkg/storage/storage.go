package storage

import (
	"context"
	"io"
)

// FileStorage is the opaque blob store used for leave attachments.
type FileStorage interface {
	// Upload stores a file and returns the path/key it was stored under
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns a public URL for the stored file
	GetURL(ctx context.Context, path string) (string, error)
}
