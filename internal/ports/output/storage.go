package output

import (
	"context"
	"io"
)

// FileStorage stores uploaded files and returns their public URL.
type FileStorage interface {
	Upload(ctx context.Context, path string, r io.Reader, contentType string) (string, error)
	// Delete removes the object at path. Missing objects are not an error.
	Delete(ctx context.Context, path string) error
}
