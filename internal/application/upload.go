package application

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"revamp/internal/domain"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
)

const (
	maxImageSize = 5 << 20
	maxVideoSize = 50 << 20
)

var (
	bannerTypes    = []string{"image/jpeg", "image/png", "image/webp"}
	collegeIDTypes = []string{"image/jpeg", "image/png", "application/pdf"}
	videoTypes     = []string{"video/mp4", "video/webm", "video/quicktime"}
)

func validateUpload(file input.Upload, allowed []string, maxSize int64) error {
	if file.Body == nil || file.Size <= 0 || file.Size > maxSize {
		return domain.ErrInvalidUpload
	}
	if !slices.Contains(allowed, file.ContentType) {
		return domain.ErrInvalidUpload
	}
	return nil
}

// objectPath builds "{prefix}/{owner}/{filename}" with the filename reduced
// to its base name.
func objectPath(prefix, owner, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		name = "upload"
	}
	return path.Join(prefix, owner, name)
}

// storedObject is an upload already written to the file store.
type storedObject struct {
	URL     string
	path    string
	storage output.FileStorage
}

func store(ctx context.Context, storage output.FileStorage, prefix, owner string, file input.Upload) (*storedObject, error) {
	p := objectPath(prefix, owner, file.Filename)
	url, err := storage.Upload(ctx, p, file.Body, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", prefix, err)
	}
	return &storedObject{URL: url, path: p, storage: storage}, nil
}

// discard removes an object whose database record failed to save and
// returns cause, joined with the delete failure if any. A nil object only
// returns cause.
func (o *storedObject) discard(ctx context.Context, cause error) error {
	if o == nil {
		return cause
	}
	if err := o.storage.Delete(context.WithoutCancel(ctx), o.path); err != nil {
		return errors.Join(cause, fmt.Errorf("remove orphaned upload %s: %w", o.path, err))
	}
	return cause
}
