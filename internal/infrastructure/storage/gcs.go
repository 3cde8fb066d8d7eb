package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"revamp/internal/ports/output"
)

var _ output.FileStorage = (*GCS)(nil)

// GCS stores uploads in a Google Cloud Storage bucket.
type GCS struct {
	client  *gcs.Client
	bucket  string
	baseURL string
}

// NewGCS opens a client for bucket. baseURL defaults to the public
// storage.googleapis.com address of the bucket.
func NewGCS(ctx context.Context, bucket, baseURL, credentialsFile string) (*GCS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + bucket
	}
	return &GCS{client: client, bucket: bucket, baseURL: baseURL}, nil
}

func (s *GCS) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) (string, error) {
	name, err := cleanPath(objectPath)
	if err != nil {
		return "", err
	}
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", name, err)
	}
	return publicURL(s.baseURL, name), nil
}

func (s *GCS) Delete(ctx context.Context, objectPath string) error {
	name, err := cleanPath(objectPath)
	if err != nil {
		return err
	}
	err = s.client.Bucket(s.bucket).Object(name).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", name, err)
	}
	return nil
}

func (s *GCS) Close() error {
	return s.client.Close()
}

func escapeSegment(s string) string {
	return url.PathEscape(s)
}
