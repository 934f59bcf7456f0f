package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore writes objects to a Google Cloud Storage bucket under an optional prefix.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStore opens a client and checks that the bucket is reachable.
func NewGCSStore(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}

	return newGCSStore(client, bucket, prefix), nil
}

func newGCSStore(client *storage.Client, bucket, prefix string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *GCSStore) objectName(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Save uploads data as a single object.
func (s *GCSStore) Save(ctx context.Context, name string, data []byte) error {
	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}

	w := s.client.Bucket(s.bucket).Object(s.objectName(cleaned)).NewWriter(ctx)
	w.ContentType = contentType(cleaned)

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("upload %s: %w", cleaned, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload %s: %w", cleaned, err)
	}
	return nil
}

// Location returns the gs:// URL of name.
func (s *GCSStore) Location(name string) string {
	return "gs://" + s.bucket + "/" + s.objectName(name)
}

func (s *GCSStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
