// Package storage persists archived documents and files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"google.golang.org/api/option"
)

// Type selects a storage backend.
type Type string

const (
	TypeLocal Type = "local"
	TypeGCS   Type = "gcs"
)

// Config is read from the STORAGE_* environment variables.
type Config struct {
	Type      Type   `envconfig:"TYPE" default:"local"`
	LocalPath string `envconfig:"LOCAL_PATH" default:"archive"`
	GCSBucket string `envconfig:"GCS_BUCKET"`
	GCSPrefix string `envconfig:"GCS_PREFIX"`
	// Optional service account key. Application default credentials are used when empty.
	GCSKeyFile string `envconfig:"GCS_KEY_FILE"`
}

// Store saves named blobs. Names are slash separated and relative.
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	Location(name string) string
	Close() error
}

// ErrInvalidName is returned for absolute names or names that escape the store.
var ErrInvalidName = errors.New("invalid archive name")

// NewStore creates the backend selected by cfg.Type.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocalStore(cfg.LocalPath)
	case TypeGCS:
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("STORAGE_GCS_BUCKET must be set when using gcs storage")
		}
		var opts []option.ClientOption
		if cfg.GCSKeyFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCSKeyFile))
		}
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSPrefix, opts...)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// cleanName validates name and returns it in canonical slash form.
func cleanName(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return cleaned, nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".json":
		return "application/json"
	case ".txt", ".log":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
