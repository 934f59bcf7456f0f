package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes files under a root directory.
type LocalStore struct {
	root string
}

// NewLocalStore creates root if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Save writes data through a temporary file in the target directory and
// renames it into place, so readers never see a partial document.
func (s *LocalStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}

	target := filepath.Join(s.root, filepath.FromSlash(cleaned))
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", cleaned, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", cleaned, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", cleaned, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("rename %s: %w", cleaned, err)
	}
	return nil
}

// Location returns the file path name is saved at.
func (s *LocalStore) Location(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

func (s *LocalStore) Close() error { return nil }
