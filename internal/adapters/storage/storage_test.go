package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"slack-archiver/internal/adapters/storage"
)

func TestLocalStore_Save_WritesFile(t *testing.T) {
	// Arrange
	root := t.TempDir()
	store, err := storage.NewLocalStore(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act
	err = store.Save(context.Background(), "C1-1700000000.000100.json", []byte(`{"ok":1}`))

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "C1-1700000000.000100.json"))
	if err != nil || string(data) != `{"ok":1}` {
		t.Errorf("file = %q, %v", data, err)
	}
	if store.Location("C1-1700000000.000100.json") != filepath.Join(root, "C1-1700000000.000100.json") {
		t.Errorf("location = %v", store.Location("C1-1700000000.000100.json"))
	}
}

func TestLocalStore_Save_CreatesSubdirectoriesAndOverwrites(t *testing.T) {
	root := t.TempDir()
	store, _ := storage.NewLocalStore(root)

	_ = store.Save(context.Background(), "C1-1-files/T1-F1.png", []byte("one"))
	err := store.Save(context.Background(), "C1-1-files/T1-F1.png", []byte("two"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(root, "C1-1-files", "T1-F1.png"))
	if string(data) != "two" {
		t.Errorf("content = %q, want two", data)
	}
	entries, _ := os.ReadDir(filepath.Join(root, "C1-1-files"))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestLocalStore_Save_RejectsEscapingNames(t *testing.T) {
	store, _ := storage.NewLocalStore(t.TempDir())

	for _, name := range []string{"", "/etc/passwd", "../outside.json", "a/../../b", "."} {
		err := store.Save(context.Background(), name, []byte("x"))

		if !errors.Is(err, storage.ErrInvalidName) {
			t.Errorf("name %q: expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestLocalStore_Save_CanceledContext(t *testing.T) {
	store, _ := storage.NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Save(ctx, "a.json", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGCSStore_Location(t *testing.T) {
	testCases := []struct {
		prefix string
		want   string
	}{
		{prefix: "", want: "gs://archive-bucket/C1-1.json"},
		{prefix: "slack/", want: "gs://archive-bucket/slack/C1-1.json"},
		{prefix: "/a/b/", want: "gs://archive-bucket/a/b/C1-1.json"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			s := storage.NewGCSStoreForTest("archive-bucket", tc.prefix)

			if got := s.Location("C1-1.json"); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewStore_SelectsBackend(t *testing.T) {
	// Arrange
	root := filepath.Join(t.TempDir(), "nested", "archive")

	// Act
	s, err := storage.NewStore(context.Background(), storage.Config{Type: storage.TypeLocal, LocalPath: root})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*storage.LocalStore); !ok {
		t.Errorf("got %T, want *LocalStore", s)
	}
	if _, err := os.Stat(root); err != nil {
		t.Errorf("root not created: %v", err)
	}
}

func TestNewStore_InvalidConfig(t *testing.T) {
	testCases := []storage.Config{
		{Type: storage.TypeGCS},
		{Type: "s3"},
	}

	for _, cfg := range testCases {
		if _, err := storage.NewStore(context.Background(), cfg); err == nil {
			t.Errorf("config %+v: expected an error", cfg)
		}
	}
}
