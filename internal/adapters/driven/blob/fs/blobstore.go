// Package fs provides a filesystem-backed blob store for original
// document uploads. Blobs are plain files named by document id, which
// keeps re-extraction for degraded answering trivial.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore stores document blobs as files under a data directory.
type BlobStore struct {
	dir string
}

// NewBlobStore creates a blob store under the given data directory.
// If dataDir is empty, defaults to ~/.doclens/data/blobs.
func NewBlobStore(dataDir string) (*BlobStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".doclens", "data", "blobs")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &BlobStore{dir: dataDir}, nil
}

// Dir returns the blob directory path.
func (s *BlobStore) Dir() string {
	return s.dir
}

// Put stores a blob under the given id, replacing any existing blob.
func (s *BlobStore) Put(_ context.Context, id string, content []byte) error {
	path, err := s.blobPath(id)
	if err != nil {
		return err
	}

	// Write-then-rename so readers never see a partial blob.
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp blob: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing blob: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("storing blob: %w", err)
	}
	return nil
}

// Get retrieves a blob by id.
func (s *BlobStore) Get(_ context.Context, id string) ([]byte, error) {
	path, err := s.blobPath(id)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return content, nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (s *BlobStore) Delete(_ context.Context, id string) error {
	path, err := s.blobPath(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting blob: %w", err)
	}
	return nil
}

// blobPath maps an id to a file path, rejecting ids that would escape
// the blob directory.
func (s *BlobStore) blobPath(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", domain.ErrInvalidInput
	}
	return filepath.Join(s.dir, id), nil
}
