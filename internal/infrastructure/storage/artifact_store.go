package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactStore holds synthesized audio artifacts, one file per date key.
// An artifact is created at most once for the lifetime of the directory and
// never refreshed, even if the feed content for that date later changes.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates the store, making the directory if needed.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory %s: %w", dir, err)
	}
	return &ArtifactStore{dir: dir}, nil
}

// Path returns the artifact path for a date key.
func (s *ArtifactStore) Path(dateKey string) string {
	return filepath.Join(s.dir, dateKey+".mp3")
}

// Exists reports whether the artifact for a date key is present.
func (s *ArtifactStore) Exists(dateKey string) bool {
	info, err := os.Stat(s.Path(dateKey))
	return err == nil && !info.IsDir()
}

// Save persists an artifact. An existing artifact is left untouched; the
// write goes through a temp file and rename so readers never see a partial
// file.
func (s *ArtifactStore) Save(dateKey string, data []byte) error {
	path := s.Path(dateKey)
	if s.Exists(dateKey) {
		return nil
	}

	tmp, err := os.CreateTemp(s.dir, dateKey+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close artifact: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to store artifact: %w", err)
	}
	return nil
}
