// Package filestore persists uploaded resume files on the local filesystem.
// The database keeps the authoritative blob; the filesystem copy exists so
// operators can grab resumes without a SQL client.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes data under the store directory and returns the stored path.
// Filenames are prefixed with the candidate ID and a UUID so resubmissions
// never overwrite an earlier upload.
func (s *Store) Save(candidateID, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir %s: %w", s.dir, err)
	}

	name := fmt.Sprintf("%s-%s-%s", candidateID, uuid.NewString(), filepath.Base(filename))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write resume %s: %w", path, err)
	}
	return path, nil
}
