package store

import (
	"path/filepath"
	"testing"

	"github.com/mbellwood/arcanum/internal/guideline"
)

// createTestStore creates a store backed by a temp-dir database.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestEntry creates a guideline entry with the given key fields.
func createTestEntry(form, technique string, level guideline.Level, name string) guideline.Entry {
	return guideline.Entry{
		Key: guideline.Key{
			Form:      form,
			Technique: technique,
			Level:     level,
			Name:      name,
		},
		Description: "test guideline",
	}
}
