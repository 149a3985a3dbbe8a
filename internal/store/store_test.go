package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening an existing database is idempotent.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var version int
	require.NoError(t, s.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := createTestStore(t)

	var journalMode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var foreignKeys int
	require.NoError(t, s.DB().QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	assert.Equal(t, 1, foreignKeys)
}

func TestClose_NilSafe(t *testing.T) {
	var s Store
	assert.NoError(t, s.Close())
}

func TestQuery_ImplementsExecutor(t *testing.T) {
	s := createTestStore(t)

	var _ Executor = s

	rows, err := s.Query(context.Background(), "SELECT count(*) FROM guidelines")
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var n int
	require.NoError(t, rows.Scan(&n))
	assert.Equal(t, 0, n)
}
