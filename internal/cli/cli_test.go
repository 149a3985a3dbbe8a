package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the CLI with args against a database in dir and
// returns stdout.
func runCommand(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddGetRemoveRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "arcanum.db")

	out, err := runCommand(t, dbPath, "add",
		"--form", "Animal", "--technique", "Creo", "--level", "5",
		"--name", "Cure X", "--description", "heals a beast")
	require.NoError(t, err)
	assert.Contains(t, out, "added Animal Creo 5: Cure X")

	out, err = runCommand(t, dbPath, "get",
		"--form", "Animal", "--technique", "Creo", "--level", "5", "--name", "Cure X")
	require.NoError(t, err)
	assert.Contains(t, out, "heals a beast")

	out, err = runCommand(t, dbPath, "remove",
		"--form", "Animal", "--technique", "Creo", "--level", "5", "--name", "Cure X")
	require.NoError(t, err)
	assert.Contains(t, out, "removed Animal Creo 5: Cure X")

	_, err = runCommand(t, dbPath, "get",
		"--form", "Animal", "--technique", "Creo", "--level", "5", "--name", "Cure X")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestAdd_DuplicateFails(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "arcanum.db")

	_, err := runCommand(t, dbPath, "add",
		"--form", "Animal", "--technique", "Creo", "--name", "Generic Z")
	require.NoError(t, err)

	out, err := runCommand(t, dbPath, "add",
		"--form", "Animal", "--technique", "Creo", "--name", "Generic Z")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DUPLICATE_KEY")
}

func TestList_PartialFilterAndOrder(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "arcanum.db")

	add := func(form, technique, level, name string) {
		t.Helper()
		_, err := runCommand(t, dbPath, "add",
			"--form", form, "--technique", technique, "--level", level, "--name", name)
		require.NoError(t, err)
	}
	add("Animal", "Creo", "5", "Cure X")
	add("Animal", "Creo", "2", "Preserve Y")
	add("Animal", "Creo", "0", "Generic Z")
	add("Ignem", "Creo", "5", "Flame")

	out, err := runCommand(t, dbPath, "list", "--form", "Animal")
	require.NoError(t, err)
	assert.Contains(t, out, "Generic Z")
	assert.Contains(t, out, "Cure X")
	assert.NotContains(t, out, "Flame")

	// Generic sorts first in catalog order.
	genericIdx := bytes.Index([]byte(out), []byte("Generic Z"))
	cureIdx := bytes.Index([]byte(out), []byte("Cure X"))
	assert.Less(t, genericIdx, cureIdx)

	out, err = runCommand(t, dbPath, "query", "--form", "Animal", "--order-by", "level:desc")
	require.NoError(t, err)
	cureIdx = bytes.Index([]byte(out), []byte("Cure X"))
	preserveIdx := bytes.Index([]byte(out), []byte("Preserve Y"))
	assert.Less(t, cureIdx, preserveIdx)
}

func TestRemove_ByBareName(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "arcanum.db")

	_, err := runCommand(t, dbPath, "add",
		"--form", "Herbam", "--technique", "Rego", "--level", "4", "--name", "Entangle")
	require.NoError(t, err)

	out, err := runCommand(t, dbPath, "remove", "--name", "Entangle")
	require.NoError(t, err)
	assert.Contains(t, out, "removed Herbam Rego 4: Entangle")

	// Removing an absent name is reported, not an error.
	out, err = runCommand(t, dbPath, "remove", "--name", "Entangle")
	require.NoError(t, err)
	assert.Contains(t, out, "no guideline named Entangle")
}

func TestLoadAndValidate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "arcanum.db")

	catalogDir := t.TempDir()
	catalogYAML := `guidelines:
  - form: Animal
    technique: Creo
    level: 5
    name: Cure X
  - form: Animal
    technique: Creo
    name: Generic Z
`
	require.NoError(t, os.WriteFile(filepath.Join(catalogDir, "animal.yaml"), []byte(catalogYAML), 0o644))

	out, err := runCommand(t, dbPath, "validate", catalogDir)
	require.NoError(t, err)
	assert.Contains(t, out, "valid")

	out, err = runCommand(t, dbPath, "load", catalogDir)
	require.NoError(t, err)
	assert.Contains(t, out, "loaded 2 guideline(s)")

	// Loading the same directory again collides on every key.
	_, err = runCommand(t, dbPath, "load", catalogDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidate_DuplicateKeysInFiles(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "arcanum.db")

	catalogDir := t.TempDir()
	dup := `guidelines:
  - form: Animal
    technique: Creo
    level: 5
    name: Cure X
  - form: Animal
    technique: Creo
    level: 5
    name: Cure X
`
	require.NoError(t, os.WriteFile(filepath.Join(catalogDir, "dup.yaml"), []byte(dup), 0o644))

	out, err := runCommand(t, dbPath, "validate", catalogDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DUPLICATE_KEY")
}

func TestGet_MissingFlags(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "arcanum.db")

	_, err := runCommand(t, dbPath, "get", "--form", "Animal")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
