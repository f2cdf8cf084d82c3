package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.toml")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSheetLifecycle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groove.json")

	out, err := run(t, "new", path, "--title", "Groove", "--tempo", "110", "--beats", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	store := core.NewStore()
	require.NoError(t, store.LoadFile(path))
	sh := store.Sheet()
	assert.Equal(t, "Groove", sh.Title)
	assert.Equal(t, 110, sh.Tempo)
	assert.Equal(t, 3, sh.Measures[0].TimeSignature.Beats)

	_, err = run(t, "new", path)
	assert.ErrorContains(t, err, "already exists")

	out, err = run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Groove")
	assert.Contains(t, out, "110 bpm")

	out, err = run(t, "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "groove.mid")
	data, err := os.ReadFile(filepath.Join(dir, "groove.mid"))
	require.NoError(t, err)
	assert.Equal(t, "MThd", string(data[:4]))
}

func TestInfoMissingFile(t *testing.T) {
	_, err := run(t, "info", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestConfigAndVersion(t *testing.T) {
	out, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[editor]")

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "drumsheet dev")
}
