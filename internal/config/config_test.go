package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Config{Algorithm: "RTA", IncludePrefixes: []string{"com.example"}, ExcludeJDK: true, Format: "json"}
	require.NoError(t, Save(dir, want))

	got, ok, err := Load(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestLoad_SearchesUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, Save(root, Config{Algorithm: "CHA"}))

	got, ok, err := Load(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "CHA", got.Algorithm)
}

func TestLoad_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, ok)
}
