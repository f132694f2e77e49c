package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Greeting string   `yaml:"greeting"`
	IDs      []string `yaml:"ids"`
}

func TestDataDir(t *testing.T) {
	assert.Equal(t, "custom", DataDir("custom"))

	t.Setenv(DataDirEnv, "/srv/bot")
	assert.Equal(t, "/srv/bot", DataDir(""))

	t.Setenv(DataDirEnv, "")
	assert.Equal(t, "data", DataDir(""))
}

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "config", "hello", "config.yaml"), Path("data", "hello"))
}

func TestReadMissingLeavesDest(t *testing.T) {
	dir := t.TempDir()
	s := sample{Greeting: "keep"}
	require.NoError(t, Read(dir, "none", &s))
	assert.Equal(t, "keep", s.Greeting)
	assert.False(t, Exists(dir, "none"))
}

func TestSaveReadDelete(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, "p", &sample{Greeting: "hi", IDs: []string{"1"}}))
	assert.True(t, Exists(dir, "p"))

	var got sample
	require.NoError(t, Read(dir, "p", &got))
	assert.Equal(t, sample{Greeting: "hi", IDs: []string{"1"}}, got)

	require.NoError(t, Delete(dir, "p"))
	assert.False(t, Exists(dir, "p"))
	require.NoError(t, Delete(dir, "p"))
}

func TestReadOrInit(t *testing.T) {
	dir := t.TempDir()
	def := sample{Greeting: "default"}
	require.NoError(t, ReadOrInit(dir, "p", &def))
	assert.True(t, Exists(dir, "p"))

	require.NoError(t, os.WriteFile(Path(dir, "p"), []byte("greeting: edited\n"), 0o644))
	next := sample{Greeting: "default"}
	require.NoError(t, ReadOrInit(dir, "p", &next))
	assert.Equal(t, "edited", next.Greeting)
}

func TestReadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(Dir(dir, "p"), 0o755))
	require.NoError(t, os.WriteFile(Path(dir, "p"), []byte("greeting: [unclosed"), 0o644))

	var s sample
	assert.Error(t, Read(dir, "p", &s))
}
