package textfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nbody\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody\n", got)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.md")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_RejectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.md")
	data := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBinary)
}

func TestLoad_RejectsNonUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.md")
	require.NoError(t, os.WriteFile(path, []byte("caf\xe9 cr\xe8me br\xfbl\xe9e\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEncoding) || errors.Is(err, ErrBinary), "err = %v", err)
}

func TestSave_CreatesDirsAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "b.md")

	require.NoError(t, Save(path, "one"))
	require.NoError(t, Save(path, "two"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestSave_KeepsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	require.NoError(t, Save(path, "y"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFiles_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.md")
	var f Files

	require.NoError(t, f.Save(path, "hello"))
	got, err := f.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}
