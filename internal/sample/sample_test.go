package sample

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPlainUTF8(t *testing.T) {
	res, err := Read(bytes.NewReader([]byte("a,b\n1,2\n")), 0)
	require.NoError(t, err)
	assert.True(t, res.IsUTF8)
	assert.Equal(t, "a,b\n1,2\n", string(res.Data))
}

func TestReadStripsUTF8BOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\n")...)
	res, err := Read(bytes.NewReader(raw), 0)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(res.Data))
	assert.True(t, res.IsUTF8)
}

func TestReadUTF16(t *testing.T) {
	// "a,b\n" as UTF-16LE with BOM.
	raw := []byte{0xFF, 0xFE, 'a', 0, ',', 0, 'b', 0, '\n', 0}
	res, err := Read(bytes.NewReader(raw), 0)
	require.NoError(t, err)
	assert.False(t, res.IsUTF8)
	assert.Equal(t, "a,b\n", string(res.Data))
}

func TestReadWindows1252Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid as a standalone UTF-8 byte.
	raw := []byte{'c', 'a', 'f', 0xE9, ',', '1', '\n'}
	res, err := Read(bytes.NewReader(raw), 0)
	require.NoError(t, err)
	assert.False(t, res.IsUTF8)
	assert.Equal(t, "café,1\n", string(res.Data))
}

func TestReadByteLimit(t *testing.T) {
	res, err := Read(bytes.NewReader([]byte("abcdefgh")), 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(res.Data))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte("x;y\n1;2\n"), 0o644))

	res, err := ReadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "x;y\n1;2\n", string(res.Data))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"), 0)
	assert.Error(t, err)
}
