package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_OpenFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/data/outputs")
	mfs.AddFile("cleaned_DimPatient.csv", "id,name\n1,Ann\n")

	rc, err := mfs.OpenFile("/data/outputs/cleaned_DimPatient.csv")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,Ann\n", string(content))
}

func TestMemoryFileSystem_OpenFile_Missing(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")

	_, err := mfs.OpenFile("/data/nope.csv")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFileSystem_OpenFile_Directory(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddDir("sub")

	_, err := mfs.OpenFile("/data/sub")
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestMemoryFileSystem_FailOpen(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("locked.csv", "a\n")
	mfs.FailOpen("locked.csv", fs.ErrPermission)

	_, err := mfs.OpenFile("/data/locked.csv")
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("a.csv", "x\n")

	info, err := mfs.Stat("/data/a.csv")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, "a.csv", info.Name())
	assert.Equal(t, int64(2), info.Size())

	info, err = mfs.Stat("/data")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = mfs.Stat("/data/missing.csv")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("b.csv", "")
	mfs.AddFile("a.csv", "")
	mfs.AddFile("nested/c.csv", "")

	entries, err := mfs.ReadDir("/data")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.csv", "b.csv", "nested"}, names)

	_, err = mfs.ReadDir("/elsewhere")
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("a.csv", "x\n")
	mfs.AddDir("dir.csv")

	ok, err := Exists(mfs, "/data/a.csv")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(mfs, "/data/missing.csv")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Exists(mfs, "/data/dir.csv")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrIsDirectory))
}
