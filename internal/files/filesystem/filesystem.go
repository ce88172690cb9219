package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider gives the loader the file operations it needs:
// existence checks and streaming reads. Implementations must report a missing
// path with an error matching fs.ErrNotExist.
type FileSystemProvider interface {
	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)

	// OpenFile opens a regular file for streaming. The caller closes it.
	OpenFile(path string) (io.ReadCloser, error)

	// ReadDir returns the entries of a directory, sorted by name.
	ReadDir(path string) ([]FileInfo, error)
}

// ErrIsDirectory is returned when a file was expected but the path is a directory.
var ErrIsDirectory = errors.New("path is a directory")

// Exists reports whether path names a regular file.
// A missing path yields (false, nil); a directory yields ErrIsDirectory;
// any other Stat failure is returned as is.
func Exists(provider FileSystemProvider, path string) (bool, error) {
	info, err := provider.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	return true, nil
}
