package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_OpenFile(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "cleaned_DimDate.csv")
	expected := "date_key,date\n1,2024-01-01\n"
	if err := os.WriteFile(filePath, []byte(expected), 0644); err != nil {
		t.Fatal(err)
	}

	fsys := NewOSFileSystem()

	rc, err := fsys.OpenFile(filePath)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != expected {
		t.Errorf("OpenFile() content = %q, want %q", string(data), expected)
	}
}

func TestOSFileSystem_OpenFile_Nonexistent(t *testing.T) {
	fsys := NewOSFileSystem()

	_, err := fsys.OpenFile(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("OpenFile(nonexistent) error = %v, want fs.ErrNotExist", err)
	}
}

func TestOSFileSystem_OpenFile_Directory(t *testing.T) {
	fsys := NewOSFileSystem()

	_, err := fsys.OpenFile(t.TempDir())
	if !errors.Is(err, ErrIsDirectory) {
		t.Errorf("OpenFile(dir) error = %v, want ErrIsDirectory", err)
	}
}

func TestOSFileSystem_Stat(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "test.csv")
	if err := os.WriteFile(filePath, []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fsys := NewOSFileSystem()

	info, err := fsys.Stat(filePath)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.IsDir() {
		t.Error("Stat(file) should not be a directory")
	}
	if info.Name() != "test.csv" {
		t.Errorf("Stat().Name() = %q, want %q", info.Name(), "test.csv")
	}

	if _, err := fsys.Stat(filepath.Join(dir, "nope")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(nonexistent) error = %v, want fs.ErrNotExist", err)
	}
}

func TestOSFileSystem_ReadDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	fsys := NewOSFileSystem()

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Name() != "a.csv" || entries[1].Name() != "b.csv" {
		t.Errorf("ReadDir() returned unexpected entries: %v", entries)
	}
}

func TestExists_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "present.csv")
	if err := os.WriteFile(filePath, []byte("h\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fsys := NewOSFileSystem()

	if ok, err := Exists(fsys, filePath); err != nil || !ok {
		t.Errorf("Exists(present) = %v, %v; want true, nil", ok, err)
	}
	if ok, err := Exists(fsys, filepath.Join(dir, "absent.csv")); err != nil || ok {
		t.Errorf("Exists(absent) = %v, %v; want false, nil", ok, err)
	}
}
