package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/internal/files/filesystem"
	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestDescribeMappings(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/data")
	fsys.AddFile("/data/cleaned_DimPatient.csv", "patient_id,name\n1,Alice\n")
	fsys.AddFile("/data/extra.CSV", "a\n")
	fsys.AddFile("/data/notes.txt", "ignored")

	var out bytes.Buffer
	err := describeMappings(&out, fsys, "/data", pgload.DefaultMappings())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Directory: /data")
	assert.Regexp(t, `cleaned_DimPatient\.csv\s+->\s+dimpatient\s+\[found\]`, text)
	assert.Regexp(t, `cleaned_FactTable\.csv\s+->\s+facttable\s+\[missing\]`, text)
	assert.Contains(t, text, "1 of 10 file(s) present")
	assert.Contains(t, text, "Unmapped CSV files")
	assert.Contains(t, text, "extra.CSV")
	assert.NotContains(t, text, "notes.txt")
}

func TestDescribeMappings_MissingDirectory(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/data")

	var out bytes.Buffer
	err := describeMappings(&out, fsys, "/nowhere", []pgload.Mapping{{File: "a.csv", Table: "a"}})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "[missing]")
	assert.Contains(t, out.String(), "0 of 1 file(s) present")
	assert.Contains(t, out.String(), "Directory /nowhere does not exist")
}

func TestDescribeMappings_DirectoryInPlaceOfFile(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/data")
	fsys.AddDir("/data/a.csv")

	var out bytes.Buffer
	require.NoError(t, describeMappings(&out, fsys, "/data", []pgload.Mapping{{File: "a.csv", Table: "a"}}))
	assert.Contains(t, out.String(), "[unreadable]")
}
