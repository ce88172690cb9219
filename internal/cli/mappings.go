package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgload/internal/files/filesystem"
	"github.com/vvka-141/pgload/pkg/pgload"
)

var mappingsCmd = &cobra.Command{
	Use:   "mappings [directory]",
	Short: "Show the file-to-table mapping and which files are present",
	Long: `Mappings prints the effective file-to-table mapping in load order and
checks which files exist in the directory. CSV files in the directory that no
mapping refers to are listed as well. No database connection is made.

Examples:
  pgload mappings
  pgload mappings ./exports --config staging.yaml`,
	Args: OptionalDirectory,
	RunE: runMappings,
}

func init() {
	rootCmd.AddCommand(mappingsCmd)
}

func runMappings(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(getConfigFlag(cmd))
	if err != nil {
		return err
	}

	mappings := resolveMappings(projectCfg)
	if err := pgload.ValidateMappings(mappings); err != nil {
		return err
	}

	return describeMappings(os.Stdout, filesystem.NewOSFileSystem(), resolveDirectory(args, projectCfg), mappings)
}

// describeMappings writes one line per mapping with its presence in dir,
// followed by any unmapped CSV files found there.
func describeMappings(w io.Writer, fsys filesystem.FileSystemProvider, dir string, mappings []pgload.Mapping) error {
	fmt.Fprintf(w, "Directory: %s\n\n", dir)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	present := 0
	for i, m := range mappings {
		status := "missing"
		exists, err := filesystem.Exists(fsys, filepath.Join(dir, m.File))
		switch {
		case err != nil:
			status = "unreadable"
		case exists:
			status = "found"
			present++
		}
		fmt.Fprintf(tw, "  %d.\t%s\t->\t%s\t[%s]\n", i+1, m.File, m.Table, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d of %d file(s) present\n", present, len(mappings))

	unmapped, err := unmappedCSVFiles(fsys, dir, mappings)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(w, "Directory %s does not exist\n", dir)
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	if len(unmapped) > 0 {
		fmt.Fprintln(w, "\nUnmapped CSV files (not loaded):")
		for _, name := range unmapped {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	return nil
}

func unmappedCSVFiles(fsys filesystem.FileSystemProvider, dir string, mappings []pgload.Mapping) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	mapped := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		mapped[m.File] = true
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || mapped[e.Name()] {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
