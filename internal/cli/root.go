package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgload",
	Short: "Bulk-load CSV exports into PostgreSQL with COPY",
	Long: `pgload streams a directory of CSV files into existing PostgreSQL tables
using COPY FROM STDIN. Each file is mapped to one table; the header line of
every file is skipped and the remaining rows are appended.

Missing files and files that fail to load are reported and skipped. The run
itself only fails when the database cannot be reached or the transaction
cannot be committed.

Exit Codes:
  0  - Run completed (per-file problems do not count unless requested)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or mapping
  11 - Database connection failed
  13 - At least one file failed to load (--fail-on-error)
  14 - At least one file was missing (--fail-on-missing)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	// -h is the PostgreSQL host flag; help stays reachable as --help.
	rootCmd.PersistentFlags().Bool("help", false, "Help for pgload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "",
		"Path to pgload.yaml (default: ./pgload.yaml if present)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return ""
	}
	return path
}
