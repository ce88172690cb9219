package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/pkg/pgload"
)

var initCmd = &cobra.Command{
	Use:   "init [target_path]",
	Short: "Write a pgload.yaml with the current connection and default mapping",
	Long: `Init writes pgload.yaml into the target directory (default: current directory).

The file captures the connection resolved from flags, the environment and
defaults (never the password), the CSV directory, the transaction mode and the
built-in star-schema mapping, ready to be edited.

An existing pgload.yaml is left untouched unless --force is given.

Examples:
  pgload init -d Health_DataBase
  pgload init ./project -h db.internal -U loader -d Health_DataBase --tx-mode atomic`,
	Args: OptionalDirectory,
	RunE: runInit,
}

type initFlagValues struct {
	conn      connectionFlags
	directory string
	txMode    string
	force     bool
}

var initFlags initFlagValues

func init() {
	rootCmd.AddCommand(initCmd)

	registerConnectionFlags(initCmd, &initFlags.conn)
	initCmd.Flags().StringVar(&initFlags.directory, "directory", pgload.DefaultDirectory,
		"CSV directory, relative to pgload.yaml")
	initCmd.Flags().StringVar(&initFlags.txMode, "tx-mode", string(pgload.TxModeSingle),
		"Transaction mode: single|per-file|atomic")
	initCmd.Flags().BoolVar(&initFlags.force, "force", false,
		"Overwrite an existing pgload.yaml")
}

// buildInitConfig assembles the project file written by init.
func buildInitConfig(flags initFlagValues) (*config.ProjectConfig, error) {
	mode, err := pgload.ParseTxMode(flags.txMode)
	if err != nil {
		return nil, err
	}

	connConfig, err := resolveConnection(flags.conn, nil)
	if err != nil {
		return nil, err
	}

	return &config.ProjectConfig{
		Connection:  projectConnection(connConfig),
		Directory:   flags.directory,
		Transaction: string(mode),
		Mappings:    pgload.DefaultMappings(),
	}, nil
}

// writeProjectConfig saves cfg as targetPath/pgload.yaml and returns the file path.
func writeProjectConfig(targetPath string, cfg *config.ProjectConfig, force bool) (string, error) {
	if err := os.MkdirAll(targetPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", targetPath, err)
	}

	path := filepath.Join(targetPath, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite): %w", path, pgload.ErrInvalidConfig)
	}

	if err := config.Save(path, cfg); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func runInit(cmd *cobra.Command, args []string) error {
	_, _ = loadProjectConfig("") // loads .env so PG* variables apply

	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}

	cfg, err := buildInitConfig(initFlags)
	if err != nil {
		return err
	}

	path, err := writeProjectConfig(targetPath, cfg, initFlags.force)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	fmt.Fprintln(os.Stderr, "\nNext steps:")
	fmt.Fprintf(os.Stderr, "  pgload mappings --config %s\n", path)
	fmt.Fprintf(os.Stderr, "  pgload load --config %s\n", path)
	return nil
}
