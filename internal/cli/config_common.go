package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// loadProjectConfig loads .env and the project configuration.
// Without an explicit path, a missing ./pgload.yaml is not an error and yields nil.
func loadProjectConfig(configPath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if configPath != "" {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("config file %s not found: %w", configPath, pgload.ErrInvalidConfig)
			}
			return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// resolveDirectory picks the CSV directory: argument > pgload.yaml > default.
func resolveDirectory(args []string, projectCfg *config.ProjectConfig) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if projectCfg != nil && projectCfg.Directory != "" {
		return projectCfg.Directory
	}
	return pgload.DefaultDirectory
}

// resolveMappings returns the mappings from pgload.yaml, or the built-in star schema.
func resolveMappings(projectCfg *config.ProjectConfig) []pgload.Mapping {
	if projectCfg != nil && len(projectCfg.Mappings) > 0 {
		return projectCfg.Mappings
	}
	return pgload.DefaultMappings()
}

// resolveTxMode prefers --tx-mode when set, then pgload.yaml, then single.
func resolveTxMode(cmd *cobra.Command, flagValue string, projectCfg *config.ProjectConfig) (pgload.TxMode, error) {
	if !cmd.Flags().Changed("tx-mode") && projectCfg != nil && projectCfg.Transaction != "" {
		return pgload.ParseTxMode(projectCfg.Transaction)
	}
	return pgload.ParseTxMode(flagValue)
}

// resolveEffectiveTimeout returns the effective timeout, preferring pgload.yaml if the flag wasn't set.
func resolveEffectiveTimeout(
	cmd *cobra.Command,
	projectCfg *config.ProjectConfig,
	flagTimeout time.Duration,
) (time.Duration, error) {
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		return projectCfg.TimeoutDuration()
	}
	if flagTimeout < 0 {
		return 0, fmt.Errorf("timeout cannot be negative: %w", pgload.ErrInvalidConfig)
	}
	return flagTimeout, nil
}

func authMethodToString(method pgload.AuthMethod) string {
	switch method {
	case pgload.AuthMethodAWSIAM:
		return "aws"
	case pgload.AuthMethodGoogleIAM:
		return "google"
	case pgload.AuthMethodAzureEntraID:
		return "azure"
	default:
		return ""
	}
}

// projectConnection converts resolved connection parameters into the
// pgload.yaml connection section. Secrets are never written.
func projectConnection(conn *pgload.ConnectionConfig) config.ConnectionConfig {
	return config.ConnectionConfig{
		Host:           conn.Host,
		Port:           conn.Port,
		Username:       conn.Username,
		Database:       conn.Database,
		SSLMode:        conn.SSLMode,
		AuthMethod:     authMethodToString(conn.AuthMethod),
		AzureTenantID:  conn.AzureTenantID,
		AzureClientID:  conn.AzureClientID,
		AWSRegion:      conn.AWSRegion,
		GoogleInstance: conn.GoogleInstance,
	}
}
