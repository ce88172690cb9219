package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/internal/db"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// connectionFlags holds the connection-related flag values shared by commands
// that talk to, or describe, the target database.
type connectionFlags struct {
	connection     string
	host           string
	port           int
	username       string
	database       string
	sslMode        string
	azure          bool
	azureTenantID  string
	azureClientID  string
	aws            bool
	awsRegion      string
	google         bool
	googleInstance string
}

func registerConnectionFlags(cmd *cobra.Command, f *connectionFlags) {
	cmd.Flags().StringVar(&f.connection, "connection", "",
		"PostgreSQL connection string (URI or key=value format).\n"+
			"Mutually exclusive with granular flags (--host, --port, --username, --sslmode).\n"+
			"Alternative: PGLOAD_CONNECTION_STRING or DATABASE_URL environment variable.\n"+
			"Example: postgresql://user@localhost:5432/Health_DataBase")

	// Precedence: flag > environment variable > pgload.yaml > default
	cmd.Flags().StringVarP(&f.host, "host", "h", "",
		"PostgreSQL server host\n"+
			"Precedence: --host > $PGHOST > pgload.yaml > localhost")
	cmd.Flags().IntVarP(&f.port, "port", "p", 0,
		"PostgreSQL server port\n"+
			"Precedence: --port > $PGPORT > pgload.yaml > 5432")
	cmd.Flags().StringVarP(&f.username, "username", "U", "",
		"PostgreSQL user (default: $PGUSER)")
	cmd.Flags().StringVarP(&f.database, "database", "d", "",
		"Target database (overrides the database of a connection string, or $PGDATABASE)")
	cmd.Flags().StringVar(&f.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full\n"+
			"(default: prefer, or $PGSSLMODE)")

	cmd.Flags().BoolVar(&f.aws, "aws", false,
		"Use AWS RDS IAM authentication (token from the default AWS credential chain)")
	cmd.Flags().StringVar(&f.awsRegion, "aws-region", "",
		"AWS region of the RDS instance (overrides $AWS_REGION)")

	cmd.Flags().BoolVar(&f.google, "google", false,
		"Use Google Cloud SQL IAM authentication through the Cloud SQL connector")
	cmd.Flags().StringVar(&f.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")

	cmd.Flags().BoolVar(&f.azure, "azure", false,
		"Use Azure Entra ID authentication\n"+
			"Uses DefaultAzureCredential chain (Managed Identity, Azure CLI, etc.)")
	cmd.Flags().StringVar(&f.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	cmd.Flags().StringVar(&f.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")
}

func (f connectionFlags) granular() *db.GranularConnFlags {
	return &db.GranularConnFlags{
		Host:     f.host,
		Port:     f.port,
		Username: f.username,
		Database: f.database,
		SSLMode:  f.sslMode,
	}
}

func (f connectionFlags) cloud() *db.CloudAuthFlags {
	return &db.CloudAuthFlags{
		AWS:            f.aws,
		AWSRegion:      f.awsRegion,
		Google:         f.google,
		GoogleInstance: f.googleInstance,
		Azure:          f.azure,
		AzureTenantID:  f.azureTenantID,
		AzureClientID:  f.azureClientID,
	}
}

// resolveConnection resolves the connection from flags, the environment and
// pgload.yaml. See db.ResolveConnectionParams for the precedence.
func resolveConnection(flags connectionFlags, projectCfg *config.ProjectConfig) (*pgload.ConnectionConfig, error) {
	return db.ResolveConnectionParams(
		flags.connection,
		flags.granular(),
		flags.cloud(),
		db.LoadFromEnvironment(),
		projectCfg,
	)
}

// requireDatabase fails with guidance when no source named a database.
func requireDatabase(connConfig *pgload.ConnectionConfig, commandName string) error {
	if connConfig.Database != "" {
		return nil
	}
	return fmt.Errorf("database name is required: %w\n"+
		"Provide via:\n"+
		"  1. --database/-d flag: pgload %s -d Health_DataBase\n"+
		"  2. Connection string: pgload %s --connection \"postgresql://user@host/Health_DataBase\"\n"+
		"  3. Environment variable: export PGDATABASE=Health_DataBase\n"+
		"  4. pgload.yaml: connection.database",
		pgload.ErrInvalidConfig, commandName, commandName)
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
func logConnectionVerbose(logger pgload.Logger, connConfig *pgload.ConnectionConfig) {
	logger.Verbose("Connection resolved:")
	logger.Verbose("  Host: %s", connConfig.Host)
	logger.Verbose("  Port: %d", connConfig.Port)
	logger.Verbose("  User: %s", connConfig.Username)
	logger.Verbose("  Database: %s", connConfig.Database)
	logger.Verbose("  SSL Mode: %s", connConfig.SSLMode)
	logger.Verbose("  Auth Method: %s", connConfig.AuthMethod)
	if connConfig.AWSRegion != "" {
		logger.Verbose("  AWS Region: %s", connConfig.AWSRegion)
	}
	if connConfig.GoogleInstance != "" {
		logger.Verbose("  Cloud SQL Instance: %s", connConfig.GoogleInstance)
	}
}
