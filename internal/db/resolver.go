package db

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (-h, -p, -U, -d).
//
// Note: Password is NOT included as a CLI flag.
// Use $PGPASSWORD, a .pgpass file, or a connection string instead.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no connection-related granular flags were provided by the user.
// Database is excluded because it may override the database of a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// CloudAuthFlags selects and parameterises cloud IAM authentication.
// At most one provider may be selected.
type CloudAuthFlags struct {
	AWS       bool
	AWSRegion string

	Google         bool
	GoogleInstance string

	Azure         bool
	AzureTenantID string
	AzureClientID string
}

func (c *CloudAuthFlags) selected() []pgload.AuthMethod {
	var methods []pgload.AuthMethod
	if c.AWS {
		methods = append(methods, pgload.AuthMethodAWSIAM)
	}
	if c.Google {
		methods = append(methods, pgload.AuthMethodGoogleIAM)
	}
	if c.Azure || c.AzureTenantID != "" || c.AzureClientID != "" {
		methods = append(methods, pgload.AuthMethodAzureEntraID)
	}
	return methods
}

// EnvVars represents the environment variables consulted during resolution.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGHOST     string
	PGPORT     string
	PGUSER     string
	PGPASSWORD string
	PGDATABASE string
	PGSSLMODE  string

	PGLOAD_CONNECTION_STRING string
	DATABASE_URL             string // Heroku/Rails convention

	AWS_REGION string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
}

// LoadFromEnvironment reads PostgreSQL and cloud provider environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:                   os.Getenv("PGHOST"),
		PGPORT:                   os.Getenv("PGPORT"),
		PGUSER:                   os.Getenv("PGUSER"),
		PGPASSWORD:               os.Getenv("PGPASSWORD"),
		PGDATABASE:               os.Getenv("PGDATABASE"),
		PGSSLMODE:                os.Getenv("PGSSLMODE"),
		PGLOAD_CONNECTION_STRING: os.Getenv("PGLOAD_CONNECTION_STRING"),
		DATABASE_URL:             os.Getenv("DATABASE_URL"),
		AWS_REGION:               os.Getenv("AWS_REGION"),
		AZURE_TENANT_ID:          os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:          os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET:      os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

func (e *EnvVars) connectionString() string {
	if e.PGLOAD_CONNECTION_STRING != "" {
		return e.PGLOAD_CONNECTION_STRING
	}
	return e.DATABASE_URL
}

// ResolveConnectionParams resolves connection parameters with this precedence:
//
//  1. Connection string flag (--connection)
//  2. PGLOAD_CONNECTION_STRING or DATABASE_URL, when no granular flags are given
//  3. Granular flags (-h, -p, -U, -d, --sslmode)
//  4. PG* environment variables
//  5. pgload.yaml connection section
//  6. Defaults (localhost:5432, sslmode prefer)
//
// The -d flag overrides the database of a connection string. If neither names a database,
// PGDATABASE and then pgload.yaml are consulted.
//
// Returns an error if both --connection and granular flags are provided, or if the
// cloud authentication settings are incomplete or contradictory.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	cloudFlags *CloudAuthFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*pgload.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if cloudFlags == nil {
		cloudFlags = &CloudAuthFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U, --sslmode)\n"+
				"Choose one approach:\n"+
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/Health_DataBase\"\n"+
				"  2. Granular flags: -h localhost -p 5432 -U myuser -d Health_DataBase\n"+
				"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=myuser: %w",
			pgload.ErrInvalidConfig,
		)
	}

	var cfg *pgload.ConnectionConfig
	var err error

	switch {
	case connStringFlag != "":
		cfg, err = resolveFromConnectionString(connStringFlag, envVars)
	case granularFlags.IsEmpty() && envVars.connectionString() != "":
		cfg, err = resolveFromConnectionString(envVars.connectionString(), envVars)
	default:
		cfg, err = resolveFromGranularParams(granularFlags, envVars, pc)
	}
	if err != nil {
		return nil, err
	}

	if granularFlags.Database != "" {
		cfg.Database = granularFlags.Database
	}
	if cfg.Database == "" {
		cfg.Database = envVars.PGDATABASE
	}
	if cfg.Database == "" {
		cfg.Database = pc.Database
	}

	if cfg.AppName == "" {
		cfg.AppName = pgload.DefaultAppName
	}

	if err := applyCloudAuth(cfg, cloudFlags, envVars, pc); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseAuthMethod maps the auth_method names accepted in pgload.yaml.
func ParseAuthMethod(s string) (pgload.AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return pgload.AuthMethodStandard, nil
	case "aws", "aws-iam":
		return pgload.AuthMethodAWSIAM, nil
	case "google", "google-iam", "gcp":
		return pgload.AuthMethodGoogleIAM, nil
	case "azure", "azure-entra", "entra":
		return pgload.AuthMethodAzureEntraID, nil
	}
	return pgload.AuthMethodStandard, fmt.Errorf("unknown auth_method %q: %w", s, pgload.ErrInvalidConfig)
}

// applyCloudAuth selects the authentication method and attaches provider settings.
// Flags win over environment variables, which win over pgload.yaml.
func applyCloudAuth(cfg *pgload.ConnectionConfig, flags *CloudAuthFlags, env *EnvVars, pc config.ConnectionConfig) error {
	method := pgload.AuthMethodStandard

	selected := flags.selected()
	switch len(selected) {
	case 0:
		m, err := ParseAuthMethod(pc.AuthMethod)
		if err != nil {
			return err
		}
		method = m
	case 1:
		method = selected[0]
	default:
		return fmt.Errorf("only one of --aws, --google or --azure may be used: %w", pgload.ErrInvalidConfig)
	}

	cfg.AuthMethod = method

	switch method {
	case pgload.AuthMethodAWSIAM:
		cfg.AWSRegion = firstNonEmpty(flags.AWSRegion, env.AWS_REGION, pc.AWSRegion)
		if cfg.AWSRegion == "" {
			return fmt.Errorf("AWS IAM authentication requires a region (--aws-region or $AWS_REGION): %w", pgload.ErrInvalidConfig)
		}
		if cfg.Username == "" {
			return fmt.Errorf("AWS IAM authentication requires a database user: %w", pgload.ErrInvalidConfig)
		}
	case pgload.AuthMethodGoogleIAM:
		cfg.GoogleInstance = firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance)
		if cfg.GoogleInstance == "" {
			return fmt.Errorf("Google Cloud SQL authentication requires --google-instance (project:region:instance): %w", pgload.ErrInvalidConfig)
		}
	case pgload.AuthMethodAzureEntraID:
		cfg.AzureTenantID = firstNonEmpty(flags.AzureTenantID, env.AZURE_TENANT_ID, pc.AzureTenantID)
		cfg.AzureClientID = firstNonEmpty(flags.AzureClientID, env.AZURE_CLIENT_ID, pc.AzureClientID)
		// Client secret only comes from the environment.
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	}

	return nil
}

func resolveFromConnectionString(connStr string, envVars *EnvVars) (*pgload.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %v: %w", err, pgload.ErrInvalidConfig)
	}

	if !strings.Contains(connStr, "sslmode") && envVars.PGSSLMODE != "" {
		cfg.SSLMode = envVars.PGSSLMODE
	}
	if cfg.Password == "" {
		cfg.Password = envVars.PGPASSWORD
	}

	return cfg, nil
}

// resolveFromGranularParams builds a config where each parameter follows
// flag > environment variable > pgload.yaml > default.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	pc config.ConnectionConfig,
) (*pgload.ConnectionConfig, error) {
	cfg := &pgload.ConnectionConfig{
		AuthMethod:       pgload.AuthMethodStandard,
		AdditionalParams: make(map[string]string),
	}

	cfg.Host = firstNonEmpty(flags.Host, envVars.PGHOST, pc.Host, "localhost")

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "":
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PGPORT value '%s': must be an integer: %w", envVars.PGPORT, pgload.ErrInvalidConfig)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = 5432
	}

	cfg.Username = firstNonEmpty(flags.Username, envVars.PGUSER, pc.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Password = envVars.PGPASSWORD
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, pc.SSLMode, "prefer")

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
