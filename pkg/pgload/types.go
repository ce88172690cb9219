package pgload

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TxMode selects how COPY operations are grouped into transactions.
type TxMode string

const (
	// TxModeSingle runs every file in one transaction committed at the end of the run.
	// Each file is isolated by a savepoint, so a failed file is rolled back alone.
	TxModeSingle TxMode = "single"

	// TxModePerFile commits each file in its own transaction.
	TxModePerFile TxMode = "per-file"

	// TxModeAtomic runs every file in one transaction and rolls the whole run back
	// if any file fails to load.
	TxModeAtomic TxMode = "atomic"
)

// TxModes lists the accepted transaction modes in display order.
func TxModes() []TxMode {
	return []TxMode{TxModeSingle, TxModePerFile, TxModeAtomic}
}

// ParseTxMode parses a transaction mode name. An empty string yields TxModeSingle.
func ParseTxMode(s string) (TxMode, error) {
	switch TxMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", TxModeSingle:
		return TxModeSingle, nil
	case TxModePerFile, "perfile", "file":
		return TxModePerFile, nil
	case TxModeAtomic:
		return TxModeAtomic, nil
	}
	return "", fmt.Errorf("unknown transaction mode %q (expected single, per-file or atomic): %w", s, ErrInvalidConfig)
}

// LoadConfig contains all parameters needed for a load run.
type LoadConfig struct {
	// Directory holds the CSV files named by Mappings.
	Directory string

	// Mappings is the ordered file-to-table list.
	Mappings []Mapping

	// Connection identifies the target database.
	Connection *ConnectionConfig

	// TxMode selects the transaction strategy.
	TxMode TxMode

	// Timeout bounds the whole run. Zero means no timeout beyond the caller's context.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Directory) == "" {
		errs = append(errs, fmt.Errorf("Directory is required: %w", ErrInvalidConfig))
	}

	if c.Connection == nil {
		errs = append(errs, fmt.Errorf("Connection is required: %w", ErrInvalidConfig))
	} else if c.Connection.Database == "" {
		errs = append(errs, fmt.Errorf("database name is required: %w", ErrInvalidConfig))
	}

	if err := ValidateMappings(c.Mappings); err != nil {
		errs = append(errs, err)
	}

	if _, err := ParseTxMode(string(c.TxMode)); err != nil {
		errs = append(errs, err)
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// AWS RDS IAM authentication (AuthMethodAWSIAM)
	AWSRegion string

	// Google Cloud SQL IAM authentication (AuthMethodGoogleIAM), "project:region:instance"
	GoogleInstance string

	// Azure Entra ID authentication (AuthMethodAzureEntraID).
	// If all three are provided, Service Principal authentication is used,
	// otherwise the DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password or .pgpass
	AuthMethodAWSIAM                         // AWS RDS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
