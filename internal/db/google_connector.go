package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/pgload/internal/logging"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// GoogleCloudSQLConnector implements the Connector interface for Google Cloud SQL
// using IAM database authentication via the Cloud SQL Go Connector.
// The dialer is owned by the returned connection and closed with it.
type GoogleCloudSQLConnector struct {
	config   *pgload.ConnectionConfig
	instance string
	logger   pgload.Logger
}

// NewGoogleCloudSQLConnector creates a connector for Google Cloud SQL IAM authentication.
// instance is the instance connection name in format: project:region:instance
func NewGoogleCloudSQLConnector(config *pgload.ConnectionConfig, instance string, logger pgload.Logger) *GoogleCloudSQLConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &GoogleCloudSQLConnector{
		config:   config,
		instance: instance,
		logger:   logger,
	}
}

// Connect dials the instance through the Cloud SQL connector, which handles
// authentication and TLS.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (pgload.DBConnection, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud SQL dialer: %w: %w", pgload.ErrConnectionFailed, err)
	}

	appName := c.config.AppName
	if appName == "" {
		appName = pgload.DefaultAppName
	}
	dsn := fmt.Sprintf(
		"user=%s dbname=%s sslmode=disable application_name=%s",
		c.config.Username,
		c.config.Database,
		appName,
	)

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		_ = dialer.Close()
		return nil, fmt.Errorf("failed to parse connection config: %v: %w", err, pgload.ErrInvalidConfig)
	}

	connConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialer.Dial(ctx, c.instance)
	}

	c.logger.Verbose("Connecting to Cloud SQL instance %s as %s", c.instance, c.config.Username)

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		_ = dialer.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w: %w", c.instance, pgload.ErrConnectionFailed, err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(context.Background())
		_ = dialer.Close()
		return nil, fmt.Errorf("failed to ping %s: %w: %w", c.instance, pgload.ErrConnectionFailed, err)
	}

	return NewConnAdapter(conn, dialer), nil
}
