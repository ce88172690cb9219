package pgload

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5/pgconn"
)

// Connector is a unified interface for establishing database connections.
// Different implementations handle various authentication methods
// (standard credentials, cloud IAM tokens, Cloud SQL dialers).
type Connector interface {
	// Connect establishes a single connection to the database.
	// The returned connection must be closed by the caller when done.
	Connect(ctx context.Context) (DBConnection, error)
}

// DBConnection abstracts the single connection a load run works on.
// It decouples the loader from pgx types beyond the command tag.
//
// Thread-Safety: NOT safe for concurrent use, like the underlying connection.
type DBConnection interface {
	// Exec executes a statement without returning rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// CopyFrom streams r to the server as the input of a COPY ... FROM STDIN statement.
	CopyFrom(ctx context.Context, r io.Reader, sql string) (pgconn.CommandTag, error)

	// Close terminates the connection. Any open transaction is discarded by the server.
	Close(ctx context.Context) error
}

// Loader runs a load according to a LoadConfig.
type Loader interface {
	// Load processes every mapping in order and returns the per-file report.
	// A non-nil error means the run itself failed (configuration, connection or
	// transaction control); the report is still returned with whatever was recorded.
	Load(ctx context.Context, cfg LoadConfig) (*Report, error)
}
