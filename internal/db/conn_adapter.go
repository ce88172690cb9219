package db

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// ConnAdapter adapts *pgx.Conn to implement the pgload.DBConnection interface.
// Extra closers (such as a Cloud SQL dialer) are released after the connection.
//
// Thread-Safety: NOT safe for concurrent use (pgx.Conn is not).
type ConnAdapter struct {
	conn    *pgx.Conn
	closers []io.Closer
}

// NewConnAdapter creates a new ConnAdapter wrapping the given connection.
func NewConnAdapter(conn *pgx.Conn, closers ...io.Closer) *ConnAdapter {
	return &ConnAdapter{conn: conn, closers: closers}
}

// Exec executes a statement without returning any rows.
func (a *ConnAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return a.conn.Exec(ctx, sql, args...)
}

// CopyFrom runs a COPY ... FROM STDIN statement fed from r.
func (a *ConnAdapter) CopyFrom(ctx context.Context, r io.Reader, sql string) (pgconn.CommandTag, error) {
	return a.conn.PgConn().CopyFrom(ctx, r, sql)
}

// Close closes the connection and then any attached closers.
func (a *ConnAdapter) Close(ctx context.Context) error {
	errs := []error{a.conn.Close(ctx)}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

var _ pgload.DBConnection = (*ConnAdapter)(nil)
