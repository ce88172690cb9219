package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/pgload/pkg/pgload"
)

type mockConnector struct {
	conn  *mockConn
	err   error
	calls int
}

func (m *mockConnector) Connect(_ context.Context) (pgload.DBConnection, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.conn, nil
}

func (m *mockConnector) factory() ConnectorFactory {
	return func(*pgload.ConnectionConfig) (pgload.Connector, error) {
		return m, nil
	}
}

// mockConn records every statement and the body streamed to each COPY.
type mockConn struct {
	statements []string
	copied     map[string]string

	// copyErrs fails COPY into the named table.
	copyErrs map[string]error
	// execErrs fails the given statement every time it is executed.
	execErrs map[string]error

	closed bool
}

func newMockConn() *mockConn {
	return &mockConn{
		copied:   make(map[string]string),
		copyErrs: make(map[string]error),
		execErrs: make(map[string]error),
	}
}

func (m *mockConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	m.statements = append(m.statements, sql)
	if err, ok := m.execErrs[sql]; ok {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag(strings.Fields(sql)[0]), nil
}

func (m *mockConn) CopyFrom(_ context.Context, r io.Reader, sql string) (pgconn.CommandTag, error) {
	m.statements = append(m.statements, sql)

	body, err := io.ReadAll(r)
	if err != nil {
		return pgconn.CommandTag{}, err
	}

	for table, copyErr := range m.copyErrs {
		if strings.Contains(sql, `"`+table+`"`) {
			return pgconn.CommandTag{}, copyErr
		}
	}

	m.copied[sql] = string(body)
	rows := strings.Count(string(body), "\n")
	if len(body) > 0 && !strings.HasSuffix(string(body), "\n") {
		rows++
	}
	return pgconn.NewCommandTag(fmt.Sprintf("COPY %d", rows)), nil
}

func (m *mockConn) Close(_ context.Context) error {
	m.closed = true
	return nil
}

// count returns how many times sql was executed.
func (m *mockConn) count(sql string) int {
	n := 0
	for _, s := range m.statements {
		if s == sql {
			n++
		}
	}
	return n
}

type recordingReporter struct {
	lookups  []string
	done     []pgload.FileResult
	complete *pgload.Report
}

func (r *recordingReporter) FileLookup(_ int, _ pgload.Mapping, path string) {
	r.lookups = append(r.lookups, path)
}

func (r *recordingReporter) FileDone(_ int, result pgload.FileResult) {
	r.done = append(r.done, result)
}

func (r *recordingReporter) RunComplete(report *pgload.Report) {
	r.complete = report
}
