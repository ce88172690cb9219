package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/vvka-141/pgload/internal/db"
	"github.com/vvka-141/pgload/internal/files/csvstream"
	"github.com/vvka-141/pgload/internal/files/filesystem"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// ConnectorFactory builds a Connector for the resolved connection parameters.
type ConnectorFactory func(*pgload.ConnectionConfig) (pgload.Connector, error)

// LoadService implements the pgload.Loader interface.
// Thread-Safety: NOT safe for concurrent Load() calls on the same instance.
type LoadService struct {
	connectorFactory ConnectorFactory
	fs               filesystem.FileSystemProvider
	logger           pgload.Logger
	reporter         pgload.Reporter
}

// NewLoadService creates a LoadService with all dependencies injected.
// Nil dependencies are programmer errors and panic at construction time.
func NewLoadService(
	connectorFactory ConnectorFactory,
	fs filesystem.FileSystemProvider,
	logger pgload.Logger,
	reporter pgload.Reporter,
) *LoadService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}

	return &LoadService{
		connectorFactory: connectorFactory,
		fs:               fs,
		logger:           logger,
		reporter:         reporter,
	}
}

// Load opens one connection, loads every mapped file in order and finishes the
// transaction according to cfg.TxMode. Missing files and failed files are recorded
// in the report and never stop the run.
//
// The connection is closed on every path. The report is returned whenever the
// configuration was valid, including alongside a fatal error.
func (s *LoadService) Load(ctx context.Context, cfg pgload.LoadConfig) (*pgload.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := pgload.ParseTxMode(string(cfg.TxMode))
	if err != nil {
		return nil, err
	}

	report := pgload.NewReport(cfg.Directory, mode)
	s.logger.Verbose("Run %s: %d mapping(s) from %s, transaction mode %s",
		report.RunID, len(cfg.Mappings), cfg.Directory, mode)

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	connector, err := s.connectorFactory(cfg.Connection)
	if err != nil {
		return report, fmt.Errorf("failed to create connector: %w", err)
	}

	conn, err := connector.Connect(ctx)
	if err != nil {
		return report, err
	}
	defer s.closeConnection(conn)

	err = s.run(ctx, conn, cfg, mode, report)

	report.FinishedAt = time.Now()
	s.reporter.RunComplete(report)
	return report, err
}

func (s *LoadService) closeConnection(conn pgload.DBConnection) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	if err := conn.Close(ctx); err != nil {
		s.logger.Error("Failed to close connection: %v", err)
	}
}

func (s *LoadService) run(ctx context.Context, conn pgload.DBConnection, cfg pgload.LoadConfig, mode pgload.TxMode, report *pgload.Report) error {
	tx := newTxStrategy(mode, s.logger)

	if err := tx.begin(ctx, conn); err != nil {
		return err
	}

	for i, m := range cfg.Mappings {
		if err := ctx.Err(); err != nil {
			tx.abort(conn, report)
			return fmt.Errorf("load interrupted before %s: %w", m.File, err)
		}

		result, fatal := s.loadFile(ctx, conn, tx, cfg.Directory, i, m)
		report.Results = append(report.Results, result)
		s.reporter.FileDone(i, result)

		if fatal != nil {
			tx.abort(conn, report)
			return fatal
		}
		if err := ctx.Err(); err != nil {
			tx.abort(conn, report)
			return fmt.Errorf("load interrupted during %s: %w", m.File, err)
		}
	}

	return tx.finish(ctx, conn, report)
}

// loadFile handles one mapping entry. The returned error is fatal to the run;
// per-file failures are carried in the result.
func (s *LoadService) loadFile(
	ctx context.Context,
	conn pgload.DBConnection,
	tx txStrategy,
	directory string,
	index int,
	m pgload.Mapping,
) (pgload.FileResult, error) {
	path := filepath.Join(directory, m.File)
	result := pgload.FileResult{Mapping: m, Path: path}
	start := time.Now()

	s.reporter.FileLookup(index, m, path)

	exists, err := filesystem.Exists(s.fs, path)
	if err != nil {
		result.Status = pgload.StatusLoadError
		result.Err = err
		result.Duration = time.Since(start)
		return result, nil
	}
	if !exists {
		result.Status = pgload.StatusFileMissing
		result.Duration = time.Since(start)
		return result, nil
	}

	rows, fileErr, fatal := s.copyFile(ctx, conn, tx, path, m.Table)
	result.Duration = time.Since(start)
	if fileErr != nil {
		result.Status = pgload.StatusLoadError
		result.Err = fileErr
		return result, fatal
	}

	result.Status = pgload.StatusLoaded
	result.Rows = rows
	return result, fatal
}

// copyFile streams path into table. Failures to open or parse the file are file
// errors and never touch the transaction.
func (s *LoadService) copyFile(
	ctx context.Context,
	conn pgload.DBConnection,
	tx txStrategy,
	path, table string,
) (rows int64, fileErr, fatal error) {
	stmt, err := db.CopyStatement(table)
	if err != nil {
		return 0, err, nil
	}

	f, err := s.fs.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err), nil
	}
	defer f.Close()

	stream, err := csvstream.StripHeader(f)
	if err != nil {
		return 0, err, nil
	}
	s.logger.Verbose("Header of %s: %d column(s)", filepath.Base(path), len(stream.Columns()))

	if err := tx.beforeCopy(ctx, conn); err != nil {
		return 0, err, err
	}

	s.logger.Verbose("Executing: %s", stmt)
	tag, copyErr := conn.CopyFrom(ctx, stream, stmt)
	if copyErr == nil {
		s.logger.Verbose("Streamed %d byte(s) from %s", stream.BytesRead(), filepath.Base(path))
	}

	fileErr, fatal = tx.afterCopy(ctx, conn, copyErr)
	if fileErr != nil {
		return 0, fileErr, fatal
	}
	return tag.RowsAffected(), nil, fatal
}

var _ pgload.Loader = (*LoadService)(nil)
