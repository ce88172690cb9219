package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// cleanupTimeout bounds ROLLBACK and Close issued after the run context is done.
const cleanupTimeout = 5 * time.Second

// txStrategy decides where transaction boundaries fall during a run.
//
// afterCopy receives the COPY outcome and returns the error to record for the
// file (nil if its rows are kept) and a fatal error if the transaction can no
// longer be used.
type txStrategy interface {
	begin(ctx context.Context, conn pgload.DBConnection) error
	beforeCopy(ctx context.Context, conn pgload.DBConnection) error
	afterCopy(ctx context.Context, conn pgload.DBConnection, copyErr error) (fileErr, fatal error)
	finish(ctx context.Context, conn pgload.DBConnection, report *pgload.Report) error
	abort(conn pgload.DBConnection, report *pgload.Report)
}

func newTxStrategy(mode pgload.TxMode, logger pgload.Logger) txStrategy {
	switch mode {
	case pgload.TxModePerFile:
		return &perFileTx{logger: logger}
	case pgload.TxModeAtomic:
		return &runTx{logger: logger, atomic: true}
	default:
		return &runTx{logger: logger}
	}
}

func exec(ctx context.Context, conn pgload.DBConnection, logger pgload.Logger, sql string) error {
	logger.Verbose("Executing: %s", sql)
	_, err := conn.Exec(ctx, sql)
	return err
}

func rollback(conn pgload.DBConnection, logger pgload.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	if err := exec(ctx, conn, logger, stmtRollback); err != nil {
		logger.Verbose("Rollback failed: %v", err)
	}
}

// markRolledBack turns every Loaded result into RolledBack.
func markRolledBack(report *pgload.Report) {
	for i := range report.Results {
		if report.Results[i].Status == pgload.StatusLoaded {
			report.Results[i].Status = pgload.StatusRolledBack
		}
	}
}

// runTx wraps the whole run in one transaction, with a savepoint per file.
// In atomic mode any failed file rolls back the entire run.
type runTx struct {
	logger pgload.Logger
	atomic bool
}

func (t *runTx) begin(ctx context.Context, conn pgload.DBConnection) error {
	if err := exec(ctx, conn, t.logger, stmtBegin); err != nil {
		return fmt.Errorf("begin transaction: %w: %w", pgload.ErrTransactionFailed, err)
	}
	return nil
}

func (t *runTx) beforeCopy(ctx context.Context, conn pgload.DBConnection) error {
	if err := exec(ctx, conn, t.logger, stmtSavepoint); err != nil {
		return fmt.Errorf("create savepoint: %w: %w", pgload.ErrTransactionFailed, err)
	}
	return nil
}

func (t *runTx) afterCopy(ctx context.Context, conn pgload.DBConnection, copyErr error) (error, error) {
	if copyErr != nil {
		if err := exec(ctx, conn, t.logger, stmtRollbackToSavepoint); err != nil {
			return copyErr, fmt.Errorf("roll back to savepoint: %w: %w", pgload.ErrTransactionFailed, err)
		}
		return copyErr, nil
	}
	if err := exec(ctx, conn, t.logger, stmtReleaseSavepoint); err != nil {
		return nil, fmt.Errorf("release savepoint: %w: %w", pgload.ErrTransactionFailed, err)
	}
	return nil, nil
}

func (t *runTx) finish(ctx context.Context, conn pgload.DBConnection, report *pgload.Report) error {
	if t.atomic && report.Failed() > 0 {
		t.logger.Info("%d file(s) failed; rolling back the whole run", report.Failed())
		if err := exec(ctx, conn, t.logger, stmtRollback); err != nil {
			markRolledBack(report)
			return fmt.Errorf("rollback: %w: %w", pgload.ErrTransactionFailed, err)
		}
		markRolledBack(report)
		return nil
	}

	if err := exec(ctx, conn, t.logger, stmtCommit); err != nil {
		markRolledBack(report)
		return fmt.Errorf("commit: %w: %w", pgload.ErrTransactionFailed, err)
	}
	report.Committed = true
	return nil
}

func (t *runTx) abort(conn pgload.DBConnection, report *pgload.Report) {
	rollback(conn, t.logger)
	markRolledBack(report)
}

// perFileTx commits each file on its own. Missing files open no transaction.
type perFileTx struct {
	logger pgload.Logger
	inTx   bool
}

func (t *perFileTx) begin(context.Context, pgload.DBConnection) error {
	return nil
}

func (t *perFileTx) beforeCopy(ctx context.Context, conn pgload.DBConnection) error {
	if err := exec(ctx, conn, t.logger, stmtBegin); err != nil {
		return fmt.Errorf("begin transaction: %w: %w", pgload.ErrTransactionFailed, err)
	}
	t.inTx = true
	return nil
}

func (t *perFileTx) afterCopy(ctx context.Context, conn pgload.DBConnection, copyErr error) (error, error) {
	t.inTx = false
	if copyErr != nil {
		if err := exec(ctx, conn, t.logger, stmtRollback); err != nil {
			return copyErr, fmt.Errorf("rollback: %w: %w", pgload.ErrTransactionFailed, err)
		}
		return copyErr, nil
	}
	if err := exec(ctx, conn, t.logger, stmtCommit); err != nil {
		return fmt.Errorf("commit: %w", err), nil
	}
	return nil, nil
}

func (t *perFileTx) finish(_ context.Context, _ pgload.DBConnection, report *pgload.Report) error {
	report.Committed = true
	return nil
}

func (t *perFileTx) abort(conn pgload.DBConnection, _ *pgload.Report) {
	if t.inTx {
		rollback(conn, t.logger)
		t.inTx = false
	}
}
