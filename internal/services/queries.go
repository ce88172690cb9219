package services

// Transaction control statements issued by the loader.
// COPY statements are built per table by db.CopyStatement.
const (
	stmtBegin    = "BEGIN"
	stmtCommit   = "COMMIT"
	stmtRollback = "ROLLBACK"

	// One savepoint name is reused for every file; it is released or rolled
	// back before the next file starts.
	stmtSavepoint           = "SAVEPOINT pgload_file"
	stmtRollbackToSavepoint = "ROLLBACK TO SAVEPOINT pgload_file"
	stmtReleaseSavepoint    = "RELEASE SAVEPOINT pgload_file"
)
