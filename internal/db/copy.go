package db

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// CopyStatement builds the COPY ... FROM STDIN statement for table.
// The table name is quoted part by part, so "staging.dimdate" becomes "staging"."dimdate".
// Quoted names are case-sensitive.
//
// The statement has no HEADER option; callers strip the header line before streaming.
func CopyStatement(table string) (string, error) {
	parts, err := pgload.SplitTableName(table)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("COPY %s FROM STDIN WITH (FORMAT csv, DELIMITER '%c')",
		pgx.Identifier(parts).Sanitize(), pgload.CSVDelimiter), nil
}
