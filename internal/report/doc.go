// Package report renders load progress and the final run summary as
// human-readable console lines.
package report
