package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// LookupLine is printed before a file is checked.
func LookupLine(path string) string {
	return "Looking for file: " + path
}

// ResultLine describes the outcome of one file. Rolled back results are
// described by RolledBackLine once the transaction has finished.
func ResultLine(r pgload.FileResult) string {
	switch r.Status {
	case pgload.StatusFileMissing:
		return "File not found: " + r.Path
	case pgload.StatusLoaded:
		return fmt.Sprintf("Loaded %s into %s (%s)", r.Mapping.File, r.Mapping.Table, formatRows(r.Rows))
	case pgload.StatusRolledBack:
		return RolledBackLine(r)
	default:
		msg := "unknown error"
		if r.Err != nil {
			msg = Truncate(oneLine(r.Err.Error()), pgload.MaxErrorPreviewLength)
		}
		return fmt.Sprintf("Error loading %s -> %s: %s", r.Mapping.File, r.Mapping.Table, msg)
	}
}

func RolledBackLine(r pgload.FileResult) string {
	return fmt.Sprintf("Rolled back %s in %s", r.Mapping.File, r.Mapping.Table)
}

// SummaryLines renders the closing block of a run.
func SummaryLines(rep *pgload.Report) []string {
	lines := []string{
		"All done.",
		fmt.Sprintf("  Loaded:   %d file(s), %s", rep.Loaded(), formatRows(rep.Rows())),
		fmt.Sprintf("  Missing:  %d file(s)", rep.Missing()),
		fmt.Sprintf("  Failed:   %d file(s)", rep.Failed()),
		fmt.Sprintf("  Mode:     %s", rep.TxMode),
		fmt.Sprintf("  Duration: %s", rep.Duration().Round(time.Millisecond)),
		fmt.Sprintf("  Run ID:   %s", rep.RunID),
	}
	if !rep.Committed && rep.TxMode != pgload.TxModePerFile {
		lines = append(lines, "  Nothing was committed.")
	}
	return lines
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatRows(n int64) string {
	return fmt.Sprintf("%d rows", n)
}
