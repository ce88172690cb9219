package pgload

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LoadStatus is the outcome of one mapping entry.
type LoadStatus int

const (
	// StatusLoaded means COPY succeeded and the rows are (or will be) committed.
	StatusLoaded LoadStatus = iota
	// StatusFileMissing means the source file did not exist; the table was not touched.
	StatusFileMissing
	// StatusLoadError means COPY, or opening the file, failed; the file's rows were discarded.
	StatusLoadError
	// StatusRolledBack means COPY succeeded but the enclosing transaction was rolled back.
	StatusRolledBack
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFileMissing:
		return "missing"
	case StatusLoadError:
		return "error"
	case StatusRolledBack:
		return "rolled back"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// FileResult records what happened to a single mapping entry.
type FileResult struct {
	Mapping  Mapping
	Path     string
	Status   LoadStatus
	Rows     int64
	Err      error
	Duration time.Duration
}

// Report is the structured outcome of a load run. Results are in mapping order.
type Report struct {
	RunID      uuid.UUID
	Directory  string
	TxMode     TxMode
	Results    []FileResult
	Committed  bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewReport starts a report for a run over directory.
func NewReport(directory string, mode TxMode) *Report {
	return &Report{
		RunID:     uuid.New(),
		Directory: directory,
		TxMode:    mode,
		StartedAt: time.Now(),
	}
}

func (r *Report) count(status LoadStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Loaded returns the number of files whose rows were kept.
func (r *Report) Loaded() int { return r.count(StatusLoaded) }

// Missing returns the number of files that were not found.
func (r *Report) Missing() int { return r.count(StatusFileMissing) }

// Failed returns the number of files that failed or were rolled back.
func (r *Report) Failed() int { return r.count(StatusLoadError) + r.count(StatusRolledBack) }

// Rows returns the total number of rows kept across all loaded files.
func (r *Report) Rows() int64 {
	var total int64
	for _, res := range r.Results {
		if res.Status == StatusLoaded {
			total += res.Rows
		}
	}
	return total
}

// Duration returns the wall-clock duration of the run.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Outcome converts the report into an error according to the caller's policy.
// With both flags false it always returns nil, which is the loader's default behaviour:
// per-file problems are reported but never fail the run.
func (r *Report) Outcome(failOnError, failOnMissing bool) error {
	if failOnError && r.Failed() > 0 {
		return fmt.Errorf("%d of %d file(s): %w", r.Failed(), len(r.Results), ErrLoadFailed)
	}
	if failOnMissing && r.Missing() > 0 {
		return fmt.Errorf("%d of %d file(s): %w", r.Missing(), len(r.Results), ErrFilesMissing)
	}
	return nil
}
