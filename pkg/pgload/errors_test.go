package pgload_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, pgload.ExitSuccess},
		{"general error", errors.New("something went wrong"), pgload.ExitGeneralError},
		{"invalid config", fmt.Errorf("bad mapping: %w", pgload.ErrInvalidConfig), pgload.ExitConfigError},
		{"unsupported auth", pgload.ErrUnsupportedAuthMethod, pgload.ExitConfigError},
		{"connection failed", fmt.Errorf("dial: %w", pgload.ErrConnectionFailed), pgload.ExitConnectionError},
		{"connection refused text", errors.New("dial tcp: connection refused"), pgload.ExitConnectionError},
		{"load failed", fmt.Errorf("2 of 10 file(s): %w", pgload.ErrLoadFailed), pgload.ExitLoadFailed},
		{"files missing", fmt.Errorf("9 of 10 file(s): %w", pgload.ErrFilesMissing), pgload.ExitFilesMissing},
		{"missing argument", errors.New("missing required argument: <directory>"), pgload.ExitUsageError},
		{"unknown flag", errors.New("unknown flag: --foo"), pgload.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), pgload.ExitUsageError},
		{"accepts args", errors.New("accepts at most 1 arg(s), received 2"), pgload.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"-p, --port\" flag"), pgload.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pgload.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
