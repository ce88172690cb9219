package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMode_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name           string
		nonInteractive string
		ci             string
		noColor        string
	}{
		{name: "PGLOAD_NON_INTERACTIVE", nonInteractive: "1"},
		{name: "CI", ci: "true"},
		{name: "NO_COLOR", noColor: "1"},
		{name: "PGLOAD_NON_INTERACTIVE other value falls through to terminal check", nonInteractive: "true"},
		{name: "nothing set, no terminal in tests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PGLOAD_NON_INTERACTIVE", tt.nonInteractive)
			t.Setenv("CI", tt.ci)
			t.Setenv("NO_COLOR", tt.noColor)

			assert.Equal(t, ModeNonInteractive, DetectMode())
			assert.False(t, IsInteractive())
		})
	}
}

func TestNonInteractiveEnv(t *testing.T) {
	t.Setenv("PGLOAD_NON_INTERACTIVE", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")
	assert.False(t, nonInteractiveEnv())

	t.Setenv("CI", "1")
	assert.True(t, nonInteractiveEnv())
}

func TestColorEnabled_FalseWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled())
}
