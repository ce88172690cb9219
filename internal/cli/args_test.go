package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestOptionalDirectory(t *testing.T) {
	cmd := &cobra.Command{Use: "load [directory]"}

	t.Run("no args", func(t *testing.T) {
		assert.NoError(t, OptionalDirectory(cmd, nil))
	})

	t.Run("one arg", func(t *testing.T) {
		assert.NoError(t, OptionalDirectory(cmd, []string{"./exports"}))
	})

	t.Run("too many args is a usage error", func(t *testing.T) {
		err := OptionalDirectory(cmd, []string{"a", "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "received 2")
		assert.Contains(t, err.Error(), "Example:")
		assert.Equal(t, pgload.ExitUsageError, pgload.ExitCodeForError(err))
	})
}
