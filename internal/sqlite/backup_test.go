package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFile(t *testing.T) {
	t.Run("missing source is not an error", func(t *testing.T) {
		got, err := backupFile(filepath.Join(t.TempDir(), "absent.db"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("copies content to a timestamped sibling", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "workspace.db")
		require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

		got, err := backupFile(src)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, filepath.Join(dir, "workspace-backup-")))
		assert.True(t, strings.HasSuffix(got, ".db"))

		data, err := os.ReadFile(got)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))

		// The original is untouched.
		data, err = os.ReadFile(src)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("backup name contains no colons", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "workspace.db")
		require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

		got, err := backupFile(src)
		require.NoError(t, err)
		assert.NotContains(t, filepath.Base(got), ":")
	})
}
