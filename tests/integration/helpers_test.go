// Package integration exercises full workspace scenarios through the
// store and the bridge, the way the host shell drives them.
package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MehmetDevlp/notenew/internal/sqlite"
	"github.com/MehmetDevlp/notenew/pkg/types"
)

// newStore opens a store on an isolated temp directory. Each scenario
// gets its own workspace.
func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(types.Config{DataDir: t.TempDir(), SkipBackup: true}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
