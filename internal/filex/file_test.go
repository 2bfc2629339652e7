package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "var", "log", "lockstake.log")

	require.NoError(t, EnsureParentDir(file))

	fi, err := os.Stat(filepath.Join(tmp, "var", "log"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data", "ledger.db")

	require.NoError(t, EnsureParentDir(file))
	require.NoError(t, EnsureParentDir(file))
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("ledger.db"))
}

func TestEnsureParentDir_FileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	require.Error(t, EnsureParentDir(filepath.Join(blocker, "x.log")))
}
