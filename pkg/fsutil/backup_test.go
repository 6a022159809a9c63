package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/hunkfmt/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "src/a.c.hunkfmt.bak", fsutil.BackupPath("src/a.c", fsutil.BackupModeSidecar))
	assert.Empty(t, fsutil.BackupPath("src/a.c", fsutil.BackupModeNone))
	assert.Equal(t, "src/a.c.hunkfmt.bak", fsutil.BackupPath("src/a.c", fsutil.BackupMode("other")))
}

func TestDefaultBackupConfig(t *testing.T) {
	t.Parallel()

	cfg := fsutil.DefaultBackupConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, cfg.Mode)
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("writes sidecar copy", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.cpp")
		writeFile(t, path, "original\n")

		created, err := fsutil.CreateBackup(context.Background(), path, enabled)
		require.NoError(t, err)
		assert.True(t, created)

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "original\n", string(got))
	})

	t.Run("keeps existing backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.cpp")
		writeFile(t, path, "second\n")
		writeFile(t, path+fsutil.BackupSuffix, "first\n")

		created, err := fsutil.CreateBackup(context.Background(), path, enabled)
		require.NoError(t, err)
		assert.False(t, created)

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "first\n", string(got))
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.cpp")
		writeFile(t, path, "x\n")

		created, err := fsutil.CreateBackup(context.Background(), path, fsutil.DefaultBackupConfig())
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("none mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.cpp")
		writeFile(t, path, "x\n")

		created, err := fsutil.CreateBackup(context.Background(), path, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeNone})
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		created, err := fsutil.CreateBackup(context.Background(), filepath.Join(t.TempDir(), "gone.c"), enabled)
		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.h")
	writeFile(t, path, "original\n")

	_, err := fsutil.CreateBackup(context.Background(), path, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar})
	require.NoError(t, err)
	writeFile(t, path, "clobbered\n")

	restored, err := fsutil.RestoreBackup(context.Background(), path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.True(t, restored)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(got))
}

func TestRestoreBackup_NoBackup(t *testing.T) {
	t.Parallel()

	restored, err := fsutil.RestoreBackup(context.Background(), filepath.Join(t.TempDir(), "a.h"), fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.False(t, restored)
}
