package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = Init(Options{}) })

	require.NoError(t, Init(Options{Enabled: true, LogDir: dir}))
	Info("document loaded", "source", "state.yaml", "rows", 12)

	name := filepath.Join(dir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"document loaded"`))
	assert.True(t, strings.Contains(string(data), `"rows":12`))
}

func TestInit_Disabled(t *testing.T) {
	require.NoError(t, Init(Options{}))
	assert.NotNil(t, L)
	assert.False(t, L.Enabled(context.Background(), slog.LevelDebug))
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	old := filepath.Join(dir, "vartree-2026-01-01.log")
	recent := filepath.Join(dir, "vartree-2026-03-19.log")
	other := filepath.Join(dir, "notes.txt")
	for _, f := range []string{old, recent, other} {
		require.NoError(t, os.WriteFile(f, nil, 0644))
	}

	cleanOldLogs(dir, now)

	assert.NoFileExists(t, old)
	assert.FileExists(t, recent)
	assert.FileExists(t, other)
}
