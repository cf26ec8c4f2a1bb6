package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Levels(t *testing.T) {
	var buf bytes.Buffer

	prod := Setup("prod", &buf)
	assert.False(t, prod.Enabled(context.Background(), slog.LevelDebug))
	prod.Info("hello", slog.String("k", "v"))
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	dev := Setup("dev", &buf)
	assert.True(t, dev.Enabled(context.Background(), slog.LevelDebug))
	dev.Info("hello", slog.String("k", "v"))
	assert.Contains(t, buf.String(), "msg=hello k=v")

	assert.True(t, Setup("staging", &buf).Enabled(context.Background(), slog.LevelDebug))
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.log")

	log, closeFn, err := ToFile("dev", path)
	require.NoError(t, err)
	log.Info("written")
	require.NoError(t, closeFn())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "written")
}

func TestToFile_EmptyDiscards(t *testing.T) {
	log, closeFn, err := ToFile("dev", "")
	require.NoError(t, err)
	log.Info("dropped")
	assert.NoError(t, closeFn())
}
