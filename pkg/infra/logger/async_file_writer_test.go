package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncFileWriter_WritesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := NewAsyncFileWriter(path, 1024)
	require.NoError(t, err)

	n, err := w.Write([]byte("first line\n"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	_, _ = w.Write([]byte("second line\n"))

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n", string(data))
	assert.Zero(t, w.Dropped())
}

func TestConsoleHook_UsesLoggerFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(NewConsoleHook(&buf))

	logger.WithField("service", "moderator").Info("screened")

	assert.Contains(t, buf.String(), `"service":"moderator"`)
	assert.Contains(t, buf.String(), `"msg":"screened"`)
}
