package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncFileWriter_FlushesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	w, err := NewAsyncFileWriter(path, 1024)
	require.NoError(t, err)

	n, err := w.Write([]byte("first line\n"))
	require.NoError(t, err)
	assert.Equal(t, len("first line\n"), n)
	_, _ = w.Write([]byte("second line\n"))

	w.Close()
	w.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{"first line", "second line"}, lines)
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	assert.Equal(t, "debug", levelFromEnv().String())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, "info", levelFromEnv().String())
}

func TestConsoleHook_FiltersVerboseLevels(t *testing.T) {
	var buf strings.Builder
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.AddHook(NewConsoleHook(&buf, logrus.WarnLevel))

	log.Debug("chatty")
	log.Warn("queue is full")

	assert.NotContains(t, buf.String(), "chatty")
	assert.Contains(t, buf.String(), "queue is full")
}
