package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const logsDir = "logs"

// NewLogger builds the process logger. When component is empty the logger
// only writes to stdout, which is what the one-shot CLI commands want.
func NewLogger(component string) *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(levelFromEnv())

	if component == "" {
		logger.SetOutput(os.Stdout)
		return logger
	}

	writer, err := fileWriter(component)
	if err != nil {
		logger.SetOutput(os.Stdout)
		logger.WithError(err).Warn("file logging disabled")
		return logger
	}

	logger.SetOutput(writer)
	logger.AddHook(NewConsoleHook(os.Stdout, logger.GetLevel()))

	return logger
}

func levelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func fileWriter(component string) (io.Writer, error) {
	logFile := filepath.Clean(filepath.Join(logsDir, component+".log"))
	if !strings.HasPrefix(logFile, logsDir+string(filepath.Separator)) {
		return nil, fmt.Errorf("invalid log file path %q: must be in %s directory", logFile, logsDir)
	}
	if err := os.MkdirAll(logsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize async log writer: %w", err)
	}
	return asyncWriter, nil
}
