package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors file log entries to a terminal stream. Entries more
// verbose than maxLevel are kept out of the console.
type ConsoleHook struct {
	mu       sync.Mutex
	out      io.Writer
	maxLevel logrus.Level
}

func NewConsoleHook(out io.Writer, maxLevel logrus.Level) *ConsoleHook {
	return &ConsoleHook{out: out, maxLevel: maxLevel}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(line)
	return err
}

func (h *ConsoleHook) Levels() []logrus.Level {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= h.maxLevel {
			levels = append(levels, l)
		}
	}
	return levels
}
