package storage

import (
	"fmt"
	"os"
	"strings"
)

// FileLog stores one message per line in a single text file. The file is
// created on the first append and only ever grows; ordering across
// concurrent appenders relies on O_APPEND semantics for small writes.
type FileLog struct {
	path string
}

func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

// Append writes the line and its terminator in a single write call so
// concurrent appends interleave at line granularity at worst.
func (l *FileLog) Append(line string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open guestbook log: %w", err)
	}
	if _, err = f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to guestbook log: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close guestbook log: %w", err)
	}
	return nil
}

// ReadAll returns every stored line in append order. A log that does not
// exist yet reads as empty; blank lines are never returned.
func (l *FileLog) ReadAll() ([]string, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read guestbook log: %w", err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (l *FileLog) Close() error {
	return nil
}
