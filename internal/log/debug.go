// Package log is the process-wide debug log. Messages written before a
// destination is chosen are buffered and flushed once SetFile is called.
package log

import (
	"log"
	"os"
	"sync"
)

type sink struct {
	mu      sync.Mutex
	file    *os.File
	pending []byte
	discard bool
}

var (
	out    = &sink{}
	logger = log.New(out, "", log.LstdFlags|log.Lmicroseconds)
)

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.discard:
		return len(p), nil
	case s.file != nil:
		n, err := s.file.Write(p)
		_ = s.file.Sync()
		return n, err
	default:
		s.pending = append(s.pending, p...)
		return len(p), nil
	}
}

// SetFile directs the log to path, appending to it and flushing anything
// buffered so far. An empty path, or a path that cannot be opened, drops the
// buffer and discards future messages.
func SetFile(path string) error {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.file != nil {
		_ = out.file.Close()
		out.file = nil
	}

	if path == "" {
		out.discard = true
		out.pending = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		out.discard = true
		out.pending = nil
		return err
	}

	out.file = f
	out.discard = false
	if len(out.pending) > 0 {
		_, _ = f.Write(out.pending)
		_ = f.Sync()
		out.pending = nil
	}
	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	logger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	logger.Println(v...)
}

// Warnf writes a formatted message tagged as a warning.
func Warnf(format string, args ...any) {
	logger.Printf("WARN "+format, args...)
}

// Close closes the log file if one is open.
func Close() error {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.file == nil {
		return nil
	}
	err := out.file.Close()
	out.file = nil
	return err
}
