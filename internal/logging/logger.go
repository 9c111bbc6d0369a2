// Package logging provides the leveled logger used across the pipeline.
// The logger is constructed once in main and passed down explicitly, so
// individual components can be tested without shared global log state.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ANSI colors (empty when color output is disabled).
var (
	red    = ""
	green  = ""
	yellow = ""
	blue   = ""
	cyan   = ""
	reset  = ""
)

// Logger writes timestamped, leveled lines to the console and, when a log
// file is configured, duplicates every line (uncolored) to that file.
type Logger struct {
	mu      sync.Mutex
	verbose bool
	file    *os.File
}

// New builds a Logger. Colors are enabled only when stdout is a terminal
// and neither NO_COLOR nor TERM=dumb is set. When logFile is non-empty its
// parent directory is created and the file is opened in append mode; call
// Close when done. Verbose enables Debug output.
func New(logFile string, verbose bool) (*Logger, error) {
	l := &Logger{verbose: verbose}

	if isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb" {
		red = "\033[1;91m"
		green = "\033[1;92m"
		yellow = "\033[1;93m"
		blue = "\033[1;94m"
		cyan = "\033[1;96m"
		reset = "\033[0m"
	} else {
		red, green, yellow, blue, cyan, reset = "", "", "", "", "", ""
	}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	plain := ts + " [" + level + "] " + text + "\n"

	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+reset+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level.
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level, to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level; no-op unless the logger was built verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", cyan, fmt.Sprintf(format, args...))
}
