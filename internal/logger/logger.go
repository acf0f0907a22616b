package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	NONE
)

var (
	level     = INFO
	stdLogger = log.New(os.Stderr, "[cooktime] ", log.LstdFlags)
)

func ParseLevel(levelStr string) (LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return DEBUG, true
	case "info":
		return INFO, true
	case "warn", "warning":
		return WARN, true
	case "error":
		return ERROR, true
	case "none":
		return NONE, true
	default:
		return INFO, false
	}
}

// Init sets the level and output. With a log file, output is tee'd to
// stderr unless console is false; the TUI passes false so log lines do not
// tear the alternate screen.
func Init(logfilePath string, levelStr string, console bool) error {
	level, _ = ParseLevel(levelStr)

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stderr)
	}
	if logfilePath != "" {
		dir := filepath.Dir(logfilePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		f, err := os.OpenFile(logfilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}

	switch len(writers) {
	case 0:
		stdLogger.SetOutput(io.Discard)
	case 1:
		stdLogger.SetOutput(writers[0])
	default:
		stdLogger.SetOutput(io.MultiWriter(writers...))
	}
	return nil
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	stdLogger.SetOutput(w)
}

func SetLevel(l LogLevel) {
	level = l
}

func Debug(msg string, args ...any) {
	if level <= DEBUG {
		stdLogger.Printf("[DEBUG] "+msg, args...)
	}
}
func Info(msg string, args ...any) {
	if level <= INFO {
		stdLogger.Printf("[INFO] "+msg, args...)
	}
}
func Warn(msg string, args ...any) {
	if level <= WARN {
		stdLogger.Printf("[WARN] "+msg, args...)
	}
}
func Error(msg string, args ...any) {
	if level <= ERROR {
		stdLogger.Printf("[ERROR] "+msg, args...)
	}
}
