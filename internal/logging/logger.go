package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func parseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Logger writes one JSON object per line.
type Logger struct {
	level     Level
	mu        *sync.Mutex
	w         io.Writer
	component string
}

func NewLogger(levelStr string) *Logger {
	return NewLoggerWithWriter(levelStr, os.Stdout)
}

func NewLoggerWithWriter(levelStr string, w io.Writer) *Logger {
	return &Logger{
		level: parseLevel(levelStr),
		mu:    &sync.Mutex{},
		w:     w,
	}
}

// WithComponent returns a logger that stamps every line with the component
// name. The underlying writer and level are shared.
func (l *Logger) WithComponent(name string) *Logger {
	clone := *l
	clone.component = name
	return &clone
}

func (l *Logger) log(level Level, msg string, fields map[string]any) {
	if level < l.level {
		return
	}

	rec := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		rec[k] = v
	}
	rec["ts"] = time.Now().Format(time.RFC3339)
	rec["level"] = level.String()
	rec["msg"] = msg
	if l.component != "" {
		rec["component"] = l.component
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(line, '\n'))
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, fmt.Sprintf(format, args...), nil) }

func (l *Logger) Info(format string, args ...any) { l.log(LevelInfo, fmt.Sprintf(format, args...), nil) }

func (l *Logger) Warn(format string, args ...any) { l.log(LevelWarn, fmt.Sprintf(format, args...), nil) }

func (l *Logger) Error(format string, args ...any) { l.log(LevelError, fmt.Sprintf(format, args...), nil) }

func (l *Logger) Debugw(msg string, fields map[string]any) { l.log(LevelDebug, msg, fields) }

func (l *Logger) Infow(msg string, fields map[string]any) { l.log(LevelInfo, msg, fields) }

func (l *Logger) Warnw(msg string, fields map[string]any) { l.log(LevelWarn, msg, fields) }

func (l *Logger) Errorw(msg string, fields map[string]any) { l.log(LevelError, msg, fields) }
