package middleware

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/ValentinKolb/gFlux/lib/store"
)

// --------------------------------------------------------------------------
// Log Levels
// --------------------------------------------------------------------------

type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarning
	LevelInfo
	LevelDebug
)

// ParseLogLevel converts a string level to a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Action Logger
// --------------------------------------------------------------------------

// actionLogger wraps a stdlib logger with level filtering and the
// "LEVEL | name | message" line format.
type actionLogger struct {
	name   string
	level  LogLevel
	logger *log.Logger
}

func (l *actionLogger) debugf(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		l.log("DEBUG", format, args...)
	}
}

func (l *actionLogger) infof(format string, args ...interface{}) {
	if l.level >= LevelInfo {
		l.log("INFO", format, args...)
	}
}

func (l *actionLogger) errorf(format string, args ...interface{}) {
	if l.level >= LevelError {
		l.log("ERROR", format, args...)
	}
}

// log formats and writes a log message. this internal helper is used by the level methods
func (l *actionLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Middleware Factory
// --------------------------------------------------------------------------

// NewLogger creates a middleware that logs every dispatched action with its
// type and the time the downstream chain took. Dispatch starts are logged at
// debug level, completions at info level and failures at error level.
//
// The name appears in every log line and identifies the store when several
// stores log to the same writer.
func NewLogger[S any](name string, level LogLevel, w io.Writer) Middleware[S] {
	l := &actionLogger{
		name:   name,
		level:  level,
		logger: log.New(w, "", log.Ldate|log.Ltime),
	}

	return func(api API[S]) func(next store.Dispatcher) store.Dispatcher {
		return func(next store.Dispatcher) store.Dispatcher {
			return func(action store.IAction) (store.IAction, error) {
				actionType := describeAction(action)
				l.debugf("dispatching %s", actionType)

				start := time.Now()
				out, err := next(action)
				if err != nil {
					l.errorf("dispatch of %s failed: %v", actionType, err)
					return out, err
				}

				l.infof("dispatched %s in %v", actionType, time.Since(start))
				return out, nil
			}
		}
	}
}
