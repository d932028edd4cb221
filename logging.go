package levelwalk

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

// DefaultLogger writes DEBUG and INFO to stdout, WARN and ERROR to stderr.
// The asset fetcher logs from its own goroutine, hence the mutex.
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewLoggerTo(os.Stdout, os.Stderr, prefix, debug)
}

// NewLoggerTo is NewDefaultLogger with explicit sinks.
func NewLoggerTo(stdout, stderr io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(stdout, "", flags),
		err:    log.New(stderr, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) write(level logLevel, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level == levelDebug && !l.debug {
		return
	}

	msg := fmt.Sprintf(format, args...)
	line := levelNames[level] + ": " + msg
	if l.prefix != "" {
		line = "[" + l.prefix + "] " + line
	}

	sink := l.out
	if level >= levelWarn {
		sink = l.err
	}
	sink.Print(line)
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.write(levelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any) { l.write(levelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any) { l.write(levelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.write(levelError, format, args...) }

// LoggingModule installs a logger as a resource. Logger overrides the default.
type LoggingModule struct {
	Prefix string
	Debug  bool
	Logger *DefaultLogger
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	logger := m.Logger
	if logger == nil {
		logger = NewDefaultLogger(m.Prefix, m.Debug)
	}
	app.addResources(logger)
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool { return false }
func (nopLogger) SetDebug(bool) {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Warnf(string, ...any) {}
func (nopLogger) Errorf(string, ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
