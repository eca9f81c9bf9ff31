package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Level is the level at which a logger is configured. All messages sent
// to a level which is below the current level are filtered.
type Level uint32

// Level constants.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelStrs = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "CRT", "OFF"}

// LevelFromString returns a level based on the input string s. If the input
// can't be interpreted as a valid log level, the info level and false is
// returned.
func LevelFromString(s string) (l Level, ok bool) {
	switch strings.ToLower(s) {
	case "trace", "trc":
		return LevelTrace, true
	case "debug", "dbg":
		return LevelDebug, true
	case "info", "inf":
		return LevelInfo, true
	case "warn", "wrn":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	case "critical", "crt":
		return LevelCritical, true
	case "off":
		return LevelOff, true
	default:
		return LevelInfo, false
	}
}

// String returns the tag of the logger used in log messages, or "OFF" if
// the level will not produce any log output.
func (l Level) String() string {
	if l >= LevelOff {
		return "OFF"
	}
	return levelStrs[l]
}

// Logger is a subsystem logger for a Backend.
type Logger struct {
	lvl uint32 // atomic
	tag string
	b   *Backend
}

// Trace formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	l.Write(LevelTrace, args...)
}

// Tracef formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Writef(LevelTrace, format, args...)
}

// Debug formats message using the default formats for its operands and
// writes to log with LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	l.Write(LevelDebug, args...)
}

// Debugf formats message according to format specifier and writes to log
// with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Writef(LevelDebug, format, args...)
}

// Info formats message using the default formats for its operands and
// writes to log with LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	l.Write(LevelInfo, args...)
}

// Infof formats message according to format specifier and writes to log
// with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Writef(LevelInfo, format, args...)
}

// Warn formats message using the default formats for its operands and
// writes to log with LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	l.Write(LevelWarn, args...)
}

// Warnf formats message according to format specifier and writes to log
// with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Writef(LevelWarn, format, args...)
}

// Error formats message using the default formats for its operands and
// writes to log with LevelError.
func (l *Logger) Error(args ...interface{}) {
	l.Write(LevelError, args...)
}

// Errorf formats message according to format specifier and writes to log
// with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Writef(LevelError, format, args...)
}

// Criticalf formats message according to format specifier and writes to log
// with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.Writef(LevelCritical, format, args...)
}

// Write formats message using the default formats for its operands and
// writes to log with logLevel.
func (l *Logger) Write(logLevel Level, args ...interface{}) {
	if l.Level() <= logLevel {
		l.b.print(logLevel, l.tag, args...)
	}
}

// Writef formats message according to format specifier and writes to log
// with logLevel.
func (l *Logger) Writef(logLevel Level, format string, args ...interface{}) {
	if l.Level() <= logLevel {
		l.b.printf(logLevel, l.tag, format, args...)
	}
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32(&l.lvl))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32(&l.lvl, uint32(level))
}

// Backend returns the log backend.
func (l *Logger) Backend() *Backend {
	return l.b
}

// BackendLog is the logging backend shared by all subsystem loggers.
var BackendLog = NewBackend()

var (
	subsystemLoggers     = make(map[string]*Logger)
	subsystemLoggersLock sync.Mutex
)

// RegisterSubSystem returns the logger for the given subsystem tag, creating
// it on first use.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()
	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// SupportedSubsystems returns a sorted slice of the registered subsystem tags.
func SupportedSubsystems() []string {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// SetLogLevels sets the log level for all registered subsystem loggers.
func SetLogLevels(level Level) {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}

// ParseAndSetLogLevels parses a level name ("info", "debug", ...) and applies
// it to every registered subsystem.
func ParseAndSetLogLevels(levelStr string) error {
	level, ok := LevelFromString(levelStr)
	if !ok {
		return errors.Errorf("the specified debug level [%s] is invalid", levelStr)
	}
	SetLogLevels(level)
	return nil
}

// InitLog attaches stdout and a rotating log file to BackendLog and starts
// it. An empty logFile skips the file writer.
func InitLog(logFile string, level Level) error {
	err := BackendLog.AddLogWriter(os.Stdout, level)
	if err != nil {
		return err
	}
	if logFile != "" {
		err = BackendLog.AddLogFile(logFile, LevelTrace)
		if err != nil {
			return err
		}
	}
	SetLogLevels(level)
	return BackendLog.Run()
}

// LogAndMeasureExecutionTime logs the start of functionName and returns a
// closure that logs its end together with the elapsed time.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	start := time.Now()
	log.Debugf("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}

// String implements fmt.Stringer for debugging output.
func (l *Logger) String() string {
	return fmt.Sprintf("%s(%s)", l.tag, l.Level())
}
