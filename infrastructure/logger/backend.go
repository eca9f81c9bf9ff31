package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const normalLogSize = 512

// defaultFlags specifies changes to the default logger behavior. It is set
// from the LOGFLAGS environment variable. New logger backends can override
// these default flags using NewBackendWithFlags.
var defaultFlags = getDefaultFlags()

// Flags to modify Backend's behavior.
const (
	// LogFlagLongFile modifies the logger output to include full path and line number
	// of the logging callsite, e.g. /a/b/c/main.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile modifies the logger output to include filename and line number
	// of the logging callsite, e.g. main.go:123. takes precedence over LogFlagLongFile.
	LogFlagShortFile
)

// Read logger flags from the LOGFLAGS environment variable. Multiple flags can
// be set at once, separated by commas.
func getDefaultFlags() (flags uint32) {
	for _, f := range strings.Split(os.Getenv("LOGFLAGS"), ",") {
		switch f {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return
}

const logsBuffer = 256

type logEntry struct {
	log   []byte
	level Level
}

// Backend is a logging backend. Subsystems created from the backend write to
// the backend's writers. Before Run is called entries are written
// synchronously; afterwards they are handed to a single writer goroutine.
type Backend struct {
	flag      uint32
	isRunning uint32
	writers   []logWriter
	writeChan chan logEntry
	writeLock sync.Mutex
	syncClose sync.Mutex // held by the writer goroutine until writeChan drains
}

// NewBackendWithFlags configures a Backend to use the specified flags rather than using
// the package's defaults as determined through the LOGFLAGS environment
// variable.
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{flag: flags, writeChan: make(chan logEntry, logsBuffer)}
}

// NewBackend creates a new logger backend.
func NewBackend() *Backend {
	return NewBackendWithFlags(defaultFlags)
}

const (
	defaultThresholdKB = 10 * 1000 // 10 MB logs by default.
	defaultMaxRolls    = 8         // keep 8 last logs by default.
)

type logWriter interface {
	io.WriteCloser
	LogLevel() Level
}

type logWriterWrap struct {
	io.WriteCloser
	logLevel Level
}

func (lw logWriterWrap) LogLevel() Level {
	return lw.logLevel
}

// nopCloser keeps the backend from closing writers it does not own, such as
// os.Stdout.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// AddLogFile adds a file which the log will write into on a certain
// log level with the default log rotation settings. It'll create the file if it doesn't exist.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogWriter adds a type implementing io.Writer which the log will write
// into on a certain log level. The writer is not closed by the backend.
func (b *Backend) AddLogWriter(logWriter io.Writer, logLevel Level) error {
	if b.IsRunning() {
		return errors.New("The logger is already running")
	}
	b.writers = append(b.writers, logWriterWrap{
		WriteCloser: nopCloser{logWriter},
		logLevel:    logLevel,
	})
	return nil
}

// AddLogFileWithCustomRotator adds a file which the log will write into on a certain
// log level, with the specified log rotation settings.
// It'll create the file if it doesn't exist.
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	if b.IsRunning() {
		return errors.New("The logger is already running")
	}
	logDir, _ := filepath.Split(logFile)
	// if the logDir is empty then `logFile` is in the cwd and there's no need to create any directory.
	if logDir != "" {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Errorf("failed to create log directory: %+v", err)
		}
	}
	r, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Errorf("failed to create file rotator: %s", err)
	}
	b.writers = append(b.writers, logWriterWrap{
		WriteCloser: r,
		logLevel:    logLevel,
	})
	return nil
}

// Run launches the logger backend in a separate go-routine. should only be called once.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("The logger is already running")
	}
	b.syncClose.Lock()
	go func() {
		defer func() {
			if err := recover(); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Fatal error in logger.Backend goroutine: %+v\n", err)
				_, _ = fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
			}
		}()
		b.runBlocking()
	}()
	return nil
}

func (b *Backend) runBlocking() {
	defer b.syncClose.Unlock()

	for entry := range b.writeChan {
		b.write(entry)
	}
}

func (b *Backend) write(entry logEntry) {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()
	for _, writer := range b.writers {
		if entry.level >= writer.LogLevel() {
			_, _ = writer.Write(entry.log)
		}
	}
}

// IsRunning returns true if backend.Run() has been called and false if it hasn't.
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close flushes pending entries and finalizes all writers of this backend.
func (b *Backend) Close() {
	if atomic.CompareAndSwapUint32(&b.isRunning, 1, 0) {
		close(b.writeChan)
		// Wait for the writer goroutine to drain the channel.
		b.syncClose.Lock()
		b.syncClose.Unlock()
	}
	for _, writer := range b.writers {
		_ = writer.Close()
	}
}

// Logger returns a new logger for a particular subsystem that writes to the
// Backend b. A tag describes the subsystem and is included in all log
// messages. The logger is off until its level is set.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{lvl: uint32(LevelOff), tag: subsystemTag, b: b}
}

func (b *Backend) print(lvl Level, tag string, args ...interface{}) {
	b.emit(lvl, tag, func(buf *bytes.Buffer) {
		fmt.Fprintln(buf, args...)
	})
}

func (b *Backend) printf(lvl Level, tag string, format string, args ...interface{}) {
	b.emit(lvl, tag, func(buf *bytes.Buffer) {
		fmt.Fprintf(buf, format, args...)
		buf.WriteByte('\n')
	})
}

func (b *Backend) emit(lvl Level, tag string, body func(buf *bytes.Buffer)) {
	t := time.Now() // get as early as possible

	var file string
	var line int
	if b.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		file, line = callsite(b.flag)
	}

	buf := bytes.NewBuffer(make([]byte, 0, normalLogSize))
	formatHeader(buf, t, lvl.String(), tag, file, line)
	body(buf)

	entry := logEntry{log: buf.Bytes(), level: lvl}
	if b.IsRunning() {
		b.writeChan <- entry
		return
	}
	b.write(entry)
}

// formatHeader writes a log header to buf in the following order:
//   - date (YYYY-MM-DD)
//   - time (HH:MM:SS.sss)
//   - level (e.g. INF)
//   - subsystem tag
//   - file:line, when enabled
func formatHeader(buf *bytes.Buffer, t time.Time, lvl, tag string, file string, line int) {
	buf.WriteString(t.Format("2006-01-02 15:04:05.000"))
	buf.WriteString(" [")
	buf.WriteString(lvl)
	buf.WriteString("] ")
	buf.WriteString(tag)
	if file != "" {
		fmt.Fprintf(buf, " %s:%d", file, line)
	}
	buf.WriteString(": ")
}

// callsite returns the file name and line number of the callsite to the
// subsystem logger.
func callsite(flag uint32) (string, int) {
	_, file, line, ok := runtime.Caller(5)
	if !ok {
		return "???", 0
	}
	if flag&LogFlagShortFile != 0 {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if os.IsPathSeparator(file[i]) {
				short = file[i+1:]
				break
			}
		}
		file = short
	}
	return file, line
}
