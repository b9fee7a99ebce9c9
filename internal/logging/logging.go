package logging

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags attached to every child logger.
const (
	SourceApp       = "app"
	SourceDiagnosis = "diagnosis"
	SourceStore     = "store"
	SourceStateFile = "statefile"
	SourceReport    = "report"
	SourceLLM       = "llm"
)

var (
	initOnce   sync.Once
	baseLogger *log.Logger

	mu       sync.Mutex
	children = map[string]*log.Logger{}
)

// Init configures the base logger. Logs go to stderr so command output on
// stdout stays clean.
func Init() {
	initOnce.Do(func() {
		baseLogger = newLogger(os.Stderr)
		stdlog.SetFlags(0)
		stdlog.SetOutput(baseLogger.With("source", SourceApp).
			StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel}).Writer())
	})
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		TimeFunction:    log.NowUTC,
		TimeFormat:      time.RFC3339,
		Level:           log.InfoLevel,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	})
}

// SetLevel changes the level of the base logger and of every logger
// returned by Logger. Loggers derived from those with With keep the level
// they were created with. Unknown names leave the level unchanged.
func SetLevel(name string) error {
	Init()
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	baseLogger.SetLevel(lvl)
	for _, l := range children {
		l.SetLevel(lvl)
	}
	return nil
}

// Logger returns the logger tagged with the provided source. Repeated calls
// with the same source return the same logger.
func Logger(source string) *log.Logger {
	Init()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := children[source]; ok {
		return l
	}
	l := baseLogger.With("source", source)
	children[source] = l
	return l
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
