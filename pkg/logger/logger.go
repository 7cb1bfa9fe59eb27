package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category loggers. They start as no-op loggers so packages and tests can log
// before InitLoggers runs.
var (
	ErrorLogger    = zap.NewNop()
	AuditLogger    = zap.NewNop()
	RequestLogger  = zap.NewNop()
	SecurityLogger = zap.NewNop()
	SystemLogger   = zap.NewNop()
)

var (
	mu    sync.Mutex
	files []*os.File
)

func encoderConfig() zapcore.EncoderConfig {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return encoderCfg
}

// newLogger returns the category logger and, when it writes to a file, that
// file so the caller can close it.
func newLogger(dir, name string, level zapcore.Level) (*zap.Logger, *os.File, error) {
	ws := zapcore.Lock(os.Stdout)
	var file *os.File
	if dir != "" {
		var err error
		file, err = os.OpenFile(filepath.Join(dir, name+".log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		ws = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		ws,
		level,
	)
	return zap.New(core).With(zap.String("category", name)), file, nil
}

// InitLoggers builds one JSON logger per category. With a non-empty dir every
// category gets its own file, otherwise everything goes to stdout. Files from
// an earlier call are closed once the new loggers are in place.
func InitLoggers(dir string) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}

	targets := []struct {
		dst   **zap.Logger
		name  string
		level zapcore.Level
	}{
		{&ErrorLogger, "errors", zapcore.ErrorLevel},
		{&AuditLogger, "audit", zapcore.InfoLevel},
		{&RequestLogger, "request", zapcore.InfoLevel},
		{&SecurityLogger, "security", zapcore.WarnLevel},
		{&SystemLogger, "system", zapcore.InfoLevel},
	}
	loggers := make([]*zap.Logger, len(targets))
	var opened []*os.File
	for i, t := range targets {
		l, file, err := newLogger(dir, t.name, t.level)
		if err != nil {
			closeFiles(opened)
			return fmt.Errorf("cannot create %s logger: %w", t.name, err)
		}
		if file != nil {
			opened = append(opened, file)
		}
		loggers[i] = l
	}

	mu.Lock()
	defer mu.Unlock()
	SyncLoggers()
	for i, t := range targets {
		*t.dst = loggers[i]
	}
	closeFiles(files)
	files = opened
	return nil
}

func SyncLoggers() {
	_ = ErrorLogger.Sync()
	_ = AuditLogger.Sync()
	_ = RequestLogger.Sync()
	_ = SecurityLogger.Sync()
	_ = SystemLogger.Sync()
}

// CloseLoggers flushes the category loggers, closes their files and puts
// no-op loggers back.
func CloseLoggers() {
	mu.Lock()
	defer mu.Unlock()
	SyncLoggers()
	ErrorLogger, AuditLogger, RequestLogger = zap.NewNop(), zap.NewNop(), zap.NewNop()
	SecurityLogger, SystemLogger = zap.NewNop(), zap.NewNop()
	closeFiles(files)
	files = nil
}

func closeFiles(fs []*os.File) {
	for _, f := range fs {
		_ = f.Close()
	}
}
