// Package logger writes the client's debug log. The terminal is owned by the
// TUI, so everything goes to a file under the user's home directory.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultDirName = ".chess-arena"
	logFileName    = "debug.log"
	maxLogSize     = 10 * 1024 * 1024
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	logFile *os.File
	logPath string
)

// Options 日志配置
type Options struct {
	Dir   string // 为空时使用 ~/.chess-arena
	Level string // debug|info|warn|error
}

// Init opens the log file, rotating it first when it is larger than 10MB,
// and installs the global logger.
func Init(opts Options) error {
	dir := opts.Dir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, defaultDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		backupPath := filepath.Join(dir, fmt.Sprintf("%s.%d", logFileName, time.Now().Unix()))
		_ = os.Rename(path, backupPath)
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), level)

	mu.Lock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	logPath = path
	base = zap.New(core, zap.AddCaller())
	mu.Unlock()

	LogInfo("Logger initialized, log file: %s", path)
	return nil
}

// L returns the global logger; a no-op logger before Init.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	_ = base.Sync()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	base = zap.NewNop()
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	L().WithOptions(zap.AddCallerSkip(1)).Sugar().Infof(format, args...)
}

// LogError logs an error message
func LogError(format string, args ...any) {
	L().WithOptions(zap.AddCallerSkip(1)).Sugar().Errorf(format, args...)
}

// LogPanic logs a recovered panic with its stack trace.
func LogPanic(r any) {
	L().Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}
