package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI color codes
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red          = "\033[31m"
	White        = "\033[37m"
	Gray         = "\033[90m"
	BrightRed    = "\033[91m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
	BrightWhite  = "\033[97m"
)

// TimeLayout matches the timestamps tahoe itself writes to twistd.log.
const TimeLayout = "2006-01-02T15:04:05-0700"

// ColoredLogger wraps zap.Logger with the orchestrator's console format.
type ColoredLogger struct {
	*zap.Logger
}

// Options configures a ColoredLogger.
type Options struct {
	Level        zapcore.Level
	EnableColors bool
	Output       io.Writer
}

// getLevelColor returns the color for a log level
func getLevelColor(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return Gray
	case zapcore.InfoLevel:
		return BrightWhite
	case zapcore.WarnLevel:
		return BrightYellow
	case zapcore.ErrorLevel:
		return BrightRed
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return Red
	default:
		return White
	}
}

// levelNames maps zap levels onto the names accepted by --log-level.
var levelNames = map[zapcore.Level]string{
	zapcore.DebugLevel:  "DEBUG",
	zapcore.InfoLevel:   "INFO",
	zapcore.WarnLevel:   "WARN",
	zapcore.ErrorLevel:  "ERROR",
	zapcore.DPanicLevel: "CRITICAL",
	zapcore.PanicLevel:  "CRITICAL",
	zapcore.FatalLevel:  "CRITICAL",
}

// consoleEncoder renders "<time> <LEVEL> <name> | <message> <fields>".
func consoleEncoder(enableColors bool) zapcore.Encoder {
	config := zap.NewDevelopmentEncoderConfig()
	config.ConsoleSeparator = " "
	config.CallerKey = zapcore.OmitKey
	config.StacktraceKey = zapcore.OmitKey

	config.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		timeStr := t.Format(TimeLayout)
		if enableColors {
			enc.AppendString(fmt.Sprintf("%s%s%s", Dim, timeStr, Reset))
		} else {
			enc.AppendString(timeStr)
		}
	}

	config.EncodeLevel = func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		levelStr, ok := levelNames[level]
		if !ok {
			levelStr = "?"
		}
		levelStr = fmt.Sprintf("%5s", levelStr)
		if enableColors {
			enc.AppendString(fmt.Sprintf("%s%s%s%s", getLevelColor(level), Bold, levelStr, Reset))
		} else {
			enc.AppendString(levelStr)
		}
	}

	config.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		if enableColors {
			enc.AppendString(fmt.Sprintf("%s%s%s |", BrightCyan, name, Reset))
		} else {
			enc.AppendString(name + " |")
		}
	}

	return zapcore.NewConsoleEncoder(config)
}

// New creates a logger writing to opts.Output (stdout when nil).
func New(opts Options) *ColoredLogger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	core := zapcore.NewCore(
		consoleEncoder(opts.EnableColors),
		zapcore.AddSync(out),
		opts.Level,
	)

	return &ColoredLogger{Logger: zap.New(core).Named("giab")}
}

// Channel returns the diagnostic channel for one operation, named after the
// node role (or "options", "launch", ...) and the operation.
func (l *ColoredLogger) Channel(scope, operation string) *zap.Logger {
	return Channel(l.Logger, scope, operation)
}

// Channel names a child of base "<scope>.<operation>".
func Channel(base *zap.Logger, scope, operation string) *zap.Logger {
	if operation == "" {
		return base.Named(scope)
	}
	return base.Named(scope).Named(operation)
}

// ParseLevel accepts the --log-level names (case-insensitive).
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return zapcore.DebugLevel, nil
	case "INFO":
		return zapcore.InfoLevel, nil
	case "WARN", "WARNING":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	case "CRITICAL":
		return zapcore.DPanicLevel, nil
	default:
		return zapcore.DebugLevel, fmt.Errorf("unknown log level %q (want DEBUG, INFO, WARN, ERROR or CRITICAL)", name)
	}
}

// LevelNames lists the accepted --log-level values in increasing severity.
func LevelNames() []string {
	return []string{"DEBUG", "INFO", "WARN", "ERROR", "CRITICAL"}
}
