package utilities

import (
	"fmt"
	"os"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects level, encoding and sink of the process logger.
type Config struct {
	Level string
	// Dev switches to the human readable console encoder.
	Dev bool
	// File, when set, sends output to a daily rotated file instead of stdout.
	File string
	// Service is attached to every entry as "service".
	Service string
}

// ConfigFromEnv reads LOG_LEVEL, LOG_DEV and LOG_FILE. Dev mode defaults to debug.
func ConfigFromEnv() Config {
	cfg := Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Dev:     os.Getenv("LOG_DEV") == "1",
		File:    os.Getenv("LOG_FILE"),
		Service: "portfolio-api",
	}
	if cfg.Level == "" {
		cfg.Level = "info"
		if cfg.Dev {
			cfg.Level = "debug"
		}
	}
	return cfg
}

func levelFromString(l string) zapcore.Level {
	if strings.EqualFold(l, "warning") {
		return zapcore.WarnLevel
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(l))
	if err != nil || lvl > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return lvl
}

// Init builds the process logger: console encoding in dev, ISO8601 JSON
// otherwise, written to stdout or the rotating file.
func Init(cfg Config) (*zap.Logger, error) {
	sink := zapcore.Lock(os.Stdout)
	if cfg.File != "" {
		rl, err := rotatingWriter(cfg.File)
		if err != nil {
			return nil, err
		}
		sink = zapcore.AddSync(rl)
	}

	var enc zapcore.Encoder
	if cfg.Dev {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if cfg.File != "" {
			ec.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(ec)
	} else {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Dev {
		opts = append(opts, zap.Development())
	}
	if cfg.Service != "" {
		opts = append(opts, zap.Fields(zap.String("service", cfg.Service)))
	}
	return zap.New(zapcore.NewCore(enc, sink, levelFromString(cfg.Level)), opts...), nil
}

func rotatingWriter(path string) (*rotatelogs.RotateLogs, error) {
	rl, err := rotatelogs.New(
		path+".%Y%m%d",
		rotatelogs.WithLinkName(path),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(7*24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("rotate logs %s: %w", path, err)
	}
	return rl, nil
}
