package logger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envDevelopment = "development"
	envProduction  = "production"
)

// Config содержит настройки логгера.
type Config struct {
	Level       string // debug, info, warn, error
	Encoding    string // json или console; пусто - console в development, иначе json
	OutputPath  string // пусто - stdout
	Service     string
	Environment string
}

// New собирает zap.Logger из отдельного core.
// В development добавляется caller, в production включается сэмплирование
// повторяющихся записей. Неизвестный уровень заменяется на info с предупреждением.
func New(cfg Config) (*zap.Logger, error) {
	level, levelErr := parseLevel(cfg.Level)

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = "stdout"
	}
	sink, _, err := zap.Open(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %q: %w", outputPath, err)
	}
	errSink, _, err := zap.Open("stderr")
	if err != nil {
		return nil, fmt.Errorf("failed to open error output: %w", err)
	}

	env := strings.ToLower(cfg.Environment)
	var core zapcore.Core = zapcore.NewCore(newEncoder(cfg.Encoding, env), sink, zap.NewAtomicLevelAt(level))
	if env == envProduction {
		core = zapcore.NewSamplerWithOptions(core, time.Second, 100, 100)
	}

	opts := []zap.Option{zap.ErrorOutput(errSink)}
	if env == envDevelopment {
		opts = append(opts, zap.AddCaller())
	}

	var fields []zap.Field
	if cfg.Service != "" {
		fields = append(fields, zap.String("service", cfg.Service))
	}
	if env != "" {
		fields = append(fields, zap.String("env", env))
	}

	l := zap.New(core, opts...).With(fields...)
	if levelErr != nil {
		l.Warn("Unknown log level, using info", zap.String("requestedLevel", cfg.Level), zap.Error(levelErr))
	}
	return l, nil
}

func parseLevel(raw string) (zapcore.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zapcore.InfoLevel, err
	}
	return level, nil
}

func newEncoder(encoding, env string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder

	encoding = strings.ToLower(encoding)
	if encoding == "" && env == envDevelopment {
		encoding = "console"
	}
	if encoding == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderCfg)
}
