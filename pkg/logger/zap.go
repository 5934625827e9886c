package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // 文件路径或 stdout
}

// ZapLogger 基于 zap 的 Logger 实现
type ZapLogger struct {
	zap *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger 创建 zap 日志器
func NewZapLogger(cfg Config) (*ZapLogger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var writeSyncer zapcore.WriteSyncer
	if cfg.Output == "" || cfg.Output == "stdout" {
		writeSyncer = zapcore.AddSync(os.Stdout)
	} else {
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file failed: %w", err)
		}
		writeSyncer = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	return &ZapLogger{
		zap: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)),
	}, nil
}

// NewNopLogger 创建空日志器, 仅测试用
func NewNopLogger() *ZapLogger {
	return &ZapLogger{zap: zap.NewNop()}
}

func (l *ZapLogger) Debug(msg string, fields ...Field) { l.zap.Debug(msg, fields...) }
func (l *ZapLogger) Info(msg string, fields ...Field)  { l.zap.Info(msg, fields...) }
func (l *ZapLogger) Warn(msg string, fields ...Field)  { l.zap.Warn(msg, fields...) }
func (l *ZapLogger) Error(msg string, fields ...Field) { l.zap.Error(msg, fields...) }

func (l *ZapLogger) DebugContext(ctx context.Context, msg string, fields ...Field) {
	l.zap.Debug(msg, l.merge(ctx, fields)...)
}

func (l *ZapLogger) InfoContext(ctx context.Context, msg string, fields ...Field) {
	l.zap.Info(msg, l.merge(ctx, fields)...)
}

func (l *ZapLogger) WarnContext(ctx context.Context, msg string, fields ...Field) {
	l.zap.Warn(msg, l.merge(ctx, fields)...)
}

func (l *ZapLogger) ErrorContext(ctx context.Context, msg string, fields ...Field) {
	l.zap.Error(msg, l.merge(ctx, fields)...)
}

func (l *ZapLogger) merge(ctx context.Context, fields []Field) []Field {
	ctxFields := FieldsFromContext(ctx)
	if len(ctxFields) == 0 {
		return fields
	}
	merged := make([]Field, 0, len(ctxFields)+len(fields))
	merged = append(merged, ctxFields...)
	merged = append(merged, fields...)
	return merged
}

// Sync 刷新缓冲日志
func (l *ZapLogger) Sync() error {
	return l.zap.Sync()
}
