package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogName = "shop-backend"

// InitLogger writes to stdout and to a rotated <path>/<name>.log. Debug switches to
// console encoding at debug level; otherwise JSON at info.
func InitLogger(path, name string, debug bool) (*zap.Logger, error) {
	if path != "" {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, err
		}
	}
	if name == "" {
		name = defaultLogName
	}

	encoder, level := newEncoder(debug)
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, rotatingFile(filepath.Join(path, name+".log")), level),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.Fields(zap.String("app", name)),
	), nil
}

func newEncoder(debug bool) (zapcore.Encoder, zapcore.Level) {
	cfg := zap.NewProductionEncoderConfig()
	if debug {
		cfg = zap.NewDevelopmentEncoderConfig()
	}
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.CallerKey = "caller"
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	if debug {
		return zapcore.NewConsoleEncoder(cfg), zap.DebugLevel
	}
	return zapcore.NewJSONEncoder(cfg), zap.InfoLevel
}

func rotatingFile(filename string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // MB
		MaxBackups: 7,
		MaxAge:     28, // days
		Compress:   true,
	})
}
