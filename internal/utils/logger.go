package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logSinkURL = "stderr"

// NewApplicationLogger constructs a console logger on stderr at info level.
func NewApplicationLogger() (*zap.Logger, error) {
	return NewApplicationLoggerWithLevel(zapcore.InfoLevel)
}

// NewApplicationLoggerWithLevel constructs a console logger on stderr that
// writes the level and message only, without timestamps or callers.
func NewApplicationLoggerWithLevel(level zapcore.Level) (*zap.Logger, error) {
	sink, _, openError := zap.Open(logSinkURL)
	if openError != nil {
		return nil, openError
	}
	encoderConfig := zapcore.EncoderConfig{
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.ErrorOutput(sink)), nil
}
