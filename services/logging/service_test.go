package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewService(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		service, err := NewService(Config{Level: Info, Format: "json", OutputPath: "stdout"})
		require.NoError(t, err)
		assert.NotNil(t, service.Logger())
	})

	t.Run("console format", func(t *testing.T) {
		service, err := NewService(Config{Level: Debug, Format: "console", OutputPath: "stdout"})
		require.NoError(t, err)
		assert.NotNil(t, service.Logger())
	})
}

func TestNilServiceIsSafe(t *testing.T) {
	var service *Service

	// Services take an optional logger; every method must tolerate nil.
	service.Debug("debug")
	service.Info("info", zap.String("k", "v"))
	service.Warn("warn")
	service.Error("error")
	assert.Nil(t, service.Logger())
	assert.Nil(t, service.With(zap.String("k", "v")))
	assert.NoError(t, service.Sync())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected zapcore.Level
	}{
		{Debug, zapcore.DebugLevel},
		{Info, zapcore.InfoLevel},
		{Warn, zapcore.WarnLevel},
		{Error, zapcore.ErrorLevel},
		{LogLevel("bogus"), zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLogLevel(tt.level), "level %q", tt.level)
	}
}
