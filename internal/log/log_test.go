package log

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger := NewLogger(verbose)
		assert.NotNil(t, logger)

		logger.Debug("debug message", "key", "value")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")
	}
}

func TestNewSlogAdapter(t *testing.T) {
	logger := NewSlogAdapter(slog.Default())
	assert.NotNil(t, logger)
	logger.Info("adapted")
}

func TestNopDiscardsEverything(t *testing.T) {
	logger := Nop()
	assert.NotNil(t, logger)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("dropped")
	logger.Error("dropped")
}

func TestGetLoggerReturnsStableInstance(t *testing.T) {
	Init(false)
	first := GetLogger()
	second := GetLogger()
	assert.Same(t, first, second)

	Init(true)
	assert.NotSame(t, first, GetLogger())
}
