package rqlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewDefaultsToNopLogger(t *testing.T) {
	logger := New(Config{})
	assert.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewBuildsDevelopmentAndProductionLoggers(t *testing.T) {
	dev := New(Config{Style: StyleDevelopment, Level: zapcore.DebugLevel})
	assert.NotNil(t, dev)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	prod := New(Config{Style: StyleProduction, Level: zapcore.WarnLevel})
	assert.NotNil(t, prod)
	assert.False(t, prod.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, prod.Core().Enabled(zapcore.WarnLevel))
}

func TestFieldHelpersProduceNamedFields(t *testing.T) {
	assert.Equal(t, "address", Address("localhost:28015").Key)
	assert.Equal(t, "token", Token(1).Key)
	assert.Equal(t, "connection_id", ConnectionID(1).Key)
	assert.Equal(t, "generation", Generation(1).Key)
}
