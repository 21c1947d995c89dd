package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.Output = []string{"stdout"}

	logger := InitLogger(cfg)
	require.NotNil(t, logger)

	// The fluent chain must be usable straight away
	logger.Debug().Str("check", "init").Msg("logger initialized")
}

func TestInitLoggerDefaultTimeFormat(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Logging.TimeFormat = ""

	logger := InitLogger(cfg)
	assert.NotNil(t, logger)
}

func TestGetLoggerSingleton(t *testing.T) {
	first := GetLogger()
	second := GetLogger()

	require.NotNil(t, first)
	assert.Equal(t, first, second)
}
