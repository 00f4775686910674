package logger_test

import (
	"bytes"
	"testing"

	"github.com/ostafen/efidisk/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(&buf, logger.WarnLevel)
	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept")
	log.Errorf("kept %d", 2)

	require.Equal(t, "[WARN] kept\n[ERROR] kept 2\n", buf.String())
}

func TestSubsystemTag(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(&buf, logger.InfoLevel).WithSubsystem("disk")
	log.Info("hello")

	require.Equal(t, "[INFO] disk: hello\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, logger.DebugLevel, logger.ParseLevel("DEBUG"))
	require.Equal(t, logger.ErrorLevel, logger.ParseLevel("ERROR"))
	// Unknown strings default to info.
	require.Equal(t, logger.InfoLevel, logger.ParseLevel("bogus"))
}
