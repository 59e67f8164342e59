package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Levels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cases := map[int]zerolog.Level{
		0: zerolog.WarnLevel,
		1: zerolog.InfoLevel,
		2: zerolog.DebugLevel,
		5: zerolog.TraceLevel,
	}
	for verbosity, want := range cases {
		SetupLogger(verbosity, "")()
		assert.Equal(t, want, zerolog.GlobalLevel(), "verbosity %d", verbosity)
	}
}

func TestSetupLogger_WritesLogFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logFile := filepath.Join(t.TempDir(), "nested", "jdksw.log")

	closeLog := SetupLogger(1, logFile)
	logger := GetLogger("test")
	logger.Info().Msg("hello from test")
	closeLog()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"component":"test"`)
}
