package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "revdiff.log")

	logger, closer, err := New("info", path)
	require.NoError(t, err)

	logger.Info().Msg("started")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"started"`)
}

func TestNewAppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revdiff.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := New("info", path)
		require.NoError(t, err)
		logger.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New("chatty", "")
	assert.Error(t, err)
}

func TestNewLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revdiff.log")

	logger, closer, err := New("warn", path)
	require.NoError(t, err)
	logger.Info().Msg("quiet")
	logger.Warn().Msg("loud")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}
