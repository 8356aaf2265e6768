package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/logging"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/config"
)

func TestLog_WritesLevelMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewZerologLogger(zerolog.New(&buf))

	logger.Log("WARNING", "skipping crew without archetype", map[string]interface{}{
		"crew_id": 7,
	})

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "skipping crew without archetype", event["message"])
	assert.Equal(t, float64(7), event["crew_id"])
}

func TestLog_RespectsConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Log("DEBUG", "hidden", nil)

	assert.Empty(t, buf.String())
}

func TestNewFromConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sttc.log")
	logger, err := logging.NewFromConfig(&config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	})
	require.NoError(t, err)

	logger.Log("INFO", "session opened", map[string]interface{}{"session_id": "abc"})
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session_id":"abc"`)
}

func TestNewFromConfig_InvalidLevel(t *testing.T) {
	_, err := logging.NewFromConfig(&config.LoggingConfig{Level: "loud", Format: "json", Output: "stderr"})

	assert.Error(t, err)
}
