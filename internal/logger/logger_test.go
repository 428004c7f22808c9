package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLevel(t *testing.T) {
	t.Cleanup(func() { Configure(Options{}) })

	Configure(Options{Level: "debug"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	Configure(Options{Level: "not-a-level"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	Configure(Options{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestWithFieldsJSON(t *testing.T) {
	t.Cleanup(func() { Configure(Options{}) })
	Configure(Options{Format: "json"})

	var buf bytes.Buffer
	SetOutput(&buf)

	ErrorWithFields("fetch failed", map[string]interface{}{"op": "ListJobs"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fetch failed", entry["msg"])
	assert.Equal(t, "ListJobs", entry["op"])
	assert.Equal(t, "error", entry["level"])
}
