package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "", "info").Info("converted", "dimension", "length")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "converted", line["msg"])
		assert.Equal(t, "length", line["dimension"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "text", "warn").Info("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "text", "loud").Info("shown")
		assert.Contains(t, buf.String(), "shown")
	})
}
