package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn").Named("billing")

	l.Info().Msg("descartado")
	assert.Zero(t, buf.Len())

	l.Warn().Str("invoice", "A-00000001").Msg("anulada")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "billing", entry["component"])
	assert.Equal(t, "A-00000001", entry["invoice"])
	assert.Equal(t, "anulada", entry["message"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error().Msg("nada") })
}
