package logger

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NivelYCampoService(t *testing.T) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	l := New(Config{Env: "production", Level: "warn", Service: "pharmacy-api"})
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())

	l.Warn().Msg("prueba")
	require.NoError(t, w.Close())

	var line map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&line))
	assert.Equal(t, "pharmacy-api", line["service"])
	assert.Equal(t, "prueba", line["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("cualquier-cosa"), "nivel desconocido degrada a info")
}
