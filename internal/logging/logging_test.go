package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupWriter("debug", "json", &buf))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Str("coin", "bitcoin").Msg("hello")

	assert.Contains(t, buf.String(), `"coin":"bitcoin"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetupWriter_Invalid(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, SetupWriter("loud", "json", &buf))
	assert.Error(t, SetupWriter("info", "xml", &buf))
}
