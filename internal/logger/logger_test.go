package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info().Str("component", "tracker").Msg("hello")

	out := buf.String()
	require.Contains(t, out, `"component":"tracker"`)
	require.Contains(t, out, `"message":"hello"`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}
