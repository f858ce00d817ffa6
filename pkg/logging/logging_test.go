package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := NewWithWriter(buf, "info", "json")
	require.Nil(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("step", "exchange").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"step":"exchange"`)
}

func TestBadConfig(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, "loud", "json")
	assert.NotNil(t, err)

	_, err = NewWithWriter(&bytes.Buffer{}, "info", "xml")
	assert.NotNil(t, err)
}
