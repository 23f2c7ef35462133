package eeprom

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	dev := New(newFakeBus(), 0, WithLogger(logger))
	require.NoError(t, dev.Write(0x0040, []byte{1, 2, 3}))

	out := buf.String()
	assert.Contains(t, out, "component=eeprom")
	assert.Contains(t, out, "msg=\"page committed\"")
	assert.Contains(t, out, "address=0x0040")
	assert.Contains(t, out, "polls=1")
	assert.Contains(t, out, "msg=\"write complete\"")
}

func TestSlogLoggerDefault(t *testing.T) {
	assert.NotNil(t, NewSlogLogger(nil))
}
