package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"0", 0, false},
		{"256", 256, false},
		{"0x100", 0x100, false},
		{"0X1FFF", 0x1FFF, false},
		{"0x2000", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAddress(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLength(t *testing.T) {
	n, err := ParseLength("8192")
	require.NoError(t, err)
	assert.Equal(t, 8192, n)

	_, err = ParseLength("8193")
	assert.Error(t, err)
}

func TestParseHex(t *testing.T) {
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	for _, in := range []string{"DEADBEEF", "de ad be ef", "de:ad:be:ef", "0xdeadbeef"} {
		got, err := ParseHex(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseHex("ABC")
	assert.Error(t, err)
}

func TestParseByte(t *testing.T) {
	b, err := ParseByte("0xFF")
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), b)

	b, err = ParseByte("7")
	require.NoError(t, err)
	assert.Equal(t, byte(7), b)

	_, err = ParseByte("256")
	assert.Error(t, err)
}

func TestParseBusAddress(t *testing.T) {
	a, err := ParseBusAddress("0x50")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x50), a)

	_, err = ParseBusAddress("0x80")
	assert.Error(t, err)
}

func TestHexDump(t *testing.T) {
	data := append([]byte("Hello, EEPROM!"), 0x00, 0xFF, 0x41)

	var buf bytes.Buffer
	HexDump(&buf, 0x0100, data)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "0100  48 65 6C 6C 6F"))
	assert.True(t, strings.HasSuffix(lines[0], "|Hello, EEPROM!..|"))
	assert.True(t, strings.HasPrefix(lines[1], "0110  41"))
	assert.True(t, strings.HasSuffix(lines[1], "|A|"))

	// Rows line up regardless of length.
	assert.Equal(t, strings.Index(lines[0], "|"), strings.Index(lines[1], "|"))
}
