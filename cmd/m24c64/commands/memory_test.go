package commands

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-m24c64/eeprom"
	"github.com/moffa90/go-m24c64/image"
	"github.com/moffa90/go-m24c64/memmap"
	"github.com/moffa90/go-m24c64/sim"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openSim(t *testing.T, target Target) *Session {
	t.Helper()
	target.Sim = true
	session, err := target.Open(discardLogger(), eeprom.WithDelay(&sim.Delay{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestTargetRejectsHardwareAddress(t *testing.T) {
	target := Target{Sim: true, HardwareAddress: 8}
	_, err := target.Open(discardLogger())
	assert.Error(t, err)
}

func TestTargetSimAddress(t *testing.T) {
	session := openSim(t, Target{HardwareAddress: 5})
	require.NotNil(t, session.Chip)
	assert.Equal(t, uint8(0x55), session.Device.Address())
	assert.Equal(t, uint8(0x55), session.Chip.Address())
	assert.Empty(t, session.TraceSession)
}

func TestRunWriteThenRead(t *testing.T) {
	session := openSim(t, Target{})

	var out bytes.Buffer
	require.NoError(t, RunWrite(session.Device, 0x1E, []byte{1, 2, 3, 4}, &out))
	assert.Contains(t, out.String(), "wrote 4 bytes at 0x001E (2 page writes")

	out.Reset()
	require.NoError(t, RunRead(session.Device, 0x1E, 4, &out))
	assert.True(t, strings.HasPrefix(out.String(), "001E  01 02 03 04"))

	assert.Equal(t, []byte{1, 2, 3, 4}, session.Chip.Snapshot()[0x1E:0x22])
}

func TestRunReadOutOfRange(t *testing.T) {
	session := openSim(t, Target{})

	err := RunRead(session.Device, 0x1FF0, 32, io.Discard)
	assert.True(t, memmap.IsRangeError(err))
}

func TestRunDumpToFile(t *testing.T) {
	session := openSim(t, Target{})
	require.NoError(t, session.Chip.Load(0x1000, []byte("marker")))

	path := filepath.Join(t.TempDir(), "dump.bin")
	var out bytes.Buffer
	require.NoError(t, RunDump(session.Device, path, &out))
	assert.Contains(t, out.String(), "dumped 8192 bytes")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, session.Chip.Snapshot(), data)
}

func TestRunDumpHex(t *testing.T) {
	session := openSim(t, Target{})

	var out bytes.Buffer
	require.NoError(t, RunDump(session.Device, "", &out))
	assert.Equal(t, memmap.Capacity/16, strings.Count(out.String(), "\n"))
}

const manifest = `
name: test-board
device: M24C64
regions:
  - name: id
    address: 0x0000
    hex: "CA FE"
  - name: table
    address: 0x001C
    fill: { length: 40, value: 0x5A }
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunProgram(t *testing.T) {
	session := openSim(t, Target{Verify: true})
	path := writeManifest(t, manifest)

	var out bytes.Buffer
	require.NoError(t, RunProgram(session.Device, path, &out))

	text := out.String()
	assert.Contains(t, text, "programming test-board: 2 regions, 42 bytes")
	assert.Contains(t, text, "[2/2] table")
	assert.Contains(t, text, "verified")

	snap := session.Chip.Snapshot()
	assert.Equal(t, []byte{0xCA, 0xFE}, snap[0:2])
	assert.Equal(t, bytes.Repeat([]byte{0x5A}, 40), snap[0x1C:0x1C+40])
	assert.Equal(t, byte(0xFF), snap[0x1C+40])
}

func TestRunProgramBadManifest(t *testing.T) {
	session := openSim(t, Target{})
	path := writeManifest(t, "name: x\nregions: []\n")

	err := RunProgram(session.Device, path, io.Discard)
	var le *image.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, path, le.File)
}

func TestRunProgramTimeout(t *testing.T) {
	path := writeManifest(t, manifest)

	// A chip that never finishes its write cycle.
	stuck, err := sim.New(0, sim.WithBusyPolls(1000))
	require.NoError(t, err)
	dev := eeprom.New(stuck, 0, eeprom.WithDelay(&sim.Delay{}))

	err = RunProgram(dev, path, io.Discard)
	assert.True(t, eeprom.IsWriteTimeout(err))
}
