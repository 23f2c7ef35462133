package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExec(t *testing.T) {
	session := openSim(t, Target{})

	var out bytes.Buffer
	run := func(line string) string {
		out.Reset()
		assert.False(t, Exec(session, line, &out), line)
		return out.String()
	}

	assert.Empty(t, run("   "))
	assert.Contains(t, run("help"), "M24C64 Commands")

	assert.Contains(t, run("write 0x10 DE AD BE EF"), "wrote 4 bytes at 0x0010")
	assert.Contains(t, run("read 0x10 4"), "0010  DE AD BE EF")
	assert.Contains(t, run("verify 0x10 DEADBEEF"), "OK: 4 bytes match")
	assert.Contains(t, run("verify 0x10 DEADBEEE"), "verify mismatch at 0x0013")

	assert.Contains(t, run("fill 0x100 64 0"), "wrote 64 bytes at 0x0100 (2 page writes")
	assert.Equal(t, make([]byte, 64), session.Chip.Snapshot()[0x100:0x140])

	assert.Contains(t, run("stats"), "nacks=")
	assert.Contains(t, run("read"), "usage: read")
	assert.Contains(t, run("read 0x3000"), "beyond end of array")
	assert.Contains(t, run("frobnicate"), "Unknown command: frobnicate")

	out.Reset()
	assert.True(t, Exec(session, "exit", &out))
}

func TestExecBusyTimeout(t *testing.T) {
	session := openSim(t, Target{})

	var out bytes.Buffer
	require.False(t, Exec(session, "write 0 01", &out))

	out.Reset()
	Exec(session, "busy 50", &out)
	assert.Contains(t, out.String(), "NACK the next 50")

	// The page write itself is not acknowledged.
	out.Reset()
	Exec(session, "write 0 02", &out)
	assert.Contains(t, out.String(), "Error:")
}
