package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-m24c64/trace"
)

// recordSession writes one page through a traced simulator session and
// returns the trace path.
func recordSession(t *testing.T) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bus.trace")

	session := openSim(t, Target{Trace: path})
	require.NotEmpty(t, session.TraceSession)

	require.NoError(t, session.Device.Write(0x0040, []byte{0xAA, 0xBB}))
	buf := make([]byte, 2)
	require.NoError(t, session.Device.Read(0x0040, buf))
	require.NoError(t, session.Close())

	return path, session.TraceSession
}

func TestTraceFilterBuild(t *testing.T) {
	f, err := TraceFilter{Kind: "PROBE", Addr: "0x50", Nacks: true}.Build()
	require.NoError(t, err)
	require.NotNil(t, f.Kind)
	assert.Equal(t, trace.KindProbe, *f.Kind)
	require.NotNil(t, f.BusAddress)
	assert.Equal(t, uint8(0x50), *f.BusAddress)
	assert.True(t, f.OnlyNacks)

	_, err = TraceFilter{Kind: "bogus"}.Build()
	assert.Error(t, err)

	_, err = TraceFilter{Addr: "0x80"}.Build()
	assert.Error(t, err)
}

func TestRunTraceView(t *testing.T) {
	path, sessionID := recordSession(t)

	var out bytes.Buffer
	require.NoError(t, RunTraceView(path, trace.Filter{SessionID: sessionID}, &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	// One page write, three busy probes, one ready probe, one read.
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "mem=0x0040 data=AA BB")
	assert.Contains(t, lines[1], "NACK")
	assert.Contains(t, lines[5], "in=AA BB")

	kind := trace.KindProbe
	out.Reset()
	require.NoError(t, RunTraceView(path, trace.Filter{Kind: &kind, OnlyNacks: true}, &out))
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))
}

func TestRunTraceStats(t *testing.T) {
	path, _ := recordSession(t)

	var out bytes.Buffer
	require.NoError(t, RunTraceStats(path, &out))

	text := out.String()
	assert.Contains(t, text, "Events:       6")
	assert.Contains(t, text, "Sessions:     1")
	assert.Contains(t, text, "Writes:       1 (1 page writes, 2 bytes)")
	assert.Contains(t, text, "Probes:       4 (max 4 after one write)")
	assert.Contains(t, text, "NACKs:        3")
}

func TestRunTraceViewMissingFile(t *testing.T) {
	err := RunTraceView(filepath.Join(t.TempDir(), "none"), trace.Filter{}, &bytes.Buffer{})
	assert.Error(t, err)
}
