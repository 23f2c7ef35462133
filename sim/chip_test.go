package sim

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-m24c64/eeprom"
	"github.com/moffa90/go-m24c64/memmap"
)

func newChip(t *testing.T, opts ...Option) *Chip {
	t.Helper()
	c, err := New(0, opts...)
	require.NoError(t, err)
	return c
}

func TestNewChip(t *testing.T) {
	c, err := New(5)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x55), c.Address())
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, memmap.Capacity), c.Snapshot())

	_, err = New(8)
	assert.Error(t, err)
}

func TestChipPageWriteWrapsInsidePage(t *testing.T) {
	c := newChip(t, WithBusyPolls(0))

	// 4 bytes at 0x3E: only two fit before the boundary.
	require.NoError(t, c.Write(0x50, []byte{0x00, 0x3E, 1, 2, 3, 4}))

	mem := c.Snapshot()
	assert.Equal(t, []byte{1, 2}, mem[0x3E:0x40])
	assert.Equal(t, []byte{3, 4}, mem[0x20:0x22], "wrapped to page start")
	assert.Equal(t, byte(0xFF), mem[0x40], "next page untouched")
}

func TestChipBusyAfterWrite(t *testing.T) {
	c := newChip(t, WithBusyPolls(2))

	require.NoError(t, c.Write(0x50, []byte{0x00, 0x00, 0xAA}))
	assert.ErrorIs(t, c.Write(0x50, nil), eeprom.ErrNack)
	assert.ErrorIs(t, c.WriteRead(0x50, []byte{0, 0}, make([]byte, 1)), eeprom.ErrNack)
	assert.NoError(t, c.Write(0x50, nil))

	st := c.Stats()
	assert.Equal(t, 1, st.Writes)
	assert.Equal(t, 2, st.Nacks)
	assert.Equal(t, 1, st.Probes)
}

func TestChipWrongAddress(t *testing.T) {
	c := newChip(t)

	err := c.Write(0x51, nil)
	assert.ErrorIs(t, err, ErrNoDevice)
	assert.NotErrorIs(t, err, eeprom.ErrNack)
}

func TestChipSequentialReadWraps(t *testing.T) {
	c := newChip(t)
	require.NoError(t, c.Load(memmap.Capacity-2, []byte{0xA1, 0xA2}))
	require.NoError(t, c.Load(0, []byte{0xB1, 0xB2}))

	buf := make([]byte, 4)
	require.NoError(t, c.WriteRead(0x50, memmap.BuildAddressFrame(memmap.Capacity-2), buf))
	assert.Equal(t, []byte{0xA1, 0xA2, 0xB1, 0xB2}, buf)

	// The pointer keeps counting for a read without address.
	next := make([]byte, 1)
	require.NoError(t, c.WriteRead(0x50, nil, next))
	assert.Equal(t, byte(0xFF), next[0])
}

func TestChipFault(t *testing.T) {
	c := newChip(t)
	fault := errors.New("SDA stuck low")

	c.SetFault(fault)
	assert.ErrorIs(t, c.Write(0x50, nil), fault)
	c.SetFault(nil)
	assert.NoError(t, c.Write(0x50, nil))
}

func TestChipLoadOutOfRange(t *testing.T) {
	c := newChip(t)
	assert.True(t, memmap.IsRangeError(c.Load(memmap.Capacity-1, []byte{1, 2})))
}

func TestDelay(t *testing.T) {
	var d Delay
	d.DelayMs(1)
	d.DelayMs(4)

	assert.Equal(t, []uint32{1, 4}, d.Calls())
	assert.Equal(t, uint32(5), d.Total())
}
