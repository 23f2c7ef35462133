package eeprom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubBus struct{ mock.Mock }

func (b *stubBus) Write(addr uint8, p []byte) error {
	return b.Called(addr, p).Error(0)
}

func (b *stubBus) WriteRead(addr uint8, w, r []byte) error {
	ret := b.Called(addr, w, r)
	if fill, ok := ret.Get(1).([]byte); ok {
		copy(r, fill)
	}
	return ret.Error(0)
}

type stubDelay struct{ mock.Mock }

func (d *stubDelay) DelayMs(ms uint32) { d.Called(ms) }

// A two-page write must alternate data and poll transactions, and a busy
// chip must be waited out before the next page goes on the bus.
func TestWriteTransactionOrder(t *testing.T) {
	bus := &stubBus{}
	delay := &stubDelay{}

	first := bus.On("Write", uint8(0x52), []byte{0x00, 0x1E, 0xA1, 0xA2}).Return(nil).Once()
	poll1 := bus.On("Write", uint8(0x52), []byte(nil)).Return(ErrNack).Once().NotBefore(first)
	delay.On("DelayMs", uint32(1)).Return().Once()
	poll2 := bus.On("Write", uint8(0x52), []byte(nil)).Return(nil).Once().NotBefore(poll1)
	second := bus.On("Write", uint8(0x52), []byte{0x00, 0x20, 0xA3}).Return(nil).Once().NotBefore(poll2)
	bus.On("Write", uint8(0x52), []byte(nil)).Return(nil).Once().NotBefore(second)

	dev := New(bus, 2, WithDelay(delay))
	require.NoError(t, dev.Write(0x001E, []byte{0xA1, 0xA2, 0xA3}))

	bus.AssertExpectations(t)
	delay.AssertExpectations(t)
}

func TestReadTransaction(t *testing.T) {
	bus := &stubBus{}
	bus.On("WriteRead", uint8(0x50), []byte{0x01, 0x00}, mock.AnythingOfType("[]uint8")).
		Return(nil, []byte{0xDE, 0xAD, 0xBE, 0xEF}).Once()

	dev := New(bus, 0)
	buf := make([]byte, 4)
	require.NoError(t, dev.Read(0x0100, buf))

	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, buf)
	bus.AssertExpectations(t)
	bus.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestDelayFunc(t *testing.T) {
	var got []uint32
	var d Delayer = DelayFunc(func(ms uint32) { got = append(got, ms) })

	d.DelayMs(3)
	d.DelayMs(1)
	assert.Equal(t, []uint32{3, 1}, got)
}
