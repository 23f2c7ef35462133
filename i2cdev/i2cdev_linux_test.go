//go:build linux

package i2cdev

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	"github.com/moffa90/go-m24c64/eeprom"
)

func TestMapErrno(t *testing.T) {
	for _, errno := range []unix.Errno{unix.ENXIO, unix.EREMOTEIO} {
		err := mapErrno(0x50, errno)
		assert.ErrorIs(t, err, eeprom.ErrNack, "errno %v", errno)
		assert.Contains(t, err.Error(), "0x50")
	}

	err := mapErrno(0x50, unix.ETIMEDOUT)
	assert.NotErrorIs(t, err, eeprom.ErrNack)
	assert.ErrorIs(t, err, unix.ETIMEDOUT)
}

func TestNewMsg(t *testing.T) {
	m := newMsg(0x57, flagRead, make([]byte, 3))
	assert.Equal(t, uint16(0x57), m.addr)
	assert.Equal(t, uint16(flagRead), m.flags)
	assert.Equal(t, uint16(3), m.len)
	assert.True(t, m.buf != nil)

	probe := newMsg(0x50, 0, nil)
	assert.Zero(t, probe.len)
	assert.True(t, probe.buf == nil)
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := OpenPath(filepath.Join(t.TempDir(), "i2c-99"))
	assert.Error(t, err)
	assert.Equal(t, "/dev/i2c-3", DevicePath(3))
}
