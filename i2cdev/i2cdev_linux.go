//go:build linux

package i2cdev

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/moffa90/go-m24c64/eeprom"
)

// ioctl numbers and message flags from <linux/i2c-dev.h> and <linux/i2c.h>.
const (
	ioctlRDWR  = 0x0707
	ioctlFuncs = 0x0705

	flagRead = 0x0001

	funcI2C = 0x00000001
)

// i2cMsg mirrors struct i2c_msg.
type i2cMsg struct {
	addr  uint16
	flags uint16
	len   uint16
	buf   unsafe.Pointer
}

// rdwrData mirrors struct i2c_rdwr_ioctl_data.
type rdwrData struct {
	msgs  *i2cMsg
	nmsgs uint32
}

// Bus is an open /dev/i2c-N adapter. It is safe for concurrent use; each
// transaction holds the adapter for its duration.
type Bus struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Open opens bus number n and checks that the adapter supports plain I2C
// transfers.
func Open(n int) (*Bus, error) {
	return OpenPath(DevicePath(n))
}

// OpenPath opens the i2c-dev character device at path.
func OpenPath(path string) (*Bus, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var funcs uintptr
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), ioctlFuncs, uintptr(unsafe.Pointer(&funcs))); errno != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("query %s functionality: %w", path, errno)
	}
	if funcs&funcI2C == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%s: adapter does not support I2C_RDWR transfers", path)
	}

	return &Bus{file: f, path: path}, nil
}

// Write sends p to addr. An empty p is an address-only transaction.
func (b *Bus) Write(addr uint8, p []byte) error {
	msgs := []i2cMsg{newMsg(addr, 0, p)}
	err := b.transfer(msgs)
	runtime.KeepAlive(p)
	return err
}

// WriteRead sends w and reads len(r) bytes after a repeated start.
func (b *Bus) WriteRead(addr uint8, w, r []byte) error {
	msgs := []i2cMsg{
		newMsg(addr, 0, w),
		newMsg(addr, flagRead, r),
	}
	err := b.transfer(msgs)
	runtime.KeepAlive(w)
	runtime.KeepAlive(r)
	return err
}

// Close releases the adapter.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.file.Close()
}

// String returns the device path.
func (b *Bus) String() string {
	return b.path
}

func newMsg(addr uint8, flags uint16, p []byte) i2cMsg {
	m := i2cMsg{addr: uint16(addr), flags: flags, len: uint16(len(p))}
	if len(p) > 0 {
		m.buf = unsafe.Pointer(&p[0])
	}
	return m
}

func (b *Bus) transfer(msgs []i2cMsg) error {
	data := rdwrData{msgs: &msgs[0], nmsgs: uint32(len(msgs))}

	b.mu.Lock()
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, b.file.Fd(), ioctlRDWR, uintptr(unsafe.Pointer(&data)))
	b.mu.Unlock()
	runtime.KeepAlive(msgs)

	if errno != 0 {
		return mapErrno(msgs[0].addr, errno)
	}
	return nil
}

// mapErrno converts an ioctl failure. Adapter drivers report an address NACK
// as ENXIO or EREMOTEIO; everything else is a bus fault.
func mapErrno(addr uint16, errno unix.Errno) error {
	if errors.Is(errno, unix.ENXIO) || errors.Is(errno, unix.EREMOTEIO) {
		return fmt.Errorf("i2c 0x%02X: %w (%v)", addr, eeprom.ErrNack, errno)
	}
	return fmt.Errorf("i2c 0x%02X: %w", addr, errno)
}

// Compile-time interface satisfaction check.
var _ eeprom.Bus = (*Bus)(nil)
