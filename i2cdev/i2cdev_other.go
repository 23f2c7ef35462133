//go:build !linux

package i2cdev

// Bus is unavailable on this platform.
type Bus struct{}

// Open returns ErrUnsupported.
func Open(n int) (*Bus, error) {
	return nil, ErrUnsupported
}

// OpenPath returns ErrUnsupported.
func OpenPath(path string) (*Bus, error) {
	return nil, ErrUnsupported
}

// Write returns ErrUnsupported.
func (b *Bus) Write(addr uint8, p []byte) error {
	return ErrUnsupported
}

// WriteRead returns ErrUnsupported.
func (b *Bus) WriteRead(addr uint8, w, r []byte) error {
	return ErrUnsupported
}

// Close does nothing.
func (b *Bus) Close() error {
	return nil
}
