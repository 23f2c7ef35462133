package eeprom

import (
	"time"

	"github.com/moffa90/go-m24c64/memmap"
)

// Config holds the device configuration.
type Config struct {
	// ProgressCallback is called after each committed page (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Delay blocks between acknowledge polls
	Delay Delayer

	// PollInterval is the delay between two acknowledge polls in milliseconds
	PollInterval uint32

	// PollAttempts is the maximum number of acknowledge polls per page
	PollAttempts int

	// VerifyAfterWrite reads every page back after its write cycle
	VerifyAfterWrite bool
}

// WriteTimeout returns the write cycle budget implied by the poll settings.
func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.PollAttempts) * time.Duration(c.PollInterval) * time.Millisecond
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Delay:        SleepDelay{},
		PollInterval: uint32(memmap.PollInterval / time.Millisecond),
		PollAttempts: memmap.PollAttempts,
	}
}

// Option is a functional option for configuring the Device.
type Option func(*Config)

// WithProgressCallback sets a callback function to track write progress.
//
// Example:
//
//	dev := eeprom.New(bus, 0,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage())
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the device operations.
//
// Example:
//
//	dev := eeprom.New(bus, 0, eeprom.WithLogger(eeprom.NewSlogLogger(slog.Default())))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithDelay sets the delay source used between acknowledge polls.
// A nil Delayer is ignored.
//
// Example:
//
//	dev := eeprom.New(bus, 0, eeprom.WithDelay(board.Delay))
func WithDelay(d Delayer) Option {
	return func(c *Config) {
		if d != nil {
			c.Delay = d
		}
	}
}

// WithPollInterval sets the delay between acknowledge polls in milliseconds.
// Default is 1 ms.
func WithPollInterval(ms uint32) Option {
	return func(c *Config) {
		if ms > 0 {
			c.PollInterval = ms
		}
	}
}

// WithPollAttempts sets how many acknowledge polls a write cycle may take
// before Write fails with a WriteTimeoutError. Default is 10.
//
// Example:
//
//	dev := eeprom.New(bus, 0, eeprom.WithPollAttempts(20))
func WithPollAttempts(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.PollAttempts = n
		}
	}
}

// WithVerifyAfterWrite enables or disables reading every page back after its
// write cycle. Default is false.
func WithVerifyAfterWrite(verify bool) Option {
	return func(c *Config) {
		c.VerifyAfterWrite = verify
	}
}
