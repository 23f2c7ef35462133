package eeprom

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransportError(t *testing.T) {
	cause := errors.New("arbitration lost")
	err := &TransportError{Op: "write", Address: 0x0120, Err: cause}

	assert.Equal(t, "write at 0x0120: arbitration lost", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsTransportError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsWriteTimeout(err))
}

func TestTransportErrorUnwrapsNack(t *testing.T) {
	err := &TransportError{Op: "write", Address: 0, Err: fmt.Errorf("addr 0x50: %w", ErrNack)}
	assert.ErrorIs(t, err, ErrNack)
}

func TestWriteTimeoutError(t *testing.T) {
	err := &WriteTimeoutError{Address: 0x0040, Attempts: 10, Timeout: 10 * time.Millisecond}

	msg := err.Error()
	assert.Contains(t, msg, "0x0040")
	assert.Contains(t, msg, "10 polls")
	assert.Contains(t, msg, "10ms")
	assert.True(t, IsWriteTimeout(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsTransportError(err))
}

func TestVerifyError(t *testing.T) {
	err := &VerifyError{Address: 0x1FFF, Expected: 0xAB, Actual: 0xCD}
	assert.Equal(t, "verify mismatch at 0x1FFF: expected 0xAB, got 0xCD", err.Error())
}

func TestErrorTypes(t *testing.T) {
	var _ error = &TransportError{}
	var _ error = &WriteTimeoutError{}
	var _ error = &VerifyError{}
}
