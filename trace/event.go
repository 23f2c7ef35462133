package trace

import (
	"fmt"
	"time"
)

// Event is one bus transaction.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the transaction completed (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the WrapBus instance that recorded the event (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Seq numbers events within a session, starting at 1.
	Seq uint64 `cbor:"3,keyasint"`

	// Kind classifies the transaction.
	Kind Kind `cbor:"4,keyasint"`

	// BusAddress is the 7-bit device address.
	BusAddress uint8 `cbor:"5,keyasint"`

	// MemAddress is the memory address carried in the first two bytes, if any.
	MemAddress *uint16 `cbor:"6,keyasint,omitempty"`

	// Out holds the bytes written, including the memory address.
	Out []byte `cbor:"7,keyasint,omitempty"`

	// In holds the bytes read by a write-read transaction.
	In []byte `cbor:"8,keyasint,omitempty"`

	// Acked is true when the transaction completed without error.
	Acked bool `cbor:"9,keyasint"`

	// Nack is true when the device did not acknowledge its address.
	Nack bool `cbor:"12,keyasint,omitempty"`

	// Error is the transport error text, empty on success.
	Error string `cbor:"10,keyasint,omitempty"`

	// Duration is how long the transaction took.
	Duration time.Duration `cbor:"11,keyasint"`
}

// Kind is the transaction type.
type Kind uint8

const (
	// KindWrite is a write carrying data or an address.
	KindWrite Kind = 0
	// KindWriteRead is an address write followed by a read.
	KindWriteRead Kind = 1
	// KindProbe is an address-only acknowledge poll.
	KindProbe Kind = 2
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWrite:
		return "write"
	case KindWriteRead:
		return "write-read"
	case KindProbe:
		return "probe"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "write":
		return KindWrite, nil
	case "write-read", "read":
		return KindWriteRead, nil
	case "probe", "poll":
		return KindProbe, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind %q", s)
	}
}

// String formats the event on one line.
func (e Event) String() string {
	s := fmt.Sprintf("%s #%d %-10s dev=0x%02X", e.Timestamp.Format("15:04:05.000000"), e.Seq, e.Kind, e.BusAddress)
	if e.MemAddress != nil {
		s += fmt.Sprintf(" mem=0x%04X", *e.MemAddress)
	}
	if len(e.Out) > 2 {
		s += fmt.Sprintf(" data=% X", e.Out[2:])
	}
	if len(e.In) > 0 {
		s += fmt.Sprintf(" in=% X", e.In)
	}
	switch {
	case e.Nack:
		s += " NACK"
	case e.Error != "":
		s += " ERR " + e.Error
	}
	return s
}
