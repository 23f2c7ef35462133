package trace

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-m24c64/eeprom"
	"github.com/moffa90/go-m24c64/memmap"
)

// Bus wraps an eeprom.Bus and records every transaction.
type Bus struct {
	next      eeprom.Bus
	rec       Recorder
	sessionID string
	seq       atomic.Uint64
	now       func() time.Time
}

// WrapBus returns a Bus that forwards to next and records to rec. A nil rec
// records nothing.
func WrapBus(next eeprom.Bus, rec Recorder) *Bus {
	if rec == nil {
		rec = NoopRecorder{}
	}
	return &Bus{
		next:      next,
		rec:       rec,
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
}

// SessionID returns the identifier stamped on every event of this Bus.
func (b *Bus) SessionID() string {
	return b.sessionID
}

// Write forwards a write transaction. An empty p is recorded as a probe.
func (b *Bus) Write(addr uint8, p []byte) error {
	start := b.now()
	err := b.next.Write(addr, p)

	kind := KindWrite
	if len(p) == 0 {
		kind = KindProbe
	}
	b.record(start, kind, addr, p, nil, err)

	return err
}

// WriteRead forwards a write-read transaction.
func (b *Bus) WriteRead(addr uint8, w, r []byte) error {
	start := b.now()
	err := b.next.WriteRead(addr, w, r)

	var in []byte
	if err == nil {
		in = r
	}
	b.record(start, KindWriteRead, addr, w, in, err)

	return err
}

func (b *Bus) record(start time.Time, kind Kind, addr uint8, out, in []byte, err error) {
	end := b.now()
	event := Event{
		Timestamp:  end,
		SessionID:  b.sessionID,
		Seq:        b.seq.Add(1),
		Kind:       kind,
		BusAddress: addr,
		Out:        append([]byte(nil), out...),
		In:         append([]byte(nil), in...),
		Acked:      err == nil,
		Duration:   end.Sub(start),
	}
	if a, ok := memmap.DecodeAddress(out); ok {
		event.MemAddress = &a
	}
	if err != nil {
		event.Error = err.Error()
		event.Nack = errors.Is(err, eeprom.ErrNack)
	}

	b.rec.Record(event)
}

func hexByte(b uint8) string {
	return fmt.Sprintf("0x%02X", b)
}

func hexWord(w uint16) string {
	return fmt.Sprintf("0x%04X", w)
}

// Compile-time interface satisfaction check.
var _ eeprom.Bus = (*Bus)(nil)
