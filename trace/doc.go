// Package trace records bus transactions for offline inspection.
//
// Wrap any eeprom.Bus with WrapBus to capture every transaction the driver
// issues, including acknowledge polls and the NACKs of a busy chip:
//
//	rec, err := trace.NewFileRecorder("session.m24trace")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rec.Close()
//
//	dev := eeprom.New(trace.WrapBus(bus, rec), 0)
//
// Trace files are a stream of CBOR-encoded Events with integer keys. Read
// them back with a Reader, optionally filtered:
//
//	r, err := trace.NewFilteredReader("session.m24trace", trace.Filter{OnlyNacks: true})
//	events, err := r.ReadAll()
//
// SlogRecorder writes events to a log/slog logger instead, which is handy
// while developing against real hardware.
package trace
