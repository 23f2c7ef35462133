package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/moffa90/go-m24c64/trace"
)

// TraceFilter holds the string flags of "trace view" before parsing.
type TraceFilter struct {
	Session string
	Kind    string
	Addr    string
	Nacks   bool
	Errors  bool
}

// Build converts the flags into a trace.Filter.
func (f TraceFilter) Build() (trace.Filter, error) {
	filter := trace.Filter{
		SessionID:  f.Session,
		OnlyNacks:  f.Nacks,
		OnlyErrors: f.Errors,
	}

	if f.Kind != "" {
		k, err := trace.ParseKind(strings.ToLower(f.Kind))
		if err != nil {
			return filter, err
		}
		filter.Kind = &k
	}

	if f.Addr != "" {
		a, err := ParseBusAddress(f.Addr)
		if err != nil {
			return filter, err
		}
		filter.BusAddress = &a
	}

	return filter, nil
}

// ParseBusAddress parses a 7-bit bus address such as 0x50.
func ParseBusAddress(s string) (uint8, error) {
	v, err := ParseAddress(s)
	if err != nil || v > 0x7F {
		return 0, fmt.Errorf("invalid bus address %q", s)
	}
	return uint8(v), nil
}

// RunTraceView prints every event in the trace file that matches filter.
func RunTraceView(path string, filter trace.Filter, w io.Writer) error {
	reader, err := trace.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		fmt.Fprintln(w, event)
	}
}

// RunTraceStats prints a summary of the trace file.
func RunTraceStats(path string, w io.Writer) error {
	reader, err := trace.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}

	st := trace.Summarize(events)

	fmt.Fprintf(w, "Events:       %d\n", st.Events)
	fmt.Fprintf(w, "Sessions:     %d\n", st.Sessions)
	if st.Events > 0 {
		fmt.Fprintf(w, "Time range:   %s - %s\n",
			st.First.Format("2006-01-02 15:04:05.000"), st.Last.Format("15:04:05.000"))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Writes:       %d (%d page writes, %d bytes)\n", st.Writes, st.PageWrites, st.BytesOut)
	fmt.Fprintf(w, "Reads:        %d (%d bytes)\n", st.Reads, st.BytesIn)
	fmt.Fprintf(w, "Probes:       %d (max %d after one write)\n", st.Probes, st.MaxPolls)
	fmt.Fprintf(w, "NACKs:        %d\n", st.Nacks)
	fmt.Fprintf(w, "Errors:       %d\n", st.Errors)
	fmt.Fprintf(w, "Bus time:     %s\n", st.BusTime)
	return nil
}
