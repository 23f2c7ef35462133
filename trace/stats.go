package trace

import "time"

// Stats summarises a set of events.
type Stats struct {
	Events     int
	Writes     int
	Reads      int
	Probes     int
	Nacks      int
	Errors     int
	BytesOut   int
	BytesIn    int
	Sessions   int
	BusTime    time.Duration
	First      time.Time
	Last       time.Time
	MaxPolls   int
	PageWrites int
}

// Summarize computes Stats over events. MaxPolls is the longest run of
// probes after a single page write.
func Summarize(events []Event) Stats {
	var st Stats
	sessions := make(map[string]struct{})
	polls := 0

	for i, e := range events {
		st.Events++
		sessions[e.SessionID] = struct{}{}
		st.BusTime += e.Duration

		if i == 0 || e.Timestamp.Before(st.First) {
			st.First = e.Timestamp
		}
		if e.Timestamp.After(st.Last) {
			st.Last = e.Timestamp
		}

		switch e.Kind {
		case KindWrite:
			st.Writes++
			if len(e.Out) > 2 {
				st.PageWrites++
				st.BytesOut += len(e.Out) - 2
			}
			polls = 0
		case KindWriteRead:
			st.Reads++
			st.BytesIn += len(e.In)
		case KindProbe:
			st.Probes++
			polls++
			if polls > st.MaxPolls {
				st.MaxPolls = polls
			}
		}

		if e.Nack {
			st.Nacks++
		} else if !e.Acked {
			st.Errors++
		}
	}

	st.Sessions = len(sessions)
	return st
}
