package control

const logMaxEntries = 40

// EventKind tags an event log entry for colouring.
type EventKind int

const (
	EventInfo EventKind = iota
	EventStrike
	EventRegenerate
	EventToggle
	EventError
)

// Event is a single line in the event log.
type Event struct {
	Time    float64 // scene clock, seconds
	Kind    EventKind
	Message string
}

// EventLog is a ring buffer of recent scene events shown by the hosts.
type EventLog struct {
	entries []Event
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]Event, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (l *EventLog) Add(t float64, kind EventKind, msg string) {
	l.entries[l.head] = Event{Time: t, Kind: kind, Message: msg}
	l.head = (l.head + 1) % logMaxEntries
	if l.count < logMaxEntries {
		l.count++
	}
}

// Len returns the number of stored entries.
func (l *EventLog) Len() int {
	return l.count
}

// Recent returns up to n entries in chronological order (oldest first).
// n <= 0 returns everything.
func (l *EventLog) Recent(n int) []Event {
	if n <= 0 || n > l.count {
		n = l.count
	}
	result := make([]Event, n)
	for i := 0; i < n; i++ {
		idx := (l.head - n + i + logMaxEntries) % logMaxEntries
		result[i] = l.entries[idx]
	}
	return result
}
