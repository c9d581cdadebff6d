package message

// DefaultLogLimit is the number of messages a session retains for display.
const DefaultLogLimit = 250

// Log is an append-only message history bounded to a fixed number of entries.
// When full, the oldest entry is evicted.
type Log struct {
	limit   int
	entries []string
}

// NewLog creates a Log retaining at most limit entries. A non-positive limit
// uses DefaultLogLimit.
func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	return &Log{limit: limit, entries: make([]string, 0, limit)}
}

// Append adds msg, evicting the oldest entry when the log is full.
//
// Postcondition: Len() <= limit.
func (l *Log) Append(msg string) {
	if len(l.entries) == l.limit {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.limit-1]
	}
	l.entries = append(l.entries, msg)
}

// Entries returns a copy of the retained messages, oldest first.
func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained messages.
func (l *Log) Len() int { return len(l.entries) }

// Limit returns the retention bound.
func (l *Log) Limit() int { return l.limit }
