// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs debug-level messages
	Debug(msg string, fields ...Field)

	// Info logs informational messages
	Info(msg string, fields ...Field)

	// Warn logs warning messages
	Warn(msg string, fields ...Field)

	// Error logs error messages
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (convenience function)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoOpLogger is a logger that does nothing (useful for tests)
type NoOpLogger struct{}

// Debug does nothing (no-op implementation)
func (n *NoOpLogger) Debug(_ string, _ ...Field) {}

// Info does nothing (no-op implementation)
func (n *NoOpLogger) Info(_ string, _ ...Field) {}

// Warn does nothing (no-op implementation)
func (n *NoOpLogger) Warn(_ string, _ ...Field) {}

// Error does nothing (no-op implementation)
func (n *NoOpLogger) Error(_ string, _ ...Field) {}

// LogEntry is a message captured by MemoryLogger
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// MemoryLogger keeps every message in memory so tests can assert on what was
// logged and in which order. It is not safe for concurrent use.
type MemoryLogger struct {
	Entries []LogEntry
}

// Debug records a debug-level message
func (m *MemoryLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }

// Info records an informational message
func (m *MemoryLogger) Info(msg string, fields ...Field) { m.record("info", msg, fields) }

// Warn records a warning
func (m *MemoryLogger) Warn(msg string, fields ...Field) { m.record("warn", msg, fields) }

// Error records an error
func (m *MemoryLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }

// Messages returns the recorded messages with the given text
func (m *MemoryLogger) Messages(msg string) []LogEntry {
	var out []LogEntry
	for _, e := range m.Entries {
		if e.Message == msg {
			out = append(out, e)
		}
	}
	return out
}

func (m *MemoryLogger) record(level, msg string, fields []Field) {
	entry := LogEntry{Level: level, Message: msg, Fields: make(map[string]interface{}, len(fields))}
	for _, f := range fields {
		entry.Fields[f.Key] = f.Value
	}
	m.Entries = append(m.Entries, entry)
}
