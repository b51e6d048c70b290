package logger

import (
	"fmt"
	"strings"
	"sync"
)

// TestLogger captures log messages in memory for assertions in tests.
type TestLogger struct {
	mu       sync.Mutex
	messages *[]LogMessage
	fields   map[string]interface{}
	err      error
}

// LogMessage is a single captured log entry.
type LogMessage struct {
	Level   string
	Message string
	Fields  map[string]interface{}
	Error   error
}

// NewTestLogger creates an empty test logger.
func NewTestLogger() *TestLogger {
	msgs := make([]LogMessage, 0)
	return &TestLogger{messages: &msgs, fields: map[string]interface{}{}}
}

func (l *TestLogger) log(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	*l.messages = append(*l.messages, LogMessage{
		Level:   level,
		Message: msg,
		Fields:  merged,
		Error:   l.err,
	})
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg, nil) }
func (l *TestLogger) Info(msg string)  { l.log("INFO", msg, nil) }
func (l *TestLogger) Warn(msg string)  { l.log("WARN", msg, nil) }
func (l *TestLogger) Error(msg string) { l.log("ERROR", msg, nil) }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.log("DEBUG", msg, fields)
}

func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.log("ERROR", msg, fields)
}

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &TestLogger{messages: l.messages, fields: merged, err: l.err}
}

func (l *TestLogger) WithError(err error) Logger {
	return &TestLogger{messages: l.messages, fields: l.fields, err: err}
}

// Messages returns a copy of all captured messages.
func (l *TestLogger) Messages() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogMessage, len(*l.messages))
	copy(out, *l.messages)
	return out
}

// MessagesByLevel returns captured messages with the given level.
func (l *TestLogger) MessagesByLevel(level string) []LogMessage {
	var out []LogMessage
	for _, m := range l.Messages() {
		if m.Level == level {
			out = append(out, m)
		}
	}
	return out
}

// HasMessage reports whether a message containing text was logged.
func (l *TestLogger) HasMessage(text string) bool {
	for _, m := range l.Messages() {
		if strings.Contains(m.Message, text) {
			return true
		}
	}
	return false
}

// String renders all captured messages, for debugging failed tests.
func (l *TestLogger) String() string {
	var b strings.Builder
	for _, m := range l.Messages() {
		fmt.Fprintf(&b, "[%s] %s", m.Level, m.Message)
		if len(m.Fields) > 0 {
			fmt.Fprintf(&b, " fields=%v", m.Fields)
		}
		if m.Error != nil {
			fmt.Fprintf(&b, " error=%v", m.Error)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
