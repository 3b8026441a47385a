package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of logged event
type EventType string

const (
	// Request events
	EventRequest       EventType = "REQUEST"
	EventRequestFailed EventType = "REQUEST_FAILED"

	// Profile events
	EventProfileWrite  EventType = "PROFILE_WRITE"
	EventProfileDelete EventType = "PROFILE_DELETE"

	// System events
	EventConfigResolved EventType = "CONFIG_RESOLVED"
	EventError          EventType = "ERROR"
)

// Severity represents the severity level of an event
type Severity string

const (
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Event represents a single log entry
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Type      EventType              `json:"type"`
	Severity  Severity               `json:"severity"`
	Source    string                 `json:"source"`
	Profile   string                 `json:"profile,omitempty"`
	Resource  string                 `json:"resource,omitempty"`
	Action    string                 `json:"action"`
	Result    string                 `json:"result"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger writes events as JSON lines. A nil *Logger discards everything, so
// callers can pass one around unconditionally.
type Logger struct {
	mu      sync.Mutex
	encoder *json.Encoder
	closer  io.Closer
	now     func() time.Time
}

// NewLogger creates a logger writing to w
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		encoder: json.NewEncoder(w),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// NewFileLogger appends events to the file at path, creating it owner-only
func NewFileLogger(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304 - path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := NewLogger(file)
	logger.closer = file
	return logger, nil
}

// Enabled reports whether events are written
func (l *Logger) Enabled() bool {
	return l != nil
}

// Log writes an event
func (l *Logger) Log(event *Event) {
	if l == nil || event == nil {
		return
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}
	event.Details = sanitize(event.Details)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.encoder.Encode(event); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write log event: %v\n", err)
	}
}

// LogRequest logs a completed HTTP exchange
func (l *Logger) LogRequest(method, path string, status int, duration time.Duration, details map[string]interface{}) {
	if l == nil {
		return
	}

	severity := SeverityInfo
	result := fmt.Sprintf("%d", status)
	eventType := EventRequest
	if status >= 400 {
		severity = SeverityWarning
		eventType = EventRequestFailed
	}

	merged := map[string]interface{}{
		"status":      status,
		"duration_ms": duration.Milliseconds(),
	}
	for k, v := range details {
		merged[k] = v
	}

	l.Log(&Event{
		Type:     eventType,
		Severity: severity,
		Source:   "http",
		Resource: path,
		Action:   method,
		Result:   result,
		Details:  merged,
	})
}

// LogTransportError logs a request that never produced a response
func (l *Logger) LogTransportError(method, path string, duration time.Duration, err error) {
	if l == nil {
		return
	}

	l.Log(&Event{
		Type:     EventRequestFailed,
		Severity: SeverityError,
		Source:   "http",
		Resource: path,
		Action:   method,
		Result:   "NETWORK_ERROR",
		Details:  map[string]interface{}{"duration_ms": duration.Milliseconds()},
		Error:    err.Error(),
	})
}

// LogProfile logs a change to the stored profiles
func (l *Logger) LogProfile(eventType EventType, profile string, success bool, details map[string]interface{}) {
	if l == nil {
		return
	}

	result := "SUCCESS"
	severity := SeverityInfo
	if !success {
		result = "FAILED"
		severity = SeverityError
	}

	l.Log(&Event{
		Type:     eventType,
		Severity: severity,
		Source:   "profiles",
		Profile:  profile,
		Action:   string(eventType),
		Result:   result,
		Details:  details,
	})
}

// LogConfig logs the outcome of configuration resolution
func (l *Logger) LogConfig(profile string, details map[string]interface{}) {
	if l == nil {
		return
	}

	l.Log(&Event{
		Type:     EventConfigResolved,
		Severity: SeverityDebug,
		Source:   "config",
		Profile:  profile,
		Action:   "resolve",
		Result:   "OK",
		Details:  details,
	})
}

// LogError logs an error event
func (l *Logger) LogError(source string, err error, details map[string]interface{}) {
	if l == nil || err == nil {
		return
	}

	l.Log(&Event{
		Type:     EventError,
		Severity: SeverityError,
		Source:   source,
		Action:   "error",
		Result:   "ERROR",
		Error:    err.Error(),
		Details:  details,
	})
}

// Close releases the underlying file, if any
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.closer.Close()
}

// sanitize drops detail entries whose keys look sensitive
func sanitize(details map[string]interface{}) map[string]interface{} {
	if details == nil {
		return nil
	}

	sanitized := make(map[string]interface{}, len(details))
	for k, v := range details {
		if !isSensitiveKey(k) {
			sanitized[k] = v
		}
	}
	return sanitized
}

// isSensitiveKey checks if a key contains sensitive information
func isSensitiveKey(key string) bool {
	sensitiveKeys := []string{
		"password", "secret", "key", "token", "auth", "credential",
		"private", "passphrase", "signature", "cookie",
	}

	keyLower := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(keyLower, sensitive) {
			return true
		}
	}
	return false
}
