package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLogRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.LogRequest("GET", "/emails", 200, 15*time.Millisecond, map[string]interface{}{
		"host":    "api.resend.com",
		"api_key": "re_should_not_appear",
	})
	logger.LogRequest("POST", "/emails", 422, time.Millisecond, nil)

	events := readEvents(t, &buf)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}

	if events[0].Type != EventRequest || events[0].Severity != SeverityInfo {
		t.Errorf("Unexpected first event: %+v", events[0])
	}
	if events[0].Resource != "/emails" || events[0].Action != "GET" || events[0].Result != "200" {
		t.Errorf("Unexpected request fields: %+v", events[0])
	}
	if _, ok := events[0].Details["api_key"]; ok {
		t.Error("Sensitive detail was logged")
	}
	if events[0].Details["host"] != "api.resend.com" {
		t.Errorf("Expected host detail, got %v", events[0].Details["host"])
	}

	if events[1].Type != EventRequestFailed || events[1].Severity != SeverityWarning {
		t.Errorf("Expected failed request event, got %+v", events[1])
	}

	if strings.Contains(buf.String(), "re_should_not_appear") {
		t.Error("Credential leaked into log output")
	}
}

func TestLogProfile(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.LogProfile(EventProfileWrite, "work", true, map[string]interface{}{"fingerprint": "ab12"})
	logger.LogProfile(EventProfileDelete, "old", false, nil)

	events := readEvents(t, &buf)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Profile != "work" || events[0].Result != "SUCCESS" {
		t.Errorf("Unexpected profile event: %+v", events[0])
	}
	if events[1].Result != "FAILED" || events[1].Severity != SeverityError {
		t.Errorf("Expected failed profile event, got %+v", events[1])
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.LogError("commands", errors.New("boom"), nil)
	logger.LogError("commands", nil, nil)

	events := readEvents(t, &buf)
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Error != "boom" || events[0].Type != EventError {
		t.Errorf("Unexpected error event: %+v", events[0])
	}
}

func TestEventIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.LogConfig("default", nil)
	logger.LogConfig("default", nil)

	events := readEvents(t, &buf)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].ID == "" || events[0].ID == events[1].ID {
		t.Errorf("Event IDs should be unique and non-empty: %q %q", events[0].ID, events[1].ID)
	}
	if events[0].Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestNilLogger(t *testing.T) {
	var logger *Logger

	if logger.Enabled() {
		t.Error("Nil logger should be disabled")
	}

	// None of these may panic
	logger.Log(&Event{Type: EventError})
	logger.LogRequest("GET", "/", 200, 0, nil)
	logger.LogTransportError("GET", "/", 0, errors.New("x"))
	logger.LogProfile(EventProfileWrite, "p", true, nil)
	logger.LogConfig("p", nil)
	logger.LogError("s", errors.New("x"), nil)
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nil logger returned %v", err)
	}
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resend.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	logger.LogConfig("default", nil)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Log file was not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	events := readEvents(t, bytes.NewBuffer(data))
	if len(events) != 1 || events[0].Type != EventConfigResolved {
		t.Errorf("Unexpected file contents: %s", data)
	}
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.LogProfile(EventProfileWrite, fmt.Sprintf("profile%d", id), true, nil)
		}(i)
	}
	wg.Wait()

	events := readEvents(t, &buf)
	if len(events) != 10 {
		t.Errorf("Expected 10 events, got %d", len(events))
	}
}

func TestTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "req_123")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var buf bytes.Buffer
	client := &http.Client{Transport: NewTransport(nil, NewLogger(&buf))}

	req, _ := http.NewRequest("GET", server.URL+"/domains/d_1", nil)
	req.Header.Set("Authorization", "Bearer re_secret_value")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	events := readEvents(t, &buf)
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Resource != "/domains/d_1" || events[0].Result != "404" {
		t.Errorf("Unexpected event: %+v", events[0])
	}
	if events[0].Details["request_id"] != "req_123" {
		t.Errorf("Expected request id, got %v", events[0].Details["request_id"])
	}
	if strings.Contains(buf.String(), "re_secret_value") {
		t.Error("Authorization header leaked into log output")
	}
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var buf bytes.Buffer
	client := &http.Client{Transport: NewTransport(nil, NewLogger(&buf))}

	if _, err := client.Get(url + "/emails"); err == nil {
		t.Fatal("Expected connection error")
	}

	events := readEvents(t, &buf)
	if len(events) != 1 || events[0].Result != "NETWORK_ERROR" {
		t.Errorf("Unexpected events: %+v", events)
	}
}

func TestNewTransportWithoutLogger(t *testing.T) {
	base := http.DefaultTransport
	if rt := NewTransport(base, nil); rt != base {
		t.Error("Expected base transport to be returned unchanged")
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key       string
		sensitive bool
	}{
		{"password", true},
		{"secret", true},
		{"api_key", true},
		{"token", true},
		{"Authorization", true},
		{"private_key", true},
		{"Set-Cookie", true},
		{"status", false},
		{"host", false},
		{"duration_ms", false},
		{"request_id", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			result := isSensitiveKey(tt.key)
			if result != tt.sensitive {
				t.Errorf("Expected %v for key '%s', got %v", tt.sensitive, tt.key, result)
			}
		})
	}
}

// Helper functions

func readEvents(t *testing.T, buf *bytes.Buffer) []*Event {
	t.Helper()

	var events []*Event
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var event Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("Failed to parse event %q: %v", scanner.Text(), err)
		}
		events = append(events, &event)
	}
	return events
}
