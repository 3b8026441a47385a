package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// CapturedCall records one request received by the fake API
type CapturedCall struct {
	Method    string                 `json:"method"`
	Path      string                 `json:"path"`
	Auth      string                 `json:"auth"`
	Body      map[string]interface{} `json:"body,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Response is a canned reply
type Response struct {
	Status int
	Body   string
}

// Server is a fake Resend API. Every request is recorded and answered with
// the response registered for its route, or the fallback response.
type Server struct {
	*httptest.Server

	mu       sync.RWMutex
	calls    []CapturedCall
	routes   map[string]Response
	fallback Response
}

// NewServer starts a fake API answering unknown routes with status and body
func NewServer(status int, body string) *Server {
	s := &Server{
		routes:   make(map[string]Response),
		fallback: Response{Status: status, Body: body},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle registers a response for method and path
func (s *Server) Handle(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = Response{Status: status, Body: body}
}

// Calls returns a copy of the requests received so far
func (s *Server) Calls() []CapturedCall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CapturedCall(nil), s.calls...)
}

// Reset forgets captured calls
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	call := CapturedCall{
		Method:    r.Method,
		Path:      r.URL.Path,
		Auth:      r.Header.Get("Authorization"),
		Timestamp: time.Now(),
	}
	if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &call.Body)
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	resp, ok := s.routes[r.Method+" "+r.URL.Path]
	if !ok {
		resp = s.fallback
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}
