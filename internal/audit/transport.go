package audit

import (
	"net/http"
	"time"
)

// Transport logs every round trip it forwards. Header values are never
// logged.
type Transport struct {
	Base   http.RoundTripper
	Logger *Logger
}

// NewTransport wraps base with request logging. With a nil logger, base is
// returned unchanged.
func NewTransport(base http.RoundTripper, logger *Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		return base
	}
	return &Transport{Base: base, Logger: logger}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Base.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		t.Logger.LogTransportError(req.Method, req.URL.Path, elapsed, err)
		return nil, err
	}

	details := map[string]interface{}{"host": req.URL.Host}
	if id := resp.Header.Get("X-Request-Id"); id != "" {
		details["request_id"] = id
	}
	t.Logger.LogRequest(req.Method, req.URL.Path, resp.StatusCode, elapsed, details)
	return resp, nil
}
