package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/resend/resend-cli/internal/audit"
	"github.com/resend/resend-cli/internal/validation"
	"github.com/resend/resend-cli/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "re_test_1234567890"

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(testKey, append([]Option{WithBaseURL(server.URL)}, opts...)...)
	require.NoError(t, err)
	return client
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// callVerb exercises one verb against the client and returns its error
func callVerb(ctx context.Context, c *Client, method string) error {
	var out map[string]interface{}
	switch method {
	case http.MethodGet:
		return c.Get(ctx, "/things", &out)
	case http.MethodPost:
		return c.Post(ctx, "/things", map[string]string{"a": "b"}, &out)
	case http.MethodPatch:
		return c.Patch(ctx, "/things/1", map[string]string{"a": "b"}, &out)
	default:
		return c.Delete(ctx, "/things/1")
	}
}

var verbs = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}

func TestNew(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	client, err := New(testKey)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)

	client, err = New(testKey, WithBaseURL("http://localhost:1234/"), WithTimeouts(time.Second, 5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1234", client.BaseURL())
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	assert.Equal(t, time.Second, client.connectTimeout)
}

func TestNewTransport(t *testing.T) {
	tr := newTransport(3 * time.Second)
	assert.Equal(t, 3*time.Second, tr.TLSHandshakeTimeout)
	assert.NotNil(t, tr.DialContext)
}

func TestClient_BearerHeaderOnEveryVerb(t *testing.T) {
	for _, method := range verbs {
		t.Run(method, func(t *testing.T) {
			var gotAuth, gotMethod string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotMethod = r.Method
				w.WriteHeader(http.StatusOK)
				_, _ = io.WriteString(w, `{}`)
			})

			require.NoError(t, callVerb(context.Background(), client, method))
			assert.Equal(t, "Bearer "+testKey, gotAuth)
			assert.Equal(t, method, gotMethod)
		})
	}
}

func TestClient_RequestBody(t *testing.T) {
	var gotBody map[string]interface{}
	var gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"id":"e_1"}`)
	})

	resp, err := client.SendEmail(context.Background(), &types.SendEmailRequest{
		From:    "Acme <onboarding@acme.dev>",
		To:      []string{"a@example.com"},
		Subject: "Hello",
		Text:    "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "e_1", resp.ID)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Hello", gotBody["subject"])
	assert.Equal(t, "hi", gotBody["text"])
	assert.NotContains(t, gotBody, "html")
	assert.NotContains(t, gotBody, "cc")
	assert.NotContains(t, gotBody, "scheduled_at")
}

func TestClient_ClassificationAppliesToEveryVerb(t *testing.T) {
	tests := []struct {
		status int
		body   string
		kind   Kind
		detail string
	}{
		{401, `{"message":"bad key"}`, KindAuthentication, ""},
		{403, "", KindAuthentication, ""},
		{404, "email not found", KindNotFound, "email not found"},
		{429, "", KindRateLimited, ""},
		{400, "missing field", KindValidation, "missing field"},
		{422, `{"message":"invalid"}`, KindValidation, `{"message":"invalid"}`},
		{500, "internal", KindUnclassified, "internal"},
		{502, "", KindUnclassified, ""},
	}

	for _, method := range verbs {
		for _, tt := range tests {
			t.Run(method+"/"+http.StatusText(tt.status), func(t *testing.T) {
				client := newTestClient(t, respond(tt.status, tt.body))

				err := callVerb(context.Background(), client, method)

				var apiErr *Error
				require.True(t, errors.As(err, &apiErr), "expected *Error, got %T: %v", err, err)
				assert.Equal(t, tt.kind, apiErr.Kind)
				assert.Equal(t, tt.status, apiErr.StatusCode)
				assert.Equal(t, tt.detail, apiErr.Detail)
			})
		}
	}
}

func TestClient_NotFoundCarriesBody(t *testing.T) {
	client := newTestClient(t, respond(404, "email not found"))

	_, err := client.GetEmail(context.Background(), "e_missing")
	assert.Equal(t, &Error{Kind: KindNotFound, StatusCode: 404, Detail: "email not found"}, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_SuccessStatuses(t *testing.T) {
	tests := []struct {
		method  string
		status  int
		success bool
	}{
		{http.MethodGet, 200, true},
		{http.MethodPost, 201, true},
		{http.MethodPatch, 200, true},
		{http.MethodDelete, 200, true},
		{http.MethodDelete, 204, true},
		{http.MethodGet, 204, false},
		{http.MethodPost, 202, false},
		{http.MethodDelete, 201, false},
	}

	for _, tt := range tests {
		t.Run(tt.method+"/"+http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.status != http.StatusNoContent {
					_, _ = io.WriteString(w, `{}`)
				}
			})

			err := callVerb(context.Background(), client, tt.method)
			if tt.success {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, KindUnclassified, KindOf(err))
		})
	}
}

func TestClient_OptionalFieldsDecodeAsAbsent(t *testing.T) {
	client := newTestClient(t, respond(200, `{"id":"e_1","to":["a@example.com"]}`))

	email, err := client.GetEmail(context.Background(), "e_1")
	require.NoError(t, err)
	assert.Equal(t, "e_1", email.ID)
	assert.Nil(t, email.Subject)
	assert.Nil(t, email.From)
	assert.Nil(t, email.LastEvent)
	assert.Nil(t, email.CreatedAt)
	assert.Equal(t, []string{"a@example.com"}, email.To)
}

func TestClient_ContractDrift(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"html body", "<html>maintenance</html>"},
		{"wrong type", `{"id": 42}`},
		{"empty object", `{}`},
		{"null", `null`},
		{"empty id", `{"id":"","subject":"Hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, respond(200, tt.body))

			email, err := client.GetEmail(context.Background(), "e_1")
			assert.Nil(t, email)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "expected *DecodeError, got %T", err)
			assert.Equal(t, http.MethodGet, decodeErr.Method)
			assert.Equal(t, "/emails/e_1", decodeErr.Path)
			assert.Equal(t, Kind(0), KindOf(err))
		})
	}
}

func TestClient_ContractDriftOnLists(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"null", `null`},
		{"envelope without data", `{"object":"list"}`},
		{"null data", `{"data":null}`},
		{"unrelated object", `{"message":"ok"}`},
		{"item without name", `{"data":[{"id":"d_1"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, respond(200, tt.body))

			domains, err := client.ListDomains(context.Background())
			assert.Nil(t, domains)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "expected *DecodeError, got %T", err)
			assert.Equal(t, "/domains", decodeErr.Path)
		})
	}
}

func TestClient_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		call func(*Client) error
	}{
		{"send without id", `{"object":"email"}`, func(c *Client) error {
			_, err := c.SendEmail(context.Background(), &types.SendEmailRequest{From: "a@acme.dev", To: []string{"b@acme.dev"}, Subject: "Hi"})
			return err
		}},
		{"template without name", `{"id":"tpl_1"}`, func(c *Client) error {
			_, err := c.GetTemplate(context.Background(), "tpl_1")
			return err
		}},
		{"api key without id", `{"name":"ci","token":"re_x"}`, func(c *Client) error {
			_, err := c.CreateAPIKey(context.Background(), &types.CreateAPIKeyRequest{Name: "ci"})
			return err
		}},
		{"email list item without id", `{"data":[{"subject":"Hi"}]}`, func(c *Client) error {
			_, err := c.ListEmails(context.Background())
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, respond(200, tt.body))

			var decodeErr *DecodeError
			assert.ErrorAs(t, tt.call(client), &decodeErr)
		})
	}

	client := newTestClient(t, respond(200, `{"data":[]}`))
	keys, err := client.ListAPIKeys(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}

func TestClient_DeleteIgnoresBody(t *testing.T) {
	client := newTestClient(t, respond(200, "not json at all"))
	assert.NoError(t, client.DeleteDomain(context.Background(), "d_1"))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}, WithTimeouts(0, 50*time.Millisecond))
	defer close(release)

	_, err := client.ListDomains(context.Background())
	assert.Equal(t, &Error{Kind: KindNetwork, Detail: "Request timeout"}, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := New(testKey, WithBaseURL(url))
	require.NoError(t, err)

	_, err = client.ListEmails(context.Background())

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.NotEmpty(t, apiErr.Detail)
	assert.NotEqual(t, "Request timeout", apiErr.Detail)
	assert.Zero(t, apiErr.StatusCode)
}

func TestClient_NoRetry(t *testing.T) {
	for _, status := range []int{429, 500, 503} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(status)
			})

			_, err := client.ListTemplates(context.Background())
			assert.Error(t, err)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestClient_InvalidIDNeverReachesNetwork(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := client.GetEmail(context.Background(), "../api-keys")
	assert.ErrorIs(t, err, validation.ErrInvalidInput)

	err = client.DeleteTemplate(context.Background(), "")
	assert.ErrorIs(t, err, validation.ErrInvalidInput)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClient_WithHTTPClient(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"data":[]}`)
	}))
	defer server.Close()

	client, err := New(testKey, WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	keys, err := client.ListAPIKeys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Equal(t, "Bearer "+testKey, gotAuth)
}

func TestClient_LoggerNeverSeesCredential(t *testing.T) {
	var buf bytes.Buffer
	client := newTestClient(t, respond(200, `{"data":[]}`), WithLogger(audit.NewLogger(&buf)))

	_, err := client.ListDomains(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"resource":"/domains"`)
	assert.NotContains(t, out, testKey)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}
