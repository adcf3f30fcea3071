package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "secret-key",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
	})
	return client, server
}

func TestClient_FetchScoreboard_SendsKeyAndQuery(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		_, _ = w.Write([]byte(`{"events":[]}`))
	}, 0)

	raw, err := client.FetchScoreboard(context.Background())
	if err != nil {
		t.Fatalf("FetchScoreboard: %v", err)
	}
	if string(raw) != `{"events":[]}` {
		t.Fatalf("unexpected body %q", raw)
	}

	query := gotQuery.Load().(url.Values)
	if got := query["api_key"]; len(got) != 1 || got[0] != "secret-key" {
		t.Fatalf("api_key query = %v", got)
	}
	if got := query["seasontype"]; len(got) != 1 || got[0] != "2" {
		t.Fatalf("seasontype query = %v", got)
	}
	if got := query["groups"]; len(got) != 1 || got[0] != "all" {
		t.Fatalf("groups query = %v", got)
	}
	if got := query["limit"]; len(got) != 1 || got[0] != "1000" {
		t.Fatalf("limit query = %v", got)
	}
}

func TestClient_FetchStandings_QueryHasNoSeasonType(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		_, _ = w.Write([]byte(`{"children":[]}`))
	}, 0)

	if _, err := client.FetchStandings(context.Background()); err != nil {
		t.Fatalf("FetchStandings: %v", err)
	}

	query := gotQuery.Load().(url.Values)
	if _, ok := query["seasontype"]; ok {
		t.Fatal("standings request must not carry seasontype")
	}
	if got := query["groups"]; len(got) != 1 || got[0] != "all" {
		t.Fatalf("groups query = %v", got)
	}
}

func TestClient_NonRetryableStatusBecomesStatusError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, 2)

	_, err := client.FetchScoreboard(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var statusErr *usecase.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %v is not a StatusError", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Fatalf("Code = %d, want 404", statusErr.Code)
	}
	if !errors.Is(err, usecase.ErrUpstreamStatus) {
		t.Fatal("StatusError must match ErrUpstreamStatus")
	}
}

func TestClient_RetriesTransientStatusThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"events":[]}`))
	}, 2)

	if _, err := client.FetchScoreboard(context.Background()); err != nil {
		t.Fatalf("FetchScoreboard after retry: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("upstream called %d times, want 2", got)
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "secret-key",
		Timeout:    time.Second,
		MaxRetries: 0,
	})

	_, err := client.FetchScoreboard(context.Background())
	if !errors.Is(err, usecase.ErrNetwork) {
		t.Fatalf("error %v is not ErrNetwork", err)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("error leaks credential: %v", err)
	}
	if !strings.Contains(err.Error(), "api_key=REDACTED") && strings.Contains(err.Error(), "api_key=") {
		t.Fatalf("api_key not redacted: %v", err)
	}
}

func TestClient_InvalidJSONIsFormatError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}, 0)

	_, err := client.FetchScoreboard(context.Background())
	if !errors.Is(err, usecase.ErrFormat) {
		t.Fatalf("error %v is not ErrFormat", err)
	}
}

func TestClient_MissingAPIKeyIsConfigurationError(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://localhost:0", APIKey: ""})

	_, err := client.FetchScoreboard(context.Background())
	if !errors.Is(err, usecase.ErrConfiguration) {
		t.Fatalf("error %v is not ErrConfiguration", err)
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText(`Get "https://x/scoreboard?api_key=abc123&limit=5": timeout`, "abc123")
	if strings.Contains(got, "abc123") {
		t.Fatalf("credential survived sanitization: %q", got)
	}
	if !strings.Contains(got, "api_key=REDACTED") {
		t.Fatalf("expected redaction marker, got %q", got)
	}
}
