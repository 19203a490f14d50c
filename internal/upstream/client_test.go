package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/codequest-backend/internal/platform/ctxutil"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, baseURL string, retries int) *Client {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	c, err := NewClient(log, Config{
		BaseURL:        baseURL,
		MaxRetries:     retries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		ServiceToken:   "service-token",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestClientRetriesServiceUnavailableThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/questions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"_id":"q1","title":"Two Sum"}]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL, 2).ListQuestions(context.Background())
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("calls: want=2 got=%d", calls)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", got)
	}
	if data, _ := m["data"].([]any); len(data) != 1 {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestClientDoesNotRetryNotFound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"message":"no such user"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, 3).GetProfile(context.Background(), "ada")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected HTTPError 404, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("calls: want=1 got=%d", calls)
	}
}

func TestClientGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, 2).ListProgress(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("calls: want=3 got=%d", calls)
	}
}

func TestClientForwardsCallerTokenAndEscapesUsername(t *testing.T) {
	var gotAuth, gotPath, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.EscapedPath()
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"username":"a b"}`))
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL, 0)

	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{Token: "caller-token"})
	ctx = ctxutil.WithTraceData(ctx, &ctxutil.TraceData{RequestID: "req-1"})
	if _, err := c.GetProfile(ctx, "a b"); err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if gotAuth != "Bearer caller-token" {
		t.Fatalf("auth header: %q", gotAuth)
	}
	if gotPath != "/api/users/profile/a%20b" {
		t.Fatalf("path: %q", gotPath)
	}
	if gotReqID != "req-1" {
		t.Fatalf("request id: %q", gotReqID)
	}

	if _, err := c.ListLanguages(context.Background()); err != nil {
		t.Fatalf("ListLanguages: %v", err)
	}
	if gotAuth != "Bearer service-token" {
		t.Fatalf("service token fallback: %q", gotAuth)
	}
}

func TestClientStopsRetryingWhenContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	log, _ := logger.New("test")
	c, err := NewClient(log, Config{BaseURL: srv.URL, MaxRetries: 5, MaxBackoff: time.Minute})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	if _, err := c.ListUsers(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 900*time.Millisecond {
		t.Fatalf("retry sleep ignored context cancellation")
	}
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	log, _ := logger.New("test")
	if _, err := NewClient(log, Config{}); err == nil {
		t.Fatalf("expected error for empty base url")
	}
	if _, err := NewClient(log, Config{BaseURL: "not a url"}); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}
