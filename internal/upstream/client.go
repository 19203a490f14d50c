package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/codequest-backend/internal/observability"
	"github.com/yungbote/codequest-backend/internal/platform/ctxutil"
	"github.com/yungbote/codequest-backend/internal/platform/httpx"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
)

const (
	pathUsers     = "/api/users"
	pathProfile   = "/api/users/profile/"
	pathQuestions = "/api/questions"
	pathProgress  = "/api/progress"
	pathLanguages = "/api/languages"
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// InitialBackoff doubles per retry, capped by MaxBackoff.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// ServiceToken authenticates calls made outside a request, such as
	// scheduled refreshes.
	ServiceToken string
}

// HTTPError is a non-2xx upstream response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := e.Body
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	return fmt.Sprintf("upstream http %d: %s", e.StatusCode, body)
}

func (e *HTTPError) HTTPStatusCode() int { return e.StatusCode }

// Client reads the user, question, progress and language collections from the
// platform's REST API. Responses are returned as decoded JSON.
type Client struct {
	log        *logger.Logger
	httpClient *http.Client
	baseURL    string
	maxRetries int
	backoff    time.Duration
	maxBackoff time.Duration
	token      string
}

func NewClient(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("missing UPSTREAM_BASE_URL")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_BASE_URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := cfg.InitialBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	maxBackoff := cfg.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = 10 * time.Second
	}
	return &Client{
		log:        log.With("client", "UpstreamClient"),
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		maxRetries: maxRetries,
		backoff:    backoff,
		maxBackoff: maxBackoff,
		token:      strings.TrimSpace(cfg.ServiceToken),
	}, nil
}

func (c *Client) ListUsers(ctx context.Context) (any, error) {
	return c.get(ctx, pathUsers)
}

func (c *Client) GetProfile(ctx context.Context, username string) (any, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username required")
	}
	return c.get(ctx, pathProfile+url.PathEscape(username))
}

func (c *Client) ListQuestions(ctx context.Context) (any, error) {
	return c.get(ctx, pathQuestions)
}

func (c *Client) ListProgress(ctx context.Context) (any, error) {
	return c.get(ctx, pathProgress)
}

func (c *Client) ListLanguages(ctx context.Context) (any, error) {
	return c.get(ctx, pathLanguages)
}

func (c *Client) get(ctx context.Context, path string) (any, error) {
	backoff := c.backoff
	start := time.Now()

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, path)
		if err == nil {
			observeUpstream(path, resp, nil, time.Since(start))
			var out any
			if len(strings.TrimSpace(string(raw))) == 0 {
				return nil, nil
			}
			if uErr := json.Unmarshal(raw, &out); uErr != nil {
				return nil, fmt.Errorf("upstream decode %s: %w", path, uErr)
			}
			return out, nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			observeUpstream(path, resp, err, time.Since(start))
			return nil, err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, c.maxBackoff)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("Upstream request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		if sErr := httpx.Sleep(ctx, sleepFor); sErr != nil {
			return nil, sErr
		}
		backoff *= 2
	}

	return nil, fmt.Errorf("unreachable retry loop")
}

func (c *Client) doOnce(ctx context.Context, path string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	token := ctxutil.BearerToken(ctx)
	if token == "" {
		token = c.token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if td := ctxutil.GetTraceData(ctx); td != nil && td.RequestID != "" {
		req.Header.Set("X-Request-ID", td.RequestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func observeUpstream(path string, resp *http.Response, err error, dur time.Duration) {
	metrics := observability.Current()
	if metrics == nil {
		return
	}
	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	} else if err == nil {
		status = "ok"
	}
	metrics.ObserveUpstream(routeLabel(path), status, dur)
}

// routeLabel keeps usernames out of metric labels.
func routeLabel(path string) string {
	if strings.HasPrefix(path, pathProfile) {
		return pathProfile + ":username"
	}
	return path
}
