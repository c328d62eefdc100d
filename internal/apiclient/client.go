package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"admin/internal/domain"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// TokenSource supplies the bearer token of the session bound to ctx and drops
// that session when the API rejects the token.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
	Invalidate(ctx context.Context)
}

// Observer receives one call per upstream request.
type Observer interface {
	Observe(method, path string, status int, elapsed time.Duration)
}

// Config captures the knobs exposed to operators for the API client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
	UserAgent string
}

// Client performs authenticated requests against the marketplace API and
// unwraps {data, meta} envelopes. It never retries.
type Client struct {
	http     *resty.Client
	tokens   TokenSource
	limiter  *rate.Limiter
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithObserver attaches request instrumentation.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New wires a client. tokens may be nil for unauthenticated use.
func New(cfg Config, tokens TokenSource, opts ...Option) *Client {
	timeout := 15 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "Viveo-Admin/1.0"
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("User-Agent", ua).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0)

	c := &Client{http: hc, tokens: tokens}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query Params, body any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, domain.TransportError{Op: method + " " + path, Err: err}
		}
	}

	req := c.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query.Values())
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.SetAuthToken(token)
		}
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.observe(method, path, 0, time.Since(start))
		return nil, domain.TransportError{Op: method + " " + path, Err: err}
	}
	status := resp.StatusCode()
	c.observe(method, path, status, time.Since(start))

	if status == http.StatusUnauthorized && c.tokens != nil {
		c.tokens.Invalidate(ctx)
	}
	if status < 200 || status > 299 {
		return nil, errorFromStatus(status, resp.Body(), path)
	}
	return resp.Body(), nil
}

func (c *Client) observe(method, path string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.Observe(method, path, status, elapsed)
	}
}

func decode[T any](raw []byte) (domain.Envelope[T], error) {
	var env domain.Envelope[T]
	if len(strings.TrimSpace(string(raw))) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, domain.InternalError{Msg: "malformed response", Err: err}
	}
	return env, nil
}

func call[T any](ctx context.Context, c *Client, method, path string, query Params, body any) (domain.Envelope[T], error) {
	raw, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return domain.Envelope[T]{}, err
	}
	return decode[T](raw)
}

// Get performs GET path?query and unwraps the envelope.
func Get[T any](ctx context.Context, c *Client, path string, query Params) (domain.Envelope[T], error) {
	return call[T](ctx, c, http.MethodGet, path, query, nil)
}

// Post performs POST with an optional JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any) (domain.Envelope[T], error) {
	return call[T](ctx, c, http.MethodPost, path, nil, body)
}

// Patch performs PATCH with a partial JSON body.
func Patch[T any](ctx context.Context, c *Client, path string, body any) (domain.Envelope[T], error) {
	return call[T](ctx, c, http.MethodPatch, path, nil, body)
}

// Delete performs DELETE.
func Delete[T any](ctx context.Context, c *Client, path string) (domain.Envelope[T], error) {
	return call[T](ctx, c, http.MethodDelete, path, nil, nil)
}
