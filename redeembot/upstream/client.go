// Package upstream talks to the game store API: player login, gift code
// redemption and activity check-in.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/topheroes-tools/redeembot/upstream"

const (
	DefaultBaseURL     = "https://topheroes.store.kopglobal.com"
	DefaultLoginPath   = "/api/v2/store/login/player"
	DefaultRedeemPath  = "/api/v2/store/redemption/redeem"
	DefaultCheckInPath = "/api/v2/store/activity/sign-in"
	DefaultSiteID      = 1028526
	DefaultProjectID   = 1028637
	DefaultTimeout     = 15 * time.Second

	// maxErrorBody caps how much of a non-2xx body is kept for diagnostics.
	maxErrorBody = 512
)

// Config holds the store endpoints and identifiers.
type Config struct {
	BaseURL     string
	LoginPath   string
	RedeemPath  string
	CheckInPath string
	SiteID      int
	ProjectID   int
	Timeout     time.Duration
}

// DefaultConfig returns the production store settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		LoginPath:   DefaultLoginPath,
		RedeemPath:  DefaultRedeemPath,
		CheckInPath: DefaultCheckInPath,
		SiteID:      DefaultSiteID,
		ProjectID:   DefaultProjectID,
		Timeout:     DefaultTimeout,
	}
}

// withDefaults fills every zero field from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.LoginPath == "" {
		c.LoginPath = d.LoginPath
	}
	if c.RedeemPath == "" {
		c.RedeemPath = d.RedeemPath
	}
	if c.CheckInPath == "" {
		c.CheckInPath = d.CheckInPath
	}
	if c.SiteID == 0 {
		c.SiteID = d.SiteID
	}
	if c.ProjectID == 0 {
		c.ProjectID = d.ProjectID
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	return c
}

// StatusError is returned when the store answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Client is the shared HTTP transport used by the authenticator and invokers.
type Client struct {
	http *http.Client
	cfg  Config
}

// NewClient creates a Client. A nil httpClient gets one with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	cfg = cfg.withDefaults()
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{http: httpClient, cfg: cfg}
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + path
}

// post sends body as JSON. authorization is forwarded verbatim when set.
// Non-2xx responses are drained and returned as *StatusError.
func (c *Client) post(ctx context.Context, path string, body any, authorization string) (_ *http.Response, err error) {
	url := c.url(path)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "POST "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", http.MethodPost),
			attribute.String("http.url", url),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	slog.Debug("Upstream call",
		slog.String("type", "upstream"),
		slog.String("url", url),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	return resp, nil
}
