package upstream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"SignalMix/internal/domain/models"
	drepo "SignalMix/internal/domain/repository"
	xhttp "SignalMix/pkg/http"
	applogger "SignalMix/pkg/logger"
)

// Client implements a SignalSource backed by the signal REST service.
type Client struct {
	baseURL  string
	http     *xhttp.Client
	attempts int
	backoff  time.Duration
	metrics  drepo.Metrics
	l        *applogger.Logger
}

// Option configures Client.
type Option func(*Client)

// New creates a new upstream signal client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		attempts: 1,
		backoff:  200 * time.Millisecond,
		l:        applogger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithTimeout(10 * time.Second))
	}
	return c
}

// WithHTTPClient sets the HTTP client; its timeout bounds each attempt.
func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetry sets the total number of attempts and the linear backoff step.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if attempts < 1 {
			attempts = 1
		}
		c.attempts = attempts
		c.backoff = backoff
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the structured logger.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.l = l
		}
	}
}

// Fetch downloads and decodes the table for id.
func (c *Client) Fetch(ctx context.Context, id models.SignalID) (*models.Table, error) {
	start := time.Now()
	url := fmt.Sprintf("%s/signals/%d", c.baseURL, id)

	body, err := c.getWithRetry(ctx, id, url)
	if c.metrics != nil {
		c.metrics.RecordLatency("upstream_fetch", time.Since(start).Seconds())
	}
	if err != nil {
		c.recordError()
		return nil, err
	}

	t, err := DecodeTable(body)
	if err != nil {
		c.recordError()
		c.l.Error("upstream decode failed",
			applogger.Int("signal", int(id)),
			applogger.Error(err),
		)
		return nil, &models.UpstreamError{SignalID: id, Err: err}
	}

	c.l.Debug("upstream fetch ok",
		applogger.Int("signal", int(id)),
		applogger.Int("rows", t.Len()),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return t, nil
}

// getWithRetry GETs url up to c.attempts times. Transport failures, 429 and
// 5xx responses are retried; other statuses fail immediately.
func (c *Client) getWithRetry(ctx context.Context, id models.SignalID, url string) ([]byte, error) {
	var err error
	for i := 1; i <= c.attempts; i++ {
		var body []byte
		err = c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    url,
		}, &body)
		if err == nil {
			c.recordFetch(id, "ok")
			return body, nil
		}
		c.recordFetch(id, "error")

		var se *xhttp.StatusError
		isStatus := errors.As(err, &se)
		uerr := &models.UpstreamError{SignalID: id, Err: err}
		if isStatus {
			uerr.Status = se.Code
		}
		if (isStatus && !se.Temporary()) || i == c.attempts || ctx.Err() != nil {
			return nil, uerr
		}

		wait := time.Duration(i) * c.backoff
		c.l.Warn("upstream fetch retry",
			applogger.Int("signal", int(id)),
			applogger.Int("attempt", i),
			applogger.Float64("backoff_seconds", wait.Seconds()),
			applogger.Error(err),
		)
		// simple backoff
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, &models.UpstreamError{SignalID: id, Err: ctx.Err()}
		}
	}
	return nil, &models.UpstreamError{SignalID: id, Err: err}
}

func (c *Client) recordFetch(id models.SignalID, outcome string) {
	if c.metrics != nil {
		c.metrics.RecordFetch(id, outcome)
	}
}

func (c *Client) recordError() {
	if c.metrics != nil {
		c.metrics.RecordError("upstream")
	}
}

var _ drepo.SignalSource = (*Client)(nil)
