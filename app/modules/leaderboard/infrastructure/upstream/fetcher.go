package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// maxBodyBytes bounds how much of an upstream body is read per attempt.
const maxBodyBytes = 32 << 20

// RetryPolicy controls how often and how patiently a request is retried.
type RetryPolicy struct {
	MaxAttempts    int
	Backoff        time.Duration
	Multiplier     float64
	MaxBackoff     time.Duration
	Jitter         float64 // randomization factor in [0, 1)
	AttemptTimeout time.Duration
}

// DefaultRetryPolicy is three attempts one second apart, each bounded at fifteen seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		Backoff:        time.Second,
		Multiplier:     2,
		MaxBackoff:     10 * time.Second,
		Jitter:         0.2,
		AttemptTimeout: 15 * time.Second,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.Backoff
	b.Multiplier = p.Multiplier
	if b.Multiplier < 1 {
		b.Multiplier = 1
	}
	b.RandomizationFactor = p.Jitter
	if p.MaxBackoff > 0 {
		b.MaxInterval = p.MaxBackoff
	}
	b.MaxElapsedTime = 0
	b.Reset()

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// Request is a single upstream call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is a fully read 2xx upstream response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// FetchMetrics records retry loop outcomes.
type FetchMetrics interface {
	RecordFetchAttempt(ctx context.Context, outcome string)
}

// Fetcher performs HTTP requests with retries.
type Fetcher struct {
	client  *http.Client
	policy  RetryPolicy
	logger  *slog.Logger
	metrics FetchMetrics
}

// NewFetcher creates a Fetcher. A nil client uses http.DefaultClient.
func NewFetcher(client *http.Client, policy RetryPolicy, logger *slog.Logger, metrics FetchMetrics) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{client: client, policy: policy, logger: logger, metrics: metrics}
}

// Fetch sends req until it gets a 2xx response or the policy is exhausted. Each attempt,
// body read included, runs under its own AttemptTimeout.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (*Response, error) {
	var (
		attempts   int
		lastStatus int
		resp       *Response
	)

	op := func() error {
		attempts++
		r, err := f.attempt(ctx, req)
		if err != nil {
			var se *statusError
			if errors.As(err, &se) {
				lastStatus = se.status
			} else {
				lastStatus = 0
			}
			f.record(ctx, "failure")
			return err
		}
		resp = r
		f.record(ctx, "success")
		return nil
	}

	notify := func(err error, wait time.Duration) {
		f.logger.WarnContext(ctx, "Retrying upstream request",
			"url", req.URL,
			"attempt", attempts,
			"max_attempts", f.policy.MaxAttempts,
			"wait", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(op, f.policy.backOff(ctx), notify); err != nil {
		return nil, &FetchFailedError{URL: req.URL, Attempts: attempts, LastStatus: lastStatus, Err: err}
	}
	return resp, nil
}

func (f *Fetcher) attempt(ctx context.Context, req Request) (*Response, error) {
	if f.policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.policy.AttemptTimeout)
		defer cancel()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	httpResp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &statusError{status: httpResp.StatusCode}
	}

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}

func (f *Fetcher) record(ctx context.Context, outcome string) {
	if f.metrics != nil {
		f.metrics.RecordFetchAttempt(ctx, outcome)
	}
}
