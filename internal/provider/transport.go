package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBytes = 8 << 20

// Response is a raw upstream reply. Non-2xx replies are still responses:
// CoinGecko reports rate limits and bad requests in the body.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs GET requests against the upstream API.
type Transport interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// HTTPTransport is the net/http backed Transport.
type HTTPTransport struct {
	client  *http.Client
	limiter *RateLimiter
}

// NewHTTPTransport returns a transport with the given request timeout.
// limiter may be nil.
func NewHTTPTransport(timeout time.Duration, limiter *RateLimiter) *HTTPTransport {
	return &HTTPTransport{
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

func (t *HTTPTransport) Get(ctx context.Context, url string) (*Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
