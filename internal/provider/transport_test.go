package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestHTTPTransportReturnsBodyForAnyStatus(t *testing.T) {
	t.Parallel()

	transport := NewHTTPTransport(time.Second, nil)
	transport.client.Transport = roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("Accept") != "application/json" {
			t.Fatalf("missing accept header: %v", req.Header)
		}
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Body:       io.NopCloser(bytes.NewBufferString(`{"status":{"error_code":429,"error_message":"slow down"}}`)),
			Header:     make(http.Header),
		}, nil
	})

	resp, err := transport.Get(context.Background(), "http://example/simple/price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if !bytes.Contains(resp.Body, []byte("slow down")) {
		t.Fatalf("unexpected body: %s", resp.Body)
	}
}

func TestHTTPTransportNetworkError(t *testing.T) {
	t.Parallel()

	dialErr := errors.New("dial tcp: no route to host")
	transport := NewHTTPTransport(time.Second, nil)
	transport.client.Transport = roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, dialErr
	})

	if _, err := transport.Get(context.Background(), "http://example"); !errors.Is(err, dialErr) {
		t.Fatalf("expected dial error, got %v", err)
	}
}

func TestHTTPTransportRateLimitCancelled(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(1, time.Hour)
	_ = limiter.Wait(context.Background())

	transport := NewHTTPTransport(time.Second, limiter)
	transport.client.Transport = roundTripFunc(func(*http.Request) (*http.Response, error) {
		t.Fatal("request should not be sent")
		return nil, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := transport.Get(ctx, "http://example"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
