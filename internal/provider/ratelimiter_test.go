package provider

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterNilNeverBlocks(t *testing.T) {
	var limiter *RateLimiter
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewRateLimiterPerMinute(t *testing.T) {
	if NewRateLimiterPerMinute(0) != nil {
		t.Fatal("expected nil limiter for zero rate")
	}
	limiter := NewRateLimiterPerMinute(8)
	if limiter.maxTokens != 8 || limiter.refillInterval != 7500*time.Millisecond {
		t.Fatalf("unexpected limiter: tokens=%d interval=%v", limiter.maxTokens, limiter.refillInterval)
	}
}

func TestRateLimiterWaitHonoursContext(t *testing.T) {
	limiter := NewRateLimiter(1, time.Hour)
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first token: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx); err == nil {
		t.Fatal("expected context error once the bucket is empty")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	limiter := NewRateLimiter(1, 5*time.Millisecond)
	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := limiter.Wait(ctx); err != nil {
			cancel()
			t.Fatalf("wait %d: %v", i, err)
		}
		cancel()
	}
}
