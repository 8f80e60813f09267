package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCacheSetPeekDelete(t *testing.T) {
	c := New(Options{TTL: 50 * time.Millisecond, StaleWhileRevalidate: 20 * time.Millisecond, MaxEntries: 10}, MetricsHooks{})

	c.Set("alpha", "value", 50*time.Millisecond)
	if val, ok := c.Peek("alpha"); !ok || val.(string) != "value" {
		t.Fatalf("expected peeked value")
	}

	c.Delete("alpha")
	if _, ok := c.Peek("alpha"); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestCacheGetHitMissStaleRefresh(t *testing.T) {
	c := New(Options{TTL: 20 * time.Millisecond, StaleWhileRevalidate: 50 * time.Millisecond, MaxEntries: 10}, MetricsHooks{})

	var mu sync.Mutex
	callCount := 0
	refreshCalled := make(chan struct{}, 1)
	loader := func(_ context.Context, _ string) (interface{}, bool, error) {
		mu.Lock()
		callCount++
		count := callCount
		mu.Unlock()
		if count == 2 {
			refreshCalled <- struct{}{}
		}
		return count, true, nil
	}

	val, ok, err := c.Get(context.Background(), "alpha", loader)
	if err != nil || !ok || val.(int) != 1 {
		t.Fatalf("expected first load")
	}

	val, ok, err = c.Get(context.Background(), "alpha", loader)
	if err != nil || !ok || val.(int) != 1 {
		t.Fatalf("expected cache hit")
	}

	time.Sleep(25 * time.Millisecond)
	val, ok, err = c.Get(context.Background(), "alpha", loader)
	if err != nil || !ok || val.(int) != 1 {
		t.Fatalf("expected stale value")
	}

	select {
	case <-refreshCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("expected refresh to run")
	}

	time.Sleep(10 * time.Millisecond)
	val, ok = c.Peek("alpha")
	if !ok || val.(int) != 2 {
		t.Fatalf("expected refreshed value")
	}
}

func TestCacheNegativeTTL(t *testing.T) {
	c := New(Options{TTL: 50 * time.Millisecond, StaleWhileRevalidate: 20 * time.Millisecond, NegativeTTL: 30 * time.Millisecond, MaxEntries: 10}, MetricsHooks{})

	var mu sync.Mutex
	callCount := 0
	loader := func(_ context.Context, _ string) (interface{}, bool, error) {
		mu.Lock()
		callCount++
		mu.Unlock()
		return nil, false, errors.New("not found")
	}

	_, ok, err := c.Get(context.Background(), "missing", loader)
	if ok || err == nil {
		t.Fatalf("expected negative result")
	}

	// Second call within NegativeTTL should be served from cache
	_, ok, err = c.Get(context.Background(), "missing", loader)
	if ok || err == nil {
		t.Fatalf("expected cached negative result")
	}

	mu.Lock()
	count := callCount
	mu.Unlock()
	if count != 1 {
		t.Fatalf("expected one loader call, got %d", count)
	}
}

func TestCacheEviction(t *testing.T) {
	c := New(Options{TTL: time.Minute, MaxEntries: 2}, MetricsHooks{})
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Set("c", 3, time.Minute)

	if _, ok := c.Peek("a"); ok {
		t.Fatalf("expected oldest entry evicted")
	}
	if _, ok := c.Peek("c"); !ok {
		t.Fatalf("expected newest entry present")
	}
}
