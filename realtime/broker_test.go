package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestServeHTTPReturnsAfterStop(t *testing.T) {
	b := NewBroker()
	go b.Run()
	b.Stop()

	done := make(chan struct{})
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		rec := httptest.NewRecorder()
		b.ServeHTTP(rec, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after the broker stopped")
	}
}

func TestServeHTTPReceivesBroadcast(t *testing.T) {
	b := NewBroker()
	go b.Run()
	defer b.Stop()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(rec, req)
		close(done)
	}()

	// Wait for the client to register, then push one event.
	deadline := time.Now().Add(2 * time.Second)
	for {
		b.mu.RLock()
		n := len(b.clients)
		b.mu.RUnlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	b.Broadcast(EventStockTick, map[string]string{"id": "s1"})
	time.Sleep(200 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after the client disconnected")
	}

	body := rec.Body.String()
	if !strings.Contains(body, EventStockTick) {
		t.Errorf("expected %q event in stream, got %q", EventStockTick, body)
	}
}
