package rate_limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddlewareLimitsPerClient(t *testing.T) {
	l := New(1, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := do("10.0.0.1:1234"); code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, code)
		}
	}
	if code := do("10.0.0.1:5678"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", code)
	}
	if code := do("10.0.0.2:1234"); code != http.StatusNoContent {
		t.Errorf("other clients must have their own bucket, got %d", code)
	}
}

func TestCleanupEvictsIdleVisitors(t *testing.T) {
	l := New(1, 1)
	now := time.Now()
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(time.Minute)
	l.Allow("10.0.0.2")

	now = now.Add(idleTimeout)
	l.cleanup()

	if l.Len() != 1 {
		t.Fatalf("expected 1 visitor left, got %d", l.Len())
	}
	l.mu.Lock()
	_, ok := l.visitors["10.0.0.2"]
	l.mu.Unlock()
	if !ok {
		t.Error("expected the recent visitor to survive")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.9:4000"
	if ip := ClientIP(req); ip != "192.168.1.9" {
		t.Errorf("unexpected ip %q", ip)
	}
	req.RemoteAddr = "192.168.1.9"
	if ip := ClientIP(req); ip != "192.168.1.9" {
		t.Errorf("unexpected ip %q", ip)
	}
}
