package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestThrottle(limit int, window time.Duration) (*Throttle, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	th := NewThrottle(limit, window)
	th.now = clock.now
	return th, clock
}

func TestThrottleTake(t *testing.T) {
	th, _ := newTestThrottle(3, time.Minute)

	for i := 0; i < 3; i++ {
		if ok, _ := th.take("test-ip"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, wait := th.take("test-ip")
	if ok {
		t.Error("4th request should be throttled")
	}
	if wait != time.Minute {
		t.Errorf("wait: got %v, want %v", wait, time.Minute)
	}

	if ok, _ := th.take("other-ip"); !ok {
		t.Error("different IP should be allowed")
	}
}

func TestThrottleWindowSlides(t *testing.T) {
	th, clock := newTestThrottle(2, time.Minute)

	th.take("test-ip")
	clock.advance(30 * time.Second)
	th.take("test-ip")

	if ok, wait := th.take("test-ip"); ok || wait != 30*time.Second {
		t.Errorf("expected throttle with 30s wait, got ok=%v wait=%v", ok, wait)
	}

	clock.advance(31 * time.Second)
	if ok, _ := th.take("test-ip"); !ok {
		t.Error("should be allowed once the first hit leaves the window")
	}
}

func TestThrottleMiddleware(t *testing.T) {
	th, _ := newTestThrottle(2, time.Minute)

	handler := th.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want 200", i+1, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("got status %d, want 429", rr.Code)
	}
	if got := rr.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After: got %q, want %q", got, "60")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{
			name:       "x-forwarded-for ignored",
			xff:        "10.0.0.1",
			remoteAddr: "192.168.1.1:1234",
			want:       "192.168.1.1",
		},
		{
			name:       "x-real-ip ignored",
			xri:        "10.0.0.2",
			remoteAddr: "192.168.1.1:1234",
			want:       "192.168.1.1",
		},
		{
			name:       "remote addr only",
			remoteAddr: "192.168.1.1:1234",
			want:       "192.168.1.1",
		},
		{
			name:       "remote addr no port",
			remoteAddr: "192.168.1.1",
			want:       "192.168.1.1",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[::1]:8080",
			want:       "::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestThrottleIgnoresForwardedHeaders verifies that one peer cannot dodge
// the limit by rotating X-Forwarded-For or X-Real-IP.
func TestThrottleIgnoresForwardedHeaders(t *testing.T) {
	th, _ := newTestThrottle(5, time.Minute)
	handler := th.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	passed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.%d.%d", i/250, i%250+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.1.0.%d", i+1))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code == http.StatusOK {
			passed++
		}
	}

	if passed != 5 {
		t.Errorf("%d of 50 attempts passed, want 5", passed)
	}
}

func TestThrottlePrune(t *testing.T) {
	th, clock := newTestThrottle(10, time.Minute)

	th.take("ip-old")
	th.take("ip-fresh")
	clock.advance(2 * time.Minute)
	th.take("ip-fresh")

	th.prune()

	th.mu.Lock()
	_, oldExists := th.hits["ip-old"]
	_, freshExists := th.hits["ip-fresh"]
	count := len(th.hits)
	th.mu.Unlock()

	if oldExists {
		t.Error("ip-old should have been pruned")
	}
	if !freshExists {
		t.Error("ip-fresh should still exist")
	}
	if count != 1 {
		t.Errorf("expected 1 remaining client, got %d", count)
	}
}
