// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"blogpress/internal/render"
)

// Throttle limits how often a single client may hit a route, using a
// sliding window per client IP. The router applies it to POST /login.
type Throttle struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewThrottle allows limit requests per window for each client.
func NewThrottle(limit int, window time.Duration) *Throttle {
	return &Throttle{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Run prunes idle clients every window until ctx is done.
func (t *Throttle) Run(ctx context.Context) {
	ticker := time.NewTicker(t.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.prune()
		case <-ctx.Done():
			return
		}
	}
}

// take records a hit for key. It reports whether the hit is within the
// limit and, if not, how long until the oldest hit leaves the window.
func (t *Throttle) take(key string) (bool, time.Duration) {
	now := t.now()
	cutoff := now.Add(-t.window)

	t.mu.Lock()
	defer t.mu.Unlock()

	recent := t.hits[key][:0]
	for _, ts := range t.hits[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= t.limit {
		t.hits[key] = recent
		return false, recent[0].Sub(cutoff)
	}

	t.hits[key] = append(recent, now)
	return true, 0
}

func (t *Throttle) prune() {
	cutoff := t.now().Add(-t.window)

	t.mu.Lock()
	defer t.mu.Unlock()

	for key, hits := range t.hits {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(t.hits, key)
		}
	}
}

// Middleware answers 429 with Retry-After once a client exceeds the limit.
func (t *Throttle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := t.take(clientIP(r))
		if !ok {
			secs := int(wait.Seconds())
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			render.Error(w, http.StatusTooManyRequests, "Too Many Attempts.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP keys throttling on the connection's peer address. Forwarded
// headers are client-controlled and ignored here; behind a trusted proxy
// the router rewrites RemoteAddr first (see router.Deps.TrustProxy).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
