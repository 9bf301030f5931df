// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests drive the full middleware chain: request ids,
// CSRF, session loading, role guards and the login throttle.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogpress/internal/blog"
	"blogpress/internal/blog/blogtest"
	"blogpress/internal/handlers"
	"blogpress/internal/middleware"
	"blogpress/internal/models"
	"blogpress/internal/session"
)

const csrfToken = "test-csrf-token"

// fakeSessions maps session cookie values to session data.
type fakeSessions map[string]*session.Data

func (f fakeSessions) Get(_ context.Context, r *http.Request) (*session.Data, error) {
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		return nil, nil
	}
	return f[c.Value], nil
}

func (f fakeSessions) Create(_ context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	f["new"] = data
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "new"})
	return "new", nil
}

func (f fakeSessions) Destroy(_ context.Context, _ http.ResponseWriter, r *http.Request) error {
	if c, err := r.Cookie(session.CookieName); err == nil {
		delete(f, c.Value)
	}
	return nil
}

// noUsers rejects every sign-in.
type noUsers struct{}

func (noUsers) FindByEmail(context.Context, string) (*models.User, error) { return nil, nil }
func (noUsers) CheckPassword(*models.User, string) bool                  { return false }

// testRouter is the full router over an in-memory blog with one post and
// one comment by the reader.
type testRouter struct {
	http.Handler
	postPath    string
	commentPath string
}

func newTestRouter(t *testing.T, throttle *middleware.Throttle) *testRouter {
	t.Helper()
	return newTestRouterProxy(t, throttle, false)
}

func newTestRouterProxy(t *testing.T, throttle *middleware.Throttle, trustProxy bool) *testRouter {
	t.Helper()

	m := blogtest.New()
	m.AddUser(5, "Reader")
	cat := m.AddCategory("Programming")
	post := m.AddPost(models.Post{Title: "Go Basics", Content: "go", CategoryID: cat.ID})
	comment := m.AddComment(post.ID, 5, "hello")

	sessions := fakeSessions{
		"admin":  {UserID: 1, Name: "Admin", Role: string(models.RoleAdmin)},
		"reader": {UserID: 5, Name: "Reader", Role: string(models.RoleUser)},
	}
	svc := blog.NewService(m.Posts(), m.Categories(), m.Comments())

	h := New(Deps{
		Sessions:      sessions,
		Auth:          handlers.NewAuth(noUsers{}, sessions),
		Admin:         handlers.NewAdmin(svc),
		Reader:        handlers.NewReader(svc),
		LoginThrottle: throttle,
		TrustProxy:    trustProxy,
	})

	postPath := fmt.Sprintf("/posts/%d", post.ID)
	return &testRouter{
		Handler:     h,
		postPath:    postPath,
		commentPath: fmt.Sprintf("%s/comments/%d", postPath, comment.ID),
	}
}

// do sends a request as the given session ("" for anonymous). Writes carry
// a matching CSRF cookie and header.
func do(h http.Handler, method, target, sid string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	}
	if method != http.MethodGet {
		req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: csrfToken})
		req.Header.Set(middleware.CSRFHeaderName, csrfToken)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, nil)
	rr := do(h, http.MethodGet, "/health", "", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content-type: got %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
	if rr.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestRouteGuards(t *testing.T) {
	h := newTestRouter(t, nil)

	tests := []struct {
		name     string
		target   string
		sid      string
		status   int
		location string
	}{
		{"anonymous reader area", "/posts", "", http.StatusUnauthorized, ""},
		{"anonymous admin area", "/admin/posts", "", http.StatusUnauthorized, ""},
		{"reader on reader area", "/posts", "reader", http.StatusOK, ""},
		{"reader post detail", h.postPath, "reader", http.StatusOK, ""},
		{"reader on admin area", "/admin/categories", "reader", http.StatusSeeOther, "/posts"},
		{"admin on admin area", "/admin/posts", "admin", http.StatusOK, ""},
		{"admin on reader area", "/posts", "admin", http.StatusSeeOther, "/admin/posts"},
		{"unknown session", "/posts", "stale", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(h, http.MethodGet, tt.target, tt.sid, nil)
			if rr.Code != tt.status {
				t.Fatalf("status: got %d, want %d (body %s)", rr.Code, tt.status, rr.Body.String())
			}
			if tt.location != "" && rr.Header().Get("Location") != tt.location {
				t.Errorf("location: got %q, want %q", rr.Header().Get("Location"), tt.location)
			}
		})
	}
}

func TestWritesRequireCSRF(t *testing.T) {
	h := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader("name=Design"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "admin"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("without token: got %d, want 403", rr.Code)
	}

	rr = do(h, http.MethodPost, "/admin/categories", "admin", strings.NewReader("name=Design"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("with token: got %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}
}

func TestReaderCommentFlow(t *testing.T) {
	h := newTestRouter(t, nil)

	rr := do(h, http.MethodPost, h.postPath+"/comments", "reader", strings.NewReader("content=Nice"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("add comment: got %d (body %s)", rr.Code, rr.Body.String())
	}

	rr = do(h, http.MethodDelete, h.commentPath, "reader", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete own comment: got %d (body %s)", rr.Code, rr.Body.String())
	}
}

func TestLoginThrottled(t *testing.T) {
	h := newTestRouter(t, middleware.NewThrottle(2, time.Minute))

	for i := 0; i < 2; i++ {
		rr := do(h, http.MethodPost, "/login", "", strings.NewReader("email=a%40b.c&password=x"))
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("attempt %d: got %d, want 422", i+1, rr.Code)
		}
	}

	rr := do(h, http.MethodPost, "/login", "", strings.NewReader("email=a%40b.c&password=x"))
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("third attempt: got %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}

// loginFrom posts a failed sign-in from one peer, claiming forwardedFor.
func loginFrom(h http.Handler, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=a%40b.c&password=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	req.RemoteAddr = "203.0.113.7:40000"
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: csrfToken})
	req.Header.Set(middleware.CSRFHeaderName, csrfToken)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func TestLoginThrottleIgnoresForwardedFor(t *testing.T) {
	h := newTestRouter(t, middleware.NewThrottle(2, time.Minute))

	for i, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		if code := loginFrom(h, ip); code != http.StatusUnprocessableEntity {
			t.Fatalf("attempt %d: got %d, want 422", i+1, code)
		}
	}
	if code := loginFrom(h, "10.0.0.3"); code != http.StatusTooManyRequests {
		t.Fatalf("rotated X-Forwarded-For: got %d, want 429", code)
	}
}

func TestLoginThrottleTrustedProxy(t *testing.T) {
	h := newTestRouterProxy(t, middleware.NewThrottle(2, time.Minute), true)

	// Behind a trusted proxy each forwarded client has its own budget.
	for _, ip := range []string{"10.0.0.1", "10.0.0.1", "10.0.0.2", "10.0.0.2"} {
		if code := loginFrom(h, ip); code != http.StatusUnprocessableEntity {
			t.Fatalf("client %s: got %d, want 422", ip, code)
		}
	}
	if code := loginFrom(h, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("third attempt from 10.0.0.1: got %d, want 429", code)
	}
}

func TestUnknownRoute(t *testing.T) {
	h := newTestRouter(t, nil)

	rr := do(h, http.MethodGet, "/nowhere", "admin", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}

	rr = do(h, http.MethodPatch, "/health", "", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want 405", rr.Code)
	}
}
