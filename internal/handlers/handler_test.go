// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests. Handlers run against the in-memory repositories from blogtest.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"blogpress/internal/blog"
	"blogpress/internal/blog/blogtest"
	"blogpress/internal/middleware"
	"blogpress/internal/models"
	"blogpress/internal/session"
)

var (
	adminSession  = &session.Data{UserID: 1, Name: "Admin", Email: "admin@blogpress.local", Role: string(models.RoleAdmin)}
	readerSession = &session.Data{UserID: 5, Name: "Reader", Email: "reader@blogpress.local", Role: string(models.RoleUser)}
	otherSession  = &session.Data{UserID: 7, Name: "Other", Email: "other@blogpress.local", Role: string(models.RoleUser)}
)

// fixture is a populated in-memory blog: one category, "Go Basics" with
// two comments by the reader and the newer "Rust Intro" without comments.
type fixture struct {
	mem      *blogtest.Memory
	svc      *blog.Service
	category models.Category
	goPost   models.Post
	rustPost models.Post
	comment  models.Comment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m := blogtest.New()
	m.AddUser(readerSession.UserID, readerSession.Name)
	cat := m.AddCategory("Programming")
	goPost := m.AddPost(models.Post{Title: "Go Basics", Content: "go", CategoryID: cat.ID})
	rustPost := m.AddPost(models.Post{Title: "Rust Intro", Content: "rust", CategoryID: cat.ID})
	c := m.AddComment(goPost.ID, readerSession.UserID, "first")
	m.AddComment(goPost.ID, readerSession.UserID, "second")

	return &fixture{
		mem:      m,
		svc:      blog.NewService(m.Posts(), m.Categories(), m.Comments()),
		category: cat,
		goPost:   goPost,
		rustPost: rustPost,
		comment:  c,
	}
}

// serve routes a single request to h mounted at pattern, with sess loaded
// into the context.
func serve(t *testing.T, method, pattern string, h http.HandlerFunc, target string, body io.Reader, sess *session.Data) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sess != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), sess))
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func form(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, want, rr.Body.String())
	}
}
