// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"blogpress/internal/access"
	"blogpress/internal/models"
	"blogpress/internal/render"
	"blogpress/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"
)

// SessionReader loads the session attached to a request. *session.Store
// implements it.
type SessionReader interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
}

// LoadSession retrieves the session from Valkey and stores it in the
// request context. It does not enforce authentication.
func LoadSession(store SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				slog.Warn("session lookup failed", "error", err, "request_id", RequestIDFromCtx(r.Context()))
				next.ServeHTTP(w, r)
				return
			}

			if data != nil {
				r = r.WithContext(WithSession(r.Context(), data))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithSession returns a copy of ctx carrying the session data.
func WithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// ActorFromCtx resolves the acting user from the loaded session. Returns
// nil for anonymous requests.
func ActorFromCtx(ctx context.Context) *access.Actor {
	sess := SessionFromCtx(ctx)
	if sess == nil {
		return nil
	}
	return &access.Actor{
		ID:   sess.UserID,
		Name: sess.Name,
		Role: models.Role(sess.Role),
	}
}

// RequireAuth answers 401 for requests without a session. Must be applied
// after LoadSession.
//
// Anonymous requests are not redirected to the user home the way
// access.Require redirects role mismatches: that home is itself behind
// RequireAuth, so a redirect would loop. JSON clients sign in via
// POST /login instead.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromCtx(r.Context()) == nil {
			render.Error(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole sends actors without the required role to their own home
// route with 303 See Other. Must be applied after RequireAuth.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := access.Decide(ActorFromCtx(r.Context()), role)
			if !d.Allow {
				render.Redirect(w, d.RedirectTo)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
