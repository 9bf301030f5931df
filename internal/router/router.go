// Package router sets up all HTTP routes and middleware chains for the
// blogpress server. Routes are split into the sign-in endpoints, the
// admin area and the reader area, each with its own guard.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"blogpress/internal/handlers"
	"blogpress/internal/middleware"
	"blogpress/internal/models"
	"blogpress/internal/render"
)

// Deps carries everything the routes need.
type Deps struct {
	Sessions middleware.SessionReader
	Auth     *handlers.Auth
	Admin    *handlers.Admin
	Reader   *handlers.Reader

	// LoginThrottle limits POST /login. Nil disables throttling.
	LoginThrottle *middleware.Throttle

	// SecureCookies sets the Secure flag on the CSRF cookie.
	SecureCookies bool

	// TrustProxy rewrites RemoteAddr from forwarded headers before any
	// other middleware, so logs and the login throttle see the real client.
	// Off by default: the headers are client-controlled.
	TrustProxy bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Health check: no session, no CSRF.
	r.Get("/health", handlers.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(d.SecureCookies))
		r.Use(middleware.LoadSession(d.Sessions))

		r.Group(func(r chi.Router) {
			if d.LoginThrottle != nil {
				r.Use(d.LoginThrottle.Middleware)
			}
			r.Post("/login", d.Auth.Login)
		})
		r.Post("/logout", d.Auth.Logout)
		r.Get("/me", d.Auth.Me)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", d.Admin.PostsList)
				r.Post("/", d.Admin.PostCreate)
				r.Put("/{id}", d.Admin.PostUpdate)
				r.Delete("/{id}", d.Admin.PostDelete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", d.Admin.CategoriesList)
				r.Post("/", d.Admin.CategoryCreate)
				r.Put("/{id}", d.Admin.CategoryUpdate)
				r.Delete("/{id}", d.Admin.CategoryDelete)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireRole(models.RoleUser))

			r.Get("/", d.Reader.PostsIndex)
			r.Get("/{id}", d.Reader.PostShow)
			r.Post("/{id}/comments", d.Reader.CommentStore)
			r.Delete("/{id}/comments/{commentID}", d.Reader.CommentDestroy)
		})
	})

	return r
}
