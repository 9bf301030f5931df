package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"blogpress/internal/access"
	"blogpress/internal/middleware"
	"blogpress/internal/models"
	"blogpress/internal/render"
	"blogpress/internal/session"
)

// Credentials looks up users and checks their passwords. *store.UserStore
// implements it.
type Credentials interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
}

// Sessions issues and clears login sessions. *session.Store implements it.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth groups the sign-in handlers.
type Auth struct {
	users    Credentials
	sessions Sessions
}

// NewAuth creates a new Auth handler group.
func NewAuth(users Credentials, sessions Sessions) *Auth {
	return &Auth{users: users, sessions: sessions}
}

// Identity describes the signed-in user.
type Identity struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Home      string `json:"home"`
	CSRFToken string `json:"csrf_token,omitempty"`
}

// Login checks the email and password and starts a session.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	email := strings.TrimSpace(form.Get("email"))
	password := form.Get("password")

	fields := map[string][]string{}
	if email == "" {
		fields["email"] = []string{"The email field is required."}
	}
	if password == "" {
		fields["password"] = []string{"The password field is required."}
	}
	if len(fields) > 0 {
		render.ValidationErrors(w, fields, "email", "password")
		return
	}

	user, err := a.users.FindByEmail(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, password) {
		render.ValidationErrors(w, map[string][]string{
			"email": {"These credentials do not match our records."},
		})
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
	}); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("user signed in", "user_id", user.ID, "admin", user.IsAdmin(), "request_id", middleware.RequestIDFromCtx(r.Context()))
	render.Message(w, http.StatusOK, "Signed in.", Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
		Home:  access.HomeFor(user.Role),
	})
}

// Logout ends the current session, if any.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		writeError(w, r, err)
		return
	}
	render.Message(w, http.StatusOK, "Signed out.", nil)
}

// Me returns the signed-in user and the CSRF token to echo on writes.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		render.Error(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}
	render.JSON(w, http.StatusOK, Identity{
		ID:        sess.UserID,
		Name:      sess.Name,
		Email:     sess.Email,
		Role:      sess.Role,
		Home:      access.HomeFor(models.Role(sess.Role)),
		CSRFToken: middleware.CSRFTokenFromCtx(r.Context()),
	})
}
