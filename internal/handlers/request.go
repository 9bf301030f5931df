package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blogpress/internal/access"
	"blogpress/internal/blog"
	"blogpress/internal/middleware"
	"blogpress/internal/render"
)

// maxBodyBytes caps request bodies. The largest valid form is a post with
// two 255-character fields.
const maxBodyBytes = 64 << 10

var errMalformedBody = errors.New("malformed request body")

// formValues reads a form-encoded or JSON request body into url.Values.
// JSON scalars are converted to their string form. Null, arrays and
// objects become "" so they fail required rules.
func formValues(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		return r.PostForm, nil
	}

	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}

	values := make(url.Values, len(raw))
	for key, v := range raw {
		switch v := v.(type) {
		case nil:
			values.Set(key, "")
		case string:
			values.Set(key, v)
		case json.Number:
			values.Set(key, v.String())
		case bool:
			values.Set(key, strconv.FormatBool(v))
		default:
			// Arrays and objects are not field values.
			values.Set(key, "")
		}
	}
	return values, nil
}

// idParam parses a numeric route parameter. Ids that do not parse are
// reported as missing.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// writeError maps service errors onto HTTP responses. order lists the
// form's fields for the validation summary.
func writeError(w http.ResponseWriter, r *http.Request, err error, order ...string) {
	var redirect *access.Redirect
	var invalid *blog.ValidationError

	switch {
	case errors.As(err, &redirect):
		render.Redirect(w, redirect.To)
	case errors.As(err, &invalid):
		render.ValidationErrors(w, invalid.Fields, order...)
	case errors.Is(err, blog.ErrNotFound):
		render.NotFound(w)
	case errors.Is(err, blog.ErrCategoryInUse):
		render.Error(w, http.StatusConflict, "This category still has posts and cannot be deleted.")
	case errors.Is(err, errMalformedBody):
		render.Error(w, http.StatusBadRequest, "Malformed request body.")
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromCtx(r.Context()),
		)
		render.Error(w, http.StatusInternalServerError, "Server Error")
	}
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
