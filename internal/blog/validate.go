package blog

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// PostInput is the admin form for creating or updating a post.
type PostInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Content     string `json:"content" validate:"required,max=255"`
	CategoryID  string `json:"category_id" validate:"required"`
	PublishedAt string `json:"published_at" validate:"omitempty,date"`
}

// CategoryInput is the admin form for creating or updating a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CommentInput is the reader form for adding a comment.
type CommentInput struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// dateLayouts are the accepted published_at formats, tried in order.
// Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, ok := parseDate(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}
	return v
}

// attribute turns a field name into the wording used in messages.
func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func message(fe validator.FieldError) string {
	attr := attribute(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
	case "date":
		return fmt.Sprintf("The %s field must be a valid date.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

// check runs struct validation and collects the failures. Non-validation
// errors from the validator are returned as is.
func check(v any) (*ValidationError, error) {
	err := validate.Struct(v)
	if err == nil {
		return &ValidationError{}, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("validate: %w", err)
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.add(fe.Field(), message(fe))
	}
	return verr, nil
}

// result returns verr as an error when it holds any field failure.
func (e *ValidationError) result() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (in *PostInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.PublishedAt = strings.TrimSpace(in.PublishedAt)
}

// validPost holds a PostInput that passed validation.
type validPost struct {
	title       string
	content     string
	categoryID  int64
	publishedAt *time.Time
}

// validatePost checks the form and resolves category_id against the
// category repository.
func (s *Service) validatePost(ctx context.Context, in PostInput) (validPost, error) {
	in.normalize()
	verr, err := check(in)
	if err != nil {
		return validPost{}, err
	}

	out := validPost{title: in.Title, content: in.Content}

	if _, failed := verr.Fields["category_id"]; !failed {
		id, perr := strconv.ParseInt(in.CategoryID, 10, 64)
		var found bool
		if perr == nil {
			cat, err := s.categories.FindByID(ctx, id)
			if err != nil {
				return validPost{}, fmt.Errorf("check category: %w", err)
			}
			found = cat != nil
		}
		if found {
			out.categoryID = id
		} else {
			verr.add("category_id", "The selected category id is invalid.")
		}
	}

	if in.PublishedAt != "" {
		if t, ok := parseDate(in.PublishedAt); ok {
			out.publishedAt = &t
		}
	}

	if err := verr.result(); err != nil {
		return validPost{}, err
	}
	return out, nil
}

func validateCategory(in CategoryInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	verr, err := check(in)
	if err != nil {
		return "", err
	}
	if err := verr.result(); err != nil {
		return "", err
	}
	return in.Name, nil
}

func validateComment(in CommentInput) (string, error) {
	in.Content = strings.TrimSpace(in.Content)
	verr, err := check(in)
	if err != nil {
		return "", err
	}
	if err := verr.result(); err != nil {
		return "", err
	}
	return in.Content, nil
}
