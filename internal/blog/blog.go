// Package blog orchestrates the blog's read and write operations. Every
// operation takes the acting user explicitly, checks the access guard
// before touching a repository, and returns projected view shapes.
package blog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"blogpress/internal/access"
	"blogpress/internal/models"
)

var (
	// ErrNotFound is returned when a post, category or comment does not
	// exist or is not visible to the actor.
	ErrNotFound = errors.New("not found")

	// ErrCategoryInUse is returned when deleting a category that posts
	// still reference.
	ErrCategoryInUse = errors.New("category is in use")
)

// ValidationError carries per-field messages for rejected input.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// PostRepository persists posts.
type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository persists comments.
type CommentRepository interface {
	CountByPost(ctx context.Context) (map[int64]int, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	FindByID(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements the blog operations on top of the repositories.
type Service struct {
	posts      PostRepository
	categories CategoryRepository
	comments   CommentRepository
	now        func() time.Time
}

// NewService creates a Service backed by the given repositories.
func NewService(posts PostRepository, categories CategoryRepository, comments CommentRepository) *Service {
	return &Service{
		posts:      posts,
		categories: categories,
		comments:   comments,
		now:        time.Now,
	}
}

// categoryIndex loads all categories keyed by id.
func (s *Service) categoryIndex(ctx context.Context) ([]models.Category, map[int64]*models.Category, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load categories: %w", err)
	}
	idx := make(map[int64]*models.Category, len(cats))
	for i := range cats {
		idx[cats[i].ID] = &cats[i]
	}
	return cats, idx, nil
}

// translateAccess maps guard errors into the service taxonomy. Redirects
// pass through unchanged.
func translateAccess(err error) error {
	if errors.Is(err, access.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
