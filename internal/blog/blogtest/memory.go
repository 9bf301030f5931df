// Package blogtest provides in-memory repositories for exercising the blog
// service and HTTP handlers without a database.
package blogtest

import (
	"context"
	"slices"
	"sync"
	"time"

	"blogpress/internal/models"
)

// Epoch is the creation time of the first inserted record. Each insert
// advances the clock by one minute.
var Epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// Memory holds posts, categories, comments and comment authors. The
// repository views returned by Posts, Categories and Comments share it.
type Memory struct {
	mu       sync.Mutex
	posts    []models.Post
	cats     []models.Category
	comments []models.Comment
	authors  map[int64]models.CommentAuthor
	nextID   int64
	tick     time.Time

	// Err, when set, is returned by every repository call.
	Err error
	// Calls counts repository calls.
	Calls int
}

// New returns an empty Memory.
func New() *Memory {
	return &Memory{
		authors: make(map[int64]models.CommentAuthor),
		tick:    Epoch,
	}
}

// hit records a repository call. The caller holds mu.
func (m *Memory) hit() error {
	m.Calls++
	return m.Err
}

func (m *Memory) stamp() (int64, time.Time) {
	m.nextID++
	t := m.tick
	m.tick = m.tick.Add(time.Minute)
	return m.nextID, t
}

// AddUser registers a comment author.
func (m *Memory) AddUser(id int64, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authors[id] = models.CommentAuthor{ID: id, Name: name}
}

// AddCategory inserts a category directly.
func (m *Memory) AddCategory(name string) models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, t := m.stamp()
	c := models.Category{ID: id, Name: name, CreatedAt: t, UpdatedAt: t}
	m.cats = append(m.cats, c)
	return c
}

// AddPost inserts a post directly. A zero CreatedAt is filled from the
// clock.
func (m *Memory) AddPost(p models.Post) models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, t := m.stamp()
	p.ID = id
	if p.CreatedAt.IsZero() {
		p.CreatedAt = t
	}
	p.UpdatedAt = p.CreatedAt
	m.posts = append(m.posts, p)
	return p
}

// AddComment inserts a comment directly.
func (m *Memory) AddComment(postID, userID int64, content string) models.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, t := m.stamp()
	c := models.Comment{ID: id, PostID: postID, UserID: userID, Content: content, CreatedAt: t, UpdatedAt: t}
	m.comments = append(m.comments, c)
	return c
}

// CommentCount returns the number of stored comments.
func (m *Memory) CommentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.comments)
}

// Posts returns the post repository view.
func (m *Memory) Posts() *Posts { return &Posts{m} }

// Categories returns the category repository view.
func (m *Memory) Categories() *Categories { return &Categories{m} }

// Comments returns the comment repository view.
func (m *Memory) Comments() *Comments { return &Comments{m} }

// Posts implements blog.PostRepository.
type Posts struct{ m *Memory }

func (r *Posts) List(_ context.Context) ([]models.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return nil, err
	}
	return slices.Clone(r.m.posts), nil
}

func (r *Posts) FindByID(_ context.Context, id int64) (*models.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return nil, err
	}
	for _, p := range r.m.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *Posts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return nil, err
	}
	out := *p
	out.ID, out.CreatedAt = r.m.stamp()
	out.UpdatedAt = out.CreatedAt
	r.m.posts = append(r.m.posts, out)
	return &out, nil
}

func (r *Posts) Update(_ context.Context, p *models.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return err
	}
	for i := range r.m.posts {
		if r.m.posts[i].ID == p.ID {
			_, t := r.m.stamp()
			updated := *p
			updated.CreatedAt = r.m.posts[i].CreatedAt
			updated.UpdatedAt = t
			r.m.posts[i] = updated
			*p = updated
		}
	}
	return nil
}

func (r *Posts) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return err
	}
	r.m.posts = slices.DeleteFunc(r.m.posts, func(p models.Post) bool { return p.ID == id })
	r.m.comments = slices.DeleteFunc(r.m.comments, func(c models.Comment) bool { return c.PostID == id })
	return nil
}

func (r *Posts) CountByCategory(_ context.Context, categoryID int64) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return 0, err
	}
	n := 0
	for _, p := range r.m.posts {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// Categories implements blog.CategoryRepository.
type Categories struct{ m *Memory }

func (r *Categories) List(_ context.Context) ([]models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return nil, err
	}
	out := slices.Clone(r.m.cats)
	for i := range out {
		for _, p := range r.m.posts {
			if p.CategoryID == out[i].ID {
				out[i].PostCount++
			}
		}
	}
	return out, nil
}

func (r *Categories) FindByID(_ context.Context, id int64) (*models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return nil, err
	}
	for _, c := range r.m.cats {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *Categories) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return nil, err
	}
	out := models.Category{Name: c.Name}
	out.ID, out.CreatedAt = r.m.stamp()
	out.UpdatedAt = out.CreatedAt
	r.m.cats = append(r.m.cats, out)
	return &out, nil
}

func (r *Categories) Update(_ context.Context, c *models.Category) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return err
	}
	for i := range r.m.cats {
		if r.m.cats[i].ID == c.ID {
			_, t := r.m.stamp()
			r.m.cats[i].Name = c.Name
			r.m.cats[i].UpdatedAt = t
			c.UpdatedAt = t
		}
	}
	return nil
}

func (r *Categories) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return err
	}
	r.m.cats = slices.DeleteFunc(r.m.cats, func(c models.Category) bool { return c.ID == id })
	return nil
}

// Comments implements blog.CommentRepository.
type Comments struct{ m *Memory }

func (r *Comments) CountByPost(_ context.Context) (map[int64]int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return nil, err
	}
	counts := make(map[int64]int)
	for _, c := range r.m.comments {
		counts[c.PostID]++
	}
	return counts, nil
}

func (r *Comments) ListByPost(_ context.Context, postID int64) ([]models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return nil, err
	}
	var out []models.Comment
	for _, c := range r.m.comments {
		if c.PostID != postID {
			continue
		}
		if a, ok := r.m.authors[c.UserID]; ok {
			c.Author = &a
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Comments) FindByID(_ context.Context, id int64) (*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return nil, err
	}
	for _, c := range r.m.comments {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *Comments) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return nil, err
	}
	out := models.Comment{PostID: c.PostID, UserID: c.UserID, Content: c.Content}
	out.ID, out.CreatedAt = r.m.stamp()
	out.UpdatedAt = out.CreatedAt
	r.m.comments = append(r.m.comments, out)
	return &out, nil
}

func (r *Comments) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.hit(); err != nil {
		return err
	}
	r.m.comments = slices.DeleteFunc(r.m.comments, func(c models.Comment) bool { return c.ID == id })
	return nil
}
