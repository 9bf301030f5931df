package blog

import (
	"context"
	"fmt"

	"blogpress/internal/access"
	"blogpress/internal/models"
	"blogpress/internal/query"
	"blogpress/internal/slug"
	"blogpress/internal/view"
)

// AdminPostListing is the admin post index with the category options
// used by the post form.
type AdminPostListing struct {
	Posts      query.Page[view.AdminPost] `json:"posts"`
	Categories []view.CategoryRef         `json:"categories"`
}

// ListAdminPosts returns one page of all posts, latest first.
func (s *Service) ListAdminPosts(ctx context.Context, actor *access.Actor, page int) (*AdminPostListing, error) {
	if err := access.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	entries, idx, cats, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sorted := query.Compose(entries, query.Filters{Sort: query.SortLatest})
	p := query.Paginate(sorted, page, query.AdminPageSize)
	return &AdminPostListing{
		Posts: query.MapPage(p, func(e query.Entry) view.AdminPost {
			return view.AdminPostItem(e.Post, idx[e.Post.CategoryID], e.CommentsCount, now)
		}),
		Categories: view.CategoryOptions(cats),
	}, nil
}

// CreatePost validates the form and stores a new post with a slug
// derived from its title.
func (s *Service) CreatePost(ctx context.Context, actor *access.Actor, in PostInput) (*view.AdminPost, error) {
	if err := access.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	v, err := s.validatePost(ctx, in)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, &models.Post{
		Title:       v.title,
		Content:     v.content,
		CategoryID:  v.categoryID,
		Slug:        slug.Generate(v.title),
		PublishedAt: v.publishedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.adminPost(ctx, post, 0)
}

// UpdatePost replaces the post's fields and regenerates its slug. The post
// lookup runs before validation.
func (s *Service) UpdatePost(ctx context.Context, actor *access.Actor, postID int64, in PostInput) (*view.AdminPost, error) {
	if err := access.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}

	v, err := s.validatePost(ctx, in)
	if err != nil {
		return nil, err
	}

	post.Title = v.title
	post.Content = v.content
	post.CategoryID = v.categoryID
	post.Slug = slug.Generate(v.title)
	post.PublishedAt = v.publishedAt
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	counts, err := s.comments.CountByPost(ctx)
	if err != nil {
		return nil, fmt.Errorf("load comment counts: %w", err)
	}
	return s.adminPost(ctx, post, counts[post.ID])
}

// DeletePost removes a post. Its comments go with it.
func (s *Service) DeletePost(ctx context.Context, actor *access.Actor, postID int64) error {
	if err := access.Require(actor, models.RoleAdmin); err != nil {
		return err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return ErrNotFound
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *Service) adminPost(ctx context.Context, post *models.Post, comments int) (*view.AdminPost, error) {
	cat, err := s.categories.FindByID(ctx, post.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	item := view.AdminPostItem(*post, cat, comments, s.now())
	return &item, nil
}

// ListCategories returns one page of categories with their post counts.
func (s *Service) ListCategories(ctx context.Context, actor *access.Actor, page int) (*query.Page[view.AdminCategory], error) {
	if err := access.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	p := query.MapPage(query.Paginate(cats, page, query.AdminPageSize), view.AdminCategoryItem)
	return &p, nil
}

// CreateCategory stores a new category.
func (s *Service) CreateCategory(ctx context.Context, actor *access.Actor, in CategoryInput) (*view.AdminCategory, error) {
	if err := access.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	name, err := validateCategory(in)
	if err != nil {
		return nil, err
	}
	cat, err := s.categories.Create(ctx, &models.Category{Name: name})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	item := view.AdminCategoryItem(*cat)
	return &item, nil
}

// UpdateCategory renames a category.
func (s *Service) UpdateCategory(ctx context.Context, actor *access.Actor, categoryID int64, in CategoryInput) (*view.AdminCategory, error) {
	if err := access.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	cat, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	name, err := validateCategory(in)
	if err != nil {
		return nil, err
	}
	cat.Name = name
	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	count, err := s.posts.CountByCategory(ctx, cat.ID)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	cat.PostCount = count
	item := view.AdminCategoryItem(*cat)
	return &item, nil
}

// DeleteCategory removes a category that no post references. Categories
// still in use report ErrCategoryInUse and are left untouched.
func (s *Service) DeleteCategory(ctx context.Context, actor *access.Actor, categoryID int64) error {
	if err := access.Require(actor, models.RoleAdmin); err != nil {
		return err
	}

	cat, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("find category: %w", err)
	}
	if cat == nil {
		return ErrNotFound
	}

	count, err := s.posts.CountByCategory(ctx, cat.ID)
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, cat.ID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
