package blog

import (
	"context"
	"fmt"

	"blogpress/internal/access"
	"blogpress/internal/models"
	"blogpress/internal/query"
	"blogpress/internal/view"
)

// PostListing is the reader's filtered post index.
type PostListing struct {
	Posts      query.Page[view.PostListItem] `json:"posts"`
	Categories []view.CategoryRef            `json:"categories"`
	Filters    query.Echo                    `json:"filters"`
}

// ListPosts returns one page of posts matching the filters, together with
// the category options and the effective filters.
func (s *Service) ListPosts(ctx context.Context, actor *access.Actor, f query.Filters) (*PostListing, error) {
	if err := access.Require(actor, models.RoleUser); err != nil {
		return nil, err
	}

	entries, idx, cats, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	page := query.Paginate(query.Compose(entries, f), f.Page, query.PublicPageSize)
	return &PostListing{
		Posts: query.MapPage(page, func(e query.Entry) view.PostListItem {
			return view.ListItem(e.Post, idx[e.Post.CategoryID], e.CommentsCount)
		}),
		Categories: view.CategoryOptions(cats),
		Filters:    f.Echo(),
	}, nil
}

// entries loads every post with its live comment count, plus the category
// index used to resolve them.
func (s *Service) entries(ctx context.Context) ([]query.Entry, map[int64]*models.Category, []models.Category, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load posts: %w", err)
	}
	counts, err := s.comments.CountByPost(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load comment counts: %w", err)
	}
	cats, idx, err := s.categoryIndex(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	entries := make([]query.Entry, len(posts))
	for i, p := range posts {
		entries[i] = query.Entry{Post: p, CommentsCount: counts[p.ID]}
	}
	return entries, idx, cats, nil
}

// ShowPost returns a single post with its comments, oldest first.
func (s *Service) ShowPost(ctx context.Context, actor *access.Actor, postID int64) (*view.PostDetail, error) {
	if err := access.Require(actor, models.RoleUser); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}

	cat, err := s.categories.FindByID(ctx, post.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	comments, err := s.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	detail := view.Detail(*post, cat, comments)
	return &detail, nil
}

// AddComment validates the input and attaches a new comment by actor to
// the post. Validation runs before the post lookup.
func (s *Service) AddComment(ctx context.Context, actor *access.Actor, postID int64, in CommentInput) (*view.CommentItem, error) {
	if err := access.Require(actor, models.RoleUser); err != nil {
		return nil, err
	}

	content, err := validateComment(in)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}

	c, err := s.comments.Create(ctx, &models.Comment{
		PostID:  post.ID,
		UserID:  actor.ID,
		Content: content,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	c.Author = &models.CommentAuthor{ID: actor.ID, Name: actor.Name}

	item := view.Comment(*c)
	return &item, nil
}

// DeleteComment removes the actor's own comment from the post. Comments
// that are missing, belong to another post or to another user all report
// ErrNotFound.
func (s *Service) DeleteComment(ctx context.Context, actor *access.Actor, postID, commentID int64) error {
	if err := access.Require(actor, models.RoleUser); err != nil {
		return err
	}

	c, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("find comment: %w", err)
	}
	if err := access.AuthorizeDelete(actor, c, postID); err != nil {
		return translateAccess(err)
	}

	if err := s.comments.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
