// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package view projects models into the exact shapes the presentation
// layer consumes. Every field is always present: missing strings become
// "", missing categories and authors become zero-valued objects, and
// missing timestamps become "".
package view

import (
	"time"

	"blogpress/internal/models"
)

// timeLayout renders instants as ISO-8601 UTC with microsecond precision.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Timestamp formats t in UTC, or returns "" for the zero time.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

// TimestampPtr is Timestamp for optional instants.
func TimestampPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Timestamp(*t)
}

// CategoryRef is the {id, name} pair embedded in post shapes and used for
// filter options.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category projects c, substituting the empty reference when c is nil.
func Category(c *models.Category) CategoryRef {
	if c == nil {
		return CategoryRef{}
	}
	return CategoryRef{ID: c.ID, Name: c.Name}
}

// CategoryOptions projects a category list for filter and form selects.
func CategoryOptions(cats []models.Category) []CategoryRef {
	out := make([]CategoryRef, 0, len(cats))
	for i := range cats {
		out = append(out, Category(&cats[i]))
	}
	return out
}

// PostListItem is a post as shown in the public listing. Comment bodies
// are omitted; only their count is carried.
type PostListItem struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Category      CategoryRef `json:"category"`
	CommentsCount int         `json:"comments_count"`
	CreatedAt     string      `json:"created_at"`
}

// ListItem projects a post for the public listing.
func ListItem(p models.Post, cat *models.Category, commentsCount int) PostListItem {
	return PostListItem{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Category:      Category(cat),
		CommentsCount: commentsCount,
		CreatedAt:     Timestamp(p.CreatedAt),
	}
}

// CommentAuthor is the author reference embedded in a comment.
type CommentAuthor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CommentItem is a comment as shown under a post.
type CommentItem struct {
	ID        int64         `json:"id"`
	Content   string        `json:"content"`
	User      CommentAuthor `json:"user"`
	CreatedAt string        `json:"created_at"`
}

// Comment projects c. An unresolved author becomes {id: 0, name: ""}.
func Comment(c models.Comment) CommentItem {
	item := CommentItem{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: Timestamp(c.CreatedAt),
	}
	if c.Author != nil {
		item.User = CommentAuthor{ID: c.Author.ID, Name: c.Author.Name}
	}
	return item
}

// PostDetail is a single post with its full comment thread.
type PostDetail struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Category      CategoryRef   `json:"category"`
	Comments      []CommentItem `json:"comments"`
	CommentsCount int           `json:"comments_count"`
	CreatedAt     string        `json:"created_at"`
}

// Detail projects a post and its comments. The count is taken from the
// comments passed in, so it always matches the thread shown.
func Detail(p models.Post, cat *models.Category, comments []models.Comment) PostDetail {
	items := make([]CommentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, Comment(c))
	}
	return PostDetail{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Category:      Category(cat),
		Comments:      items,
		CommentsCount: len(items),
		CreatedAt:     Timestamp(p.CreatedAt),
	}
}
