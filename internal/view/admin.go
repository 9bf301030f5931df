// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package view

import (
	"time"

	"blogpress/internal/models"
)

// AdminPost is a post row in the admin post table.
type AdminPost struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Slug          string      `json:"slug"`
	CategoryID    int64       `json:"category_id"`
	Category      CategoryRef `json:"category"`
	PublishedAt   string      `json:"published_at"`
	IsPublished   bool        `json:"is_published"`
	CommentsCount int         `json:"comments_count"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
}

// AdminPostItem projects a post for the admin table. now decides whether
// the publication date has been reached.
func AdminPostItem(p models.Post, cat *models.Category, commentsCount int, now time.Time) AdminPost {
	return AdminPost{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Slug:          p.Slug,
		CategoryID:    p.CategoryID,
		Category:      Category(cat),
		PublishedAt:   TimestampPtr(p.PublishedAt),
		IsPublished:   p.IsPublished(now),
		CommentsCount: commentsCount,
		CreatedAt:     Timestamp(p.CreatedAt),
		UpdatedAt:     Timestamp(p.UpdatedAt),
	}
}

// AdminCategory is a category row in the admin category table.
type AdminCategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PostsCount int    `json:"posts_count"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// AdminCategoryItem projects a category for the admin table.
func AdminCategoryItem(c models.Category) AdminCategory {
	return AdminCategory{
		ID:         c.ID,
		Name:       c.Name,
		PostsCount: c.PostCount,
		CreatedAt:  Timestamp(c.CreatedAt),
		UpdatedAt:  Timestamp(c.UpdatedAt),
	}
}
