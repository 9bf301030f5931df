// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Comment is a reader's note on a post. It belongs to exactly one post and
// one authoring user.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Author is populated by store methods that join the users table.
	// Nil when the author row no longer resolves.
	Author *CommentAuthor `json:"author,omitempty"`
}

// CommentAuthor is the public identity of a comment's author.
type CommentAuthor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OwnedBy reports whether the comment was written by the given user.
func (c *Comment) OwnedBy(userID int64) bool {
	return c.UserID == userID
}
