// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package access

import (
	"errors"

	"blogpress/internal/models"
)

// ErrNotFound is returned when a mutation is refused. It is deliberately
// the same outcome as a missing record so callers cannot probe for
// comments they do not own.
var ErrNotFound = errors.New("not found")

// AuthorizeDelete allows the deletion of comment only when it exists,
// belongs to the post addressed by the route and was written by actor.
func AuthorizeDelete(actor *Actor, comment *models.Comment, routePostID int64) error {
	if actor == nil || comment == nil {
		return ErrNotFound
	}
	if comment.PostID != routePostID {
		return ErrNotFound
	}
	if !comment.OwnedBy(actor.ID) {
		return ErrNotFound
	}
	return nil
}
