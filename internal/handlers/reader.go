// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"blogpress/internal/blog"
	"blogpress/internal/middleware"
	"blogpress/internal/query"
	"blogpress/internal/render"
)

// Reader groups the handlers of the signed-in reader area.
type Reader struct {
	svc *blog.Service
}

// NewReader creates a new Reader handler group.
func NewReader(svc *blog.Service) *Reader {
	return &Reader{svc: svc}
}

// PostsIndex lists posts with search, category and sort filters.
func (h *Reader) PostsIndex(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.ListPosts(r.Context(), middleware.ActorFromCtx(r.Context()), query.ParseFilters(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, listing)
}

// PostShow returns a post with its comments.
func (h *Reader) PostShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		render.NotFound(w)
		return
	}

	post, err := h.svc.ShowPost(r.Context(), middleware.ActorFromCtx(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"post": post})
}

// CommentStore adds a comment to a post.
func (h *Reader) CommentStore(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		render.NotFound(w)
		return
	}

	comment, err := h.svc.AddComment(r.Context(), middleware.ActorFromCtx(r.Context()), id, blog.CommentInput{
		Content: form.Get("content"),
	})
	if err != nil {
		writeError(w, r, err, "content")
		return
	}
	render.Message(w, http.StatusCreated, "Comment added successfully", comment)
}

// CommentDestroy deletes one of the actor's own comments.
func (h *Reader) CommentDestroy(w http.ResponseWriter, r *http.Request) {
	postID, ok := idParam(r, "id")
	if !ok {
		render.NotFound(w)
		return
	}
	commentID, ok := idParam(r, "commentID")
	if !ok {
		render.NotFound(w)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), middleware.ActorFromCtx(r.Context()), postID, commentID); err != nil {
		writeError(w, r, err)
		return
	}
	render.Message(w, http.StatusOK, "Comment deleted successfully", nil)
}
