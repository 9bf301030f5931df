// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"

	"blogpress/internal/blog"
	"blogpress/internal/middleware"
	"blogpress/internal/query"
	"blogpress/internal/render"
)

// postFields is the admin post form in display order.
var postFields = []string{"title", "content", "category_id", "published_at"}

// Admin groups all admin HTTP handlers.
type Admin struct {
	svc *blog.Service
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(svc *blog.Service) *Admin {
	return &Admin{svc: svc}
}

func page(r *http.Request) int {
	return query.ParseFilters(r.URL.Query()).Page
}

func postInput(form url.Values) blog.PostInput {
	return blog.PostInput{
		Title:       form.Get("title"),
		Content:     form.Get("content"),
		CategoryID:  form.Get("category_id"),
		PublishedAt: form.Get("published_at"),
	}
}

// --- Posts ---

// PostsList returns a page of posts, newest first, with category options.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	listing, err := a.svc.ListAdminPosts(r.Context(), middleware.ActorFromCtx(r.Context()), page(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, listing)
}

// PostCreate stores a new post.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := a.svc.CreatePost(r.Context(), middleware.ActorFromCtx(r.Context()), postInput(form))
	if err != nil {
		writeError(w, r, err, postFields...)
		return
	}
	render.Message(w, http.StatusCreated, "Post added successfully", post)
}

// PostUpdate replaces a post's fields.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		render.NotFound(w)
		return
	}
	form, err := formValues(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := a.svc.UpdatePost(r.Context(), middleware.ActorFromCtx(r.Context()), id, postInput(form))
	if err != nil {
		writeError(w, r, err, postFields...)
		return
	}
	render.Message(w, http.StatusOK, "Post updated successfully", post)
}

// PostDelete removes a post and its comments.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		render.NotFound(w)
		return
	}

	if err := a.svc.DeletePost(r.Context(), middleware.ActorFromCtx(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	render.Message(w, http.StatusOK, "Post deleted successfully", nil)
}

// --- Categories ---

// CategoriesList returns a page of categories with post counts.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	cats, err := a.svc.ListCategories(r.Context(), middleware.ActorFromCtx(r.Context()), page(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// CategoryCreate stores a new category.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cat, err := a.svc.CreateCategory(r.Context(), middleware.ActorFromCtx(r.Context()), blog.CategoryInput{
		Name: form.Get("name"),
	})
	if err != nil {
		writeError(w, r, err, "name")
		return
	}
	render.Message(w, http.StatusCreated, "Category added successfully", cat)
}

// CategoryUpdate renames a category.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		render.NotFound(w)
		return
	}
	form, err := formValues(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cat, err := a.svc.UpdateCategory(r.Context(), middleware.ActorFromCtx(r.Context()), id, blog.CategoryInput{
		Name: form.Get("name"),
	})
	if err != nil {
		writeError(w, r, err, "name")
		return
	}
	render.Message(w, http.StatusOK, "Category updated successfully", cat)
}

// CategoryDelete removes a category that no post uses.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		render.NotFound(w)
		return
	}

	if err := a.svc.DeleteCategory(r.Context(), middleware.ActorFromCtx(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	render.Message(w, http.StatusOK, "Category deleted successfully", nil)
}
