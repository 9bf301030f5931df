package store

import (
	"context"
	"testing"
	"time"
)

func TestPostStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	cat, post, _ := fixture(t, db, "postfind")

	if post.ID == 0 {
		t.Fatal("expected generated id")
	}
	if post.PublishedAt != nil {
		t.Error("expected nil published_at")
	}

	found, err := NewPostStore(db).FindByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected post, got nil")
	}
	if found.CategoryID != cat.ID || found.Slug != "postfind-post" {
		t.Errorf("unexpected post: %+v", found)
	}

	missing, err := NewPostStore(db).FindByID(ctx, -1)
	if err != nil {
		t.Fatalf("FindByID (not found): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing post")
	}
}

func TestPostStoreUpdate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewPostStore(db)
	_, post, _ := fixture(t, db, "postupdate")

	when := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	post.Title = "Updated"
	post.Slug = "updated"
	post.PublishedAt = &when
	if err := s.Update(ctx, post); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, _ := s.FindByID(ctx, post.ID)
	if found.Title != "Updated" || found.Slug != "updated" {
		t.Errorf("after update: %+v", found)
	}
	if found.PublishedAt == nil || !found.PublishedAt.Equal(when) {
		t.Errorf("published_at: got %v, want %v", found.PublishedAt, when)
	}
}

func TestPostStoreCountByCategoryAndDelete(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewPostStore(db)
	cat, post, _ := fixture(t, db, "postcount")

	n, err := s.CountByCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if n != 1 {
		t.Errorf("count: got %d, want 1", n)
	}

	if err := s.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	n, _ = s.CountByCategory(ctx, cat.ID)
	if n != 0 {
		t.Errorf("count after delete: got %d, want 0", n)
	}
}

func TestPostStoreListIncludesCreated(t *testing.T) {
	db := testDB(t)
	_, post, _ := fixture(t, db, "postlist")

	items, err := NewPostStore(db).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, p := range items {
		if p.ID == post.ID {
			return
		}
	}
	t.Error("created post missing from list")
}
