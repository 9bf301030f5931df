// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"blogpress/internal/database"
	"blogpress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// cleanPosts removes test posts by id. Call in t.Cleanup().
func cleanPosts(t *testing.T, db *sql.DB, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM posts WHERE id = $1", id)
	}
}

// cleanCategories removes test categories by id. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM categories WHERE id = $1", id)
	}
}

// fixture creates a category, a post in it and a commenting user. All
// three are removed when the test finishes.
func fixture(t *testing.T, db *sql.DB, prefix string) (*models.Category, *models.Post, *models.User) {
	t.Helper()
	ctx := context.Background()

	cat, err := NewCategoryStore(db).Create(ctx, &models.Category{Name: prefix + " category"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	post, err := NewPostStore(db).Create(ctx, &models.Post{
		Title:      prefix + " post",
		Content:    "body",
		CategoryID: cat.ID,
		Slug:       prefix + "-post",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	email := prefix + "@store-test.local"
	user, err := NewUserStore(db).Create(ctx, email, "pass", prefix+" user", models.RoleUser)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	t.Cleanup(func() {
		cleanUsers(t, db, email)
		cleanPosts(t, db, post.ID)
		cleanCategories(t, db, cat.ID)
	})
	return cat, post, user
}
